package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Input: %dx%d at %g fps":  "入力: %dx%d, %g fps",
		"Upscaling to %dx%d (%s)": "%dx%d へアップスケール中 (%s)",
		"Processed %d frames":     "%d フレームを処理しました",

		// Validation
		"Validation failed: %s":       "検証に失敗しました: %s",
		"Resolution check failed: %s": "解像度チェックに失敗しました: %s",
		"Codec selection failed: %s":  "コーデック選択に失敗しました: %s",

		// Probe
		"Failed to read stream properties: %s": "ストリーム情報の読み取りに失敗しました: %s",

		// Transform
		"Frame processing failed: %s": "フレーム処理に失敗しました: %s",

		// Rebuild variant
		"Extracting frames":                   "フレームを抽出中",
		"Upscaling %d frames to %dx%d":        "%d フレームを %dx%d へアップスケール中",
		"Rebuilding %s at %s fps":             "%s を %s fps で再構築中",
		"Failed to remove temporary directory %s: %s": "一時ディレクトリ %s の削除に失敗しました: %s",
	})
}
