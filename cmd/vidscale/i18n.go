// Package main provides localization for the vidscale CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Upscale video and image dimensions using spatial interpolation methods.": "空間補間メソッドを使用して動画と画像の解像度を拡大します。",

		// Video command
		"Upscale a video file.":                        "動画ファイルを拡大",
		"Input video path.":                            "入力動画のパス",
		"Output video path (.mp4, .avi or .mov).":      "出力動画のパス（.mp4、.avi、.mov）",
		"Scaling factor (must be >= 1).":               "拡大倍率（1以上）",
		"Interpolation method (nearest, linear, cubic, lanczos).": "補間メソッド（nearest、linear、cubic、lanczos）",
		"Extract frames to stills, resize, and rebuild the container instead of streaming.": "ストリーミングの代わりにフレームを静止画として抽出・リサイズしてコンテナを再構築",
		"Path to a YAML config file.":                                                       "YAML設定ファイルのパス",
		"Path to the ffmpeg executable (falls back to FFMPEG_PATH env, then PATH).":         "ffmpeg実行ファイルのパス（未指定時はFFMPEG_PATH環境変数、次にPATHを参照）",
		"Path to the ffprobe executable.":                                                   "ffprobe実行ファイルのパス",
		"Enable debug output.":                                                              "デバッグ出力を有効化",
		"Directory for debug output.":                                                       "デバッグ出力ディレクトリ",
		"Log level (debug, info, warn, error).":                                             "ログレベル（debug、info、warn、error）",
		"Suppress all log output.":                                                          "すべてのログ出力を抑制",

		// Image command
		"Upscale a still image.":                          "静止画を拡大",
		"Input image path.":                               "入力画像のパス",
		"Output image path (.png, .jpg, .jpeg or .webp).": "出力画像のパス（.png、.jpg、.jpeg、.webp）",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"vidscale version %s":       "vidscale バージョン %s",

		// Runtime messages
		"Error: %s":                     "エラー: %s",
		"Interrupted, shutting down...": "中断されました。終了しています...",
		"Upscaling %s by %gx...":        "%s を %g倍に拡大しています...",
		"Output saved to %s":            "出力を %s に保存しました",
		"Upscaled image to %dx%d":       "画像を %dx%d に拡大しました",
		"frames":                        "フレーム",
	})
}
