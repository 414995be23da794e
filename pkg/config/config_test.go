package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	wantPriority := []string{"libx264", "libopenh264", "mpeg4", "mjpeg"}
	if len(cfg.CodecPriority) != len(wantPriority) {
		t.Fatalf("expected %d default codecs, got %d", len(wantPriority), len(cfg.CodecPriority))
	}
	for i, want := range wantPriority {
		if cfg.CodecPriority[i] != want {
			t.Errorf("codec priority[%d] = %q, want %q", i, cfg.CodecPriority[i], want)
		}
	}
	if cfg.MaxWidth != 7680 || cfg.MaxHeight != 4320 {
		t.Errorf("default ceiling = %dx%d, want 7680x4320", cfg.MaxWidth, cfg.MaxHeight)
	}
	if cfg.Interpolation != "cubic" {
		t.Errorf("default interpolation = %q, want cubic", cfg.Interpolation)
	}
	if cfg.RebuildCRF != 20 || cfg.RebuildPreset != "slow" {
		t.Errorf("rebuild defaults = crf %d preset %q, want crf 20 preset slow", cfg.RebuildCRF, cfg.RebuildPreset)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q, want info", cfg.LogLevel)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vidscale.yaml")
	yaml := `
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
codec_priority:
  - mpeg4
max_width: 3840
interpolation: lanczos
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("ffmpeg_path = %q", cfg.FFmpegPath)
	}
	if len(cfg.CodecPriority) != 1 || cfg.CodecPriority[0] != "mpeg4" {
		t.Errorf("codec_priority = %v, want [mpeg4]", cfg.CodecPriority)
	}
	if cfg.MaxWidth != 3840 {
		t.Errorf("max_width = %d, want 3840", cfg.MaxWidth)
	}
	if cfg.Interpolation != "lanczos" {
		t.Errorf("interpolation = %q, want lanczos", cfg.Interpolation)
	}

	// Keys absent from the file keep their defaults.
	if cfg.MaxHeight != 4320 {
		t.Errorf("max_height = %d, want default 4320", cfg.MaxHeight)
	}
	if cfg.RebuildPreset != "slow" {
		t.Errorf("rebuild_preset = %q, want default slow", cfg.RebuildPreset)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("codec_priority: [unclosed"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
