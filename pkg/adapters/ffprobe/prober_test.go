package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/user/vidscale/pkg/mocks"
	"github.com/user/vidscale/pkg/upscale"
)

func TestParseRatio(t *testing.T) {
	tests := []struct {
		name    string
		ratio   string
		want    float64
		wantErr bool
	}{
		{"integer ratio", "30/1", 30, false},
		{"ntsc", "30000/1001", 29.97002997002997, false},
		{"plain number", "25", 25, false},
		{"fractional number", "23.976", 23.976, false},
		{"whitespace trimmed", " 24/1\n", 24, false},
		{"zero denominator", "30/0", 0, true},
		{"empty", "", 0, true},
		{"garbage", "abc", 0, true},
		{"garbage numerator", "x/1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRatio(tt.ratio)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRatio(%q): expected error, got %g", tt.ratio, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRatio(%q): %v", tt.ratio, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseRatio(%q) = %g, want %g", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestProperties(t *testing.T) {
	runner := &mocks.ToolRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
			out := `{"streams": [{"width": 1920, "height": 1080, "r_frame_rate": "30000/1001"}]}`
			return []byte(out), nil, nil
		},
	}

	prober := New(runner)
	props, err := prober.Properties(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("Properties: %v", err)
	}

	if props.Width != 1920 || props.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", props.Width, props.Height)
	}
	if math.Abs(props.FPS-29.97) > 0.01 {
		t.Errorf("fps = %g, want ~29.97", props.FPS)
	}
	if props.RateRatio != "30000/1001" {
		t.Errorf("rate ratio = %q, want 30000/1001", props.RateRatio)
	}
	if !runner.HasRun("ffprobe", "-select_streams v:0", "-of json", "in.mp4") {
		t.Errorf("unexpected ffprobe invocation: %+v", runner.RunCalls)
	}
}

func TestProperties_NoVideoStream(t *testing.T) {
	runner := &mocks.ToolRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
			return []byte(`{"streams": []}`), nil, nil
		},
	}

	_, err := New(runner).Properties(context.Background(), "audio-only.mp4")
	if !errors.Is(err, upscale.ErrCorruptInput) {
		t.Fatalf("expected ErrCorruptInput, got %v", err)
	}
}

func TestProperties_ToolMissing(t *testing.T) {
	runner := &mocks.ToolRunner{
		LookFunc: func(name string) (string, error) {
			return "", fmt.Errorf("not found in PATH")
		},
	}

	_, err := New(runner).Properties(context.Background(), "in.mp4")
	if !errors.Is(err, upscale.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestProperties_CustomToolPath(t *testing.T) {
	runner := &mocks.ToolRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
			return []byte(`{"streams": [{"width": 640, "height": 480, "r_frame_rate": "25/1"}]}`), nil, nil
		},
	}

	prober := New(runner)
	prober.SetToolPath("/opt/ffmpeg/bin/ffprobe")
	if _, err := prober.Properties(context.Background(), "in.mp4"); err != nil {
		t.Fatalf("Properties: %v", err)
	}
	if len(runner.CallsFor("/opt/ffmpeg/bin/ffprobe")) != 1 {
		t.Errorf("custom tool path not used: %+v", runner.RunCalls)
	}
}

func TestFrameRateRatio(t *testing.T) {
	runner := &mocks.ToolRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
			return []byte("24000/1001\n"), nil, nil
		},
	}

	ratio, err := New(runner).FrameRateRatio(context.Background(), "in.mp4")
	if err != nil {
		t.Fatalf("FrameRateRatio: %v", err)
	}
	if ratio != "24000/1001" {
		t.Errorf("ratio = %q, want 24000/1001", ratio)
	}
}

func TestFrameRateRatio_NotAvailable(t *testing.T) {
	for _, out := range []string{"", "N/A\n"} {
		runner := &mocks.ToolRunner{
			RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
				return []byte(out), nil, nil
			},
		}
		_, err := New(runner).FrameRateRatio(context.Background(), "in.mp4")
		if !errors.Is(err, upscale.ErrCorruptInput) {
			t.Errorf("output %q: expected ErrCorruptInput, got %v", out, err)
		}
	}
}
