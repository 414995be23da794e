// Package ffprobe reads stream properties through the ffprobe tool.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// Prober implements ports.Prober with blocking ffprobe invocations.
type Prober struct {
	runner ports.ToolRunner
	tool   string
}

// New creates a new ffprobe-backed prober.
func New(runner ports.ToolRunner) *Prober {
	return &Prober{runner: runner, tool: "ffprobe"}
}

// SetToolPath overrides the ffprobe executable to invoke.
func (p *Prober) SetToolPath(path string) {
	if path != "" {
		p.tool = path
	}
}

// streamsPayload mirrors the ffprobe -of json output shape.
type streamsPayload struct {
	Streams []struct {
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Properties returns frame rate and dimensions of the first video stream.
func (p *Prober) Properties(ctx context.Context, path string) (ports.StreamProperties, error) {
	props := ports.StreamProperties{}

	if _, err := p.runner.Look(p.tool); err != nil {
		return props, fmt.Errorf("%w: ffprobe is required for video processing", upscale.ErrUnavailable)
	}

	stdout, stderr, err := p.runner.Run(ctx, p.tool,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate",
		"-of", "json",
		path)
	if err != nil {
		return props, fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(string(stderr)))
	}

	var payload streamsPayload
	if err := json.Unmarshal(stdout, &payload); err != nil {
		return props, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(payload.Streams) == 0 {
		return props, fmt.Errorf("%w: no video stream found in %s", upscale.ErrCorruptInput, path)
	}

	st := payload.Streams[0]
	fps, err := ParseRatio(st.RFrameRate)
	if err != nil {
		return props, fmt.Errorf("%w: invalid frame rate %q: %v", upscale.ErrCorruptInput, st.RFrameRate, err)
	}

	props.Width = st.Width
	props.Height = st.Height
	props.FPS = fps
	props.RateRatio = st.RFrameRate
	return props, nil
}

// FrameRateRatio returns the exact frame rate of the first video stream
// as a ratio string, e.g. "30000/1001".
func (p *Prober) FrameRateRatio(ctx context.Context, path string) (string, error) {
	if _, err := p.runner.Look(p.tool); err != nil {
		return "", fmt.Errorf("%w: ffprobe is required for video processing", upscale.ErrUnavailable)
	}

	stdout, stderr, err := p.runner.Run(ctx, p.tool,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "csv=p=0",
		path)
	if err != nil {
		return "", fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(string(stderr)))
	}

	ratio := strings.TrimSpace(string(stdout))
	if ratio == "" || ratio == "N/A" {
		return "", fmt.Errorf("%w: no frame rate reported for %s", upscale.ErrCorruptInput, path)
	}
	if _, err := ParseRatio(ratio); err != nil {
		return "", fmt.Errorf("%w: invalid frame rate %q: %v", upscale.ErrCorruptInput, ratio, err)
	}
	return ratio, nil
}

// ParseRatio converts a frame-rate ratio string like "30000/1001" or a
// plain number like "25" to frames per second.
func ParseRatio(ratio string) (float64, error) {
	ratio = strings.TrimSpace(ratio)
	if ratio == "" {
		return 0, fmt.Errorf("empty ratio")
	}

	if num, den, ok := strings.Cut(ratio, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator in %q", ratio)
		}
		return n / d, nil
	}

	return strconv.ParseFloat(ratio, 64)
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
