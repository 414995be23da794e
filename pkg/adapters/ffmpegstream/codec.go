package ffmpegstream

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// Selector implements ports.CodecSelector by asking the ffmpeg build
// whether it knows each candidate encoder.
type Selector struct {
	runner ports.ToolRunner
	logger ports.Logger
}

// NewSelector creates a new codec selector.
func NewSelector(runner ports.ToolRunner, logger ports.Logger) *Selector {
	return &Selector{
		runner: runner,
		logger: logger.WithComponent("codec"),
	}
}

// Select returns the first codec in priority the ffmpeg build can
// initialize. Exhaustion is fatal and names every attempted candidate.
func (s *Selector) Select(ctx context.Context, priority []string) (string, error) {
	if len(priority) == 0 {
		return "", fmt.Errorf("%w: empty codec priority list", upscale.ErrInvalidArgument)
	}

	// Probe the same binary the source and sink will open.
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return "", fmt.Errorf("%w: %v", upscale.ErrUnavailable, err)
	}

	for _, codec := range priority {
		stdout, _, err := s.runner.Run(ctx, ffmpegPath, "-hide_banner", "-h", "encoder="+codec)
		if err != nil {
			s.logger.Debug("Codec %s probe failed: %s", codec, err)
			continue
		}
		if bytes.Contains(stdout, []byte("Unknown encoder")) {
			s.logger.Debug("Codec %s not supported by this ffmpeg build", codec)
			continue
		}
		return codec, nil
	}

	return "", fmt.Errorf("%w: no usable output codec, tried: %s (the ffmpeg build may lack codec support)",
		upscale.ErrUnavailable, strings.Join(priority, ", "))
}

// Ensure Selector implements ports.CodecSelector
var _ ports.CodecSelector = (*Selector)(nil)
