// Package transform implements the per-frame resize-and-emit stage.
package transform

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/vidscale/pkg/pipeline"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// Stage resizes every decoded frame and writes it to the output writer.
// It does not own the stream or writer; the caller releases both.
type Stage struct {
	resampler ports.Resampler
	sink      ports.DebugSink
	logger    ports.Logger

	// OnFrame, when set, is called after each emitted frame with the
	// zero-based index. Used for progress reporting.
	OnFrame func(index int)
}

// debugFrameInterval controls how often resized frames are saved to the
// debug sink.
const debugFrameInterval = 30

// NewStage creates a new transform stage.
func NewStage(resampler ports.Resampler, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		resampler: resampler,
		sink:      sink,
		logger:    logger.WithComponent("transform"),
	}
}

// Execute runs the streaming loop: read, resize, check dimensions, emit.
// A nil or empty decoded frame and a stream yielding zero frames are
// both corrupt input; a resized frame with unexpected dimensions is a
// fatal processing error.
func (s *Stage) Execute(ctx context.Context, input pipeline.TransformInput) (pipeline.TransformResult, error) {
	result := pipeline.TransformResult{}

	frameCount := 0
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		frame, err := input.Stream.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("%w: read frame %d: %v", upscale.ErrCorruptInput, frameCount, err)
		}
		if !frame.Valid() {
			return result, fmt.Errorf("%w: received invalid frame at position %d", upscale.ErrCorruptInput, frameCount)
		}

		resized, err := s.resampler.Resize(frame.Image, input.OutWidth, input.OutHeight, input.Method)
		if err != nil {
			return result, fmt.Errorf("%w: resize frame %d: %v", upscale.ErrProcessing, frameCount, err)
		}

		bounds := resized.Bounds()
		if bounds.Dx() != input.OutWidth || bounds.Dy() != input.OutHeight {
			return result, fmt.Errorf("%w: frame %d size mismatch: expected %dx%d, got %dx%d",
				upscale.ErrProcessing, frameCount, input.OutWidth, input.OutHeight, bounds.Dx(), bounds.Dy())
		}

		if s.sink.Enabled() && frameCount%debugFrameInterval == 0 {
			s.sink.SaveFrame(frameCount, resized)
		}

		if err := input.Writer.Write(ports.Frame{Image: resized, Index: frameCount}); err != nil {
			return result, fmt.Errorf("%w: write frame %d: %v", upscale.ErrProcessing, frameCount, err)
		}

		if s.OnFrame != nil {
			s.OnFrame(frameCount)
		}
		frameCount++
	}

	if frameCount == 0 {
		return result, fmt.Errorf("%w: no frames processed, input video may be corrupted", upscale.ErrCorruptInput)
	}

	s.logger.Debug("Transformed %d frames", frameCount)
	result.FrameCount = frameCount
	return result, nil
}
