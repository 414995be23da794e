// Package probe implements the stream-properties reading stage.
package probe

import (
	"context"
	"fmt"

	"github.com/user/vidscale/pkg/pipeline"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// Stage reads and validates the properties of the input stream.
type Stage struct {
	prober ports.Prober
	logger ports.Logger
}

// NewStage creates a new probe stage.
func NewStage(prober ports.Prober, logger ports.Logger) *Stage {
	return &Stage{
		prober: prober,
		logger: logger.WithComponent("probe"),
	}
}

// Execute reads frame rate, width and height from the input. A stream
// that fails to open is an open failure; one that opens with
// non-positive properties is corrupt input.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	result := pipeline.ProbeResult{}

	props, err := s.prober.Properties(ctx, input.SourcePath)
	if err != nil {
		return result, fmt.Errorf("open video stream %s: %w", input.SourcePath, err)
	}

	if err := upscale.ValidateProperties(props); err != nil {
		return result, err
	}

	s.logger.Debug("Probed %s: %dx%d at %g fps", input.SourcePath, props.Width, props.Height, props.FPS)
	result.Props = props
	return result, nil
}
