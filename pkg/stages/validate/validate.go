// Package validate implements the fail-fast validation stage.
package validate

import (
	"context"

	"github.com/user/vidscale/pkg/pipeline"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// Stage rejects invalid invocations before any expensive resource is
// touched.
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new validation stage.
func NewStage(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("validate"),
	}
}

// Execute runs all pre-flight checks in order: scale factor,
// interpolation method, destination extension, then paths. Creating the
// destination parent directory is the only side effect.
func (s *Stage) Execute(ctx context.Context, input pipeline.ValidateInput) (pipeline.ValidateResult, error) {
	result := pipeline.ValidateResult{}

	if err := upscale.ValidateScale(input.Scale); err != nil {
		return result, err
	}

	method, err := upscale.ParseMethod(input.Method)
	if err != nil {
		return result, err
	}
	result.Method = method

	if err := upscale.ValidateExtension(input.DestPath, input.AllowedExtensions); err != nil {
		return result, err
	}

	if err := upscale.ValidatePaths(s.fs, input.SourcePath, input.DestPath); err != nil {
		return result, err
	}

	s.logger.Debug("Validated %s -> %s (scale %g, %s)", input.SourcePath, input.DestPath, input.Scale, method)
	return result, nil
}
