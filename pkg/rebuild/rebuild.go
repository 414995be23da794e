// Package rebuild implements the extract/transform/rebuild pipeline:
// dump every frame to numbered stills, resize each still in place, then
// re-encode the stills into the destination container at the probed
// frame rate.
package rebuild

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-l10n"

	"github.com/user/vidscale/pkg/pipeline"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// framePattern is the printf pattern for dumped frame stills.
const framePattern = "frame_%06d.png"

// Config contains all configuration for one extract/rebuild run.
type Config struct {
	SourcePath string
	DestPath   string
	Scale      float64
	Method     string

	// Re-encode settings for the rebuilt container.
	CRF    int
	Preset string

	// Resolution ceiling; zero values fall back to the 8K defaults.
	MaxWidth  int
	MaxHeight int

	// FFmpegPath overrides the ffmpeg executable to invoke.
	FFmpegPath string

	// OnFrame, when set, is called after each resized still with the
	// zero-based index and the total count. Used for progress reporting.
	OnFrame func(index, total int)
}

// RunResult summarizes a completed run.
type RunResult struct {
	Props      ports.StreamProperties
	RateRatio  string
	FrameCount int
	OutWidth   int
	OutHeight  int
}

// Orchestrator drives the extract/rebuild variant. The temporary frame
// directory is removed on every exit path, including error propagation.
type Orchestrator struct {
	validateStage pipeline.Stage[pipeline.ValidateInput, pipeline.ValidateResult]
	runner        ports.ToolRunner
	prober        ports.Prober
	resampler     ports.Resampler
	stills        ports.StillCodec
	fs            ports.FileSystem
	logger        ports.Logger
}

// New creates a new extract/rebuild Orchestrator.
func New(
	validateStage pipeline.Stage[pipeline.ValidateInput, pipeline.ValidateResult],
	runner ports.ToolRunner,
	prober ports.Prober,
	resampler ports.Resampler,
	stills ports.StillCodec,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		validateStage: validateStage,
		runner:        runner,
		prober:        prober,
		resampler:     resampler,
		stills:        stills,
		fs:            fs,
		logger:        logger,
	}
}

// Run executes the extract/transform/rebuild sequence.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	result := RunResult{}

	// Fail-fast validation, before any I/O.
	validated, err := o.validateStage.Execute(ctx, pipeline.ValidateInput{
		SourcePath:        config.SourcePath,
		DestPath:          config.DestPath,
		Scale:             config.Scale,
		Method:            config.Method,
		AllowedExtensions: upscale.VideoExtensions(),
	})
	if err != nil {
		o.logger.Error(l10n.F("Validation failed: %s", err))
		return result, err
	}

	// The external tool must be present and runnable before anything else.
	ffmpeg := config.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if _, err := o.runner.Look(ffmpeg); err != nil {
		return result, fmt.Errorf("%w: ffmpeg is required for video processing", upscale.ErrUnavailable)
	}

	// Probe properties up front so the resolution ceiling rejects the
	// run before any frame is dumped.
	props, err := o.prober.Properties(ctx, config.SourcePath)
	if err != nil {
		return result, fmt.Errorf("open video stream %s: %w", config.SourcePath, err)
	}
	if err := upscale.ValidateProperties(props); err != nil {
		return result, err
	}
	result.Props = props

	outWidth, outHeight := upscale.OutputDims(props.Width, props.Height, config.Scale)
	if err := upscale.CheckCeiling(outWidth, outHeight, config.MaxWidth, config.MaxHeight); err != nil {
		return result, err
	}
	result.OutWidth = outWidth
	result.OutHeight = outHeight

	// Private working directory, removed unconditionally on exit.
	tempDir, err := o.fs.TempDir("", "vidscale-frames-")
	if err != nil {
		return result, fmt.Errorf("create temporary frame directory: %w", err)
	}
	defer func() {
		if rerr := o.fs.RemoveAll(tempDir); rerr != nil {
			o.logger.Warn(l10n.F("Failed to remove temporary directory %s: %s", tempDir, rerr))
		}
	}()

	// Extract every frame to numbered stills.
	o.logger.Info(l10n.T("Extracting frames"))
	pattern := filepath.Join(tempDir, framePattern)
	if _, stderr, err := o.runner.Run(ctx, ffmpeg, "-i", config.SourcePath, pattern); err != nil {
		return result, fmt.Errorf("%w: failed to extract frames: %v: %s", upscale.ErrProcessing, err, stderr)
	}

	stills, err := o.fs.Glob(filepath.Join(tempDir, "frame_*.png"))
	if err != nil {
		return result, fmt.Errorf("list extracted frames: %w", err)
	}
	if len(stills) == 0 {
		return result, fmt.Errorf("%w: no frames processed, input video may be corrupted", upscale.ErrCorruptInput)
	}

	// Resize each still in place.
	o.logger.Info(l10n.F("Upscaling %d frames to %dx%d", len(stills), outWidth, outHeight))
	for i, still := range stills {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := o.resizeStill(still, outWidth, outHeight, validated.Method); err != nil {
			return result, err
		}
		if config.OnFrame != nil {
			config.OnFrame(i, len(stills))
		}
	}
	result.FrameCount = len(stills)

	// The rebuilt container keeps the exact source frame-rate ratio.
	ratio, err := o.prober.FrameRateRatio(ctx, config.SourcePath)
	if err != nil {
		return result, fmt.Errorf("probe frame rate: %w", err)
	}
	result.RateRatio = ratio

	o.logger.Info(l10n.F("Rebuilding %s at %s fps", config.DestPath, ratio))
	encodeArgs := []string{
		"-framerate", ratio,
		"-i", pattern,
		"-c:v", "libx264",
		"-preset", config.Preset,
		"-crf", fmt.Sprintf("%d", config.CRF),
		"-pix_fmt", "yuv420p",
		config.DestPath,
	}
	if _, stderr, err := o.runner.Run(ctx, ffmpeg, encodeArgs...); err != nil {
		return result, fmt.Errorf("%w: failed to rebuild video: %v: %s", upscale.ErrProcessing, err, stderr)
	}

	o.logger.Info(l10n.F("Processed %d frames", len(stills)))
	return result, nil
}

// resizeStill decodes one dumped frame, resizes it and writes it back to
// the same path.
func (o *Orchestrator) resizeStill(path string, width, height int, method ports.Method) error {
	img, err := o.stills.Decode(path)
	if err != nil {
		return fmt.Errorf("%w: read frame %s: %v", upscale.ErrCorruptInput, filepath.Base(path), err)
	}

	resized, err := o.resampler.Resize(img, width, height, method)
	if err != nil {
		return fmt.Errorf("%w: resize frame %s: %v", upscale.ErrProcessing, filepath.Base(path), err)
	}

	bounds := resized.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return fmt.Errorf("%w: frame %s size mismatch: expected %dx%d, got %dx%d",
			upscale.ErrProcessing, filepath.Base(path), width, height, bounds.Dx(), bounds.Dy())
	}

	if err := o.stills.Encode(path, resized); err != nil {
		return fmt.Errorf("%w: write frame %s: %v", upscale.ErrProcessing, filepath.Base(path), err)
	}
	return nil
}
