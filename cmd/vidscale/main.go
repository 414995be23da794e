// Package main provides the CLI entry point for vidscale.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/vidscale/pkg/adapters/execrunner"
	"github.com/user/vidscale/pkg/adapters/ffmpegstream"
	"github.com/user/vidscale/pkg/adapters/ffprobe"
	"github.com/user/vidscale/pkg/adapters/filesink"
	"github.com/user/vidscale/pkg/adapters/imagecodec"
	"github.com/user/vidscale/pkg/adapters/logger"
	"github.com/user/vidscale/pkg/adapters/mp4probe"
	"github.com/user/vidscale/pkg/adapters/nullsink"
	"github.com/user/vidscale/pkg/adapters/osfilesystem"
	"github.com/user/vidscale/pkg/adapters/resampler"
	"github.com/user/vidscale/pkg/adapters/smartprober"
	"github.com/user/vidscale/pkg/config"
	"github.com/user/vidscale/pkg/orchestrator"
	"github.com/user/vidscale/pkg/pipeline"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/rebuild"
	"github.com/user/vidscale/pkg/stages/probe"
	"github.com/user/vidscale/pkg/stages/transform"
	"github.com/user/vidscale/pkg/stages/validate"
	"github.com/user/vidscale/pkg/upscale"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Video   VideoCmd   `cmd:"" help:"Upscale a video file."`
	Image   ImageCmd   `cmd:"" help:"Upscale a still image."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// VideoCmd defines the video subcommand.
type VideoCmd struct {
	// Required arguments
	Input  string `arg:"" help:"Input video path."`
	Output string `arg:"" help:"Output video path (.mp4, .avi or .mov)."`

	// Scaling options
	Scale         float64 `short:"s" default:"2" help:"Scaling factor (must be >= 1)."`
	Interpolation string  `short:"i" default:"" help:"Interpolation method (nearest, linear, cubic, lanczos)."`

	// Variant selection
	Rebuild bool `help:"Extract frames to stills, resize, and rebuild the container instead of streaming."`

	// Configuration
	Config string `short:"c" type:"existingfile" help:"Path to a YAML config file."`

	// External tools
	FFmpegPath  string `help:"Path to the ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)."`
	FFprobePath string `help:"Path to the ffprobe executable."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ImageCmd defines the image subcommand.
type ImageCmd struct {
	Input  string `arg:"" help:"Input image path."`
	Output string `arg:"" help:"Output image path (.png, .jpg, .jpeg or .webp)."`

	Scale         float64 `short:"s" default:"2" help:"Scaling factor (must be >= 1)."`
	Interpolation string  `short:"i" default:"" help:"Interpolation method (nearest, linear, cubic, lanczos)."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("vidscale"),
		kong.Description("Upscale video and image dimensions using spatial interpolation methods."),
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(upscale.ExitCode(err))
	}
}

// newLogger builds the logger for a command.
func newLogger(quiet bool, level string) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()
	return ctx, cancel
}

// loadConfig merges the optional config file over the defaults and the
// CLI overrides over both.
func (cmd *VideoCmd) loadConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.Load(cmd.Config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.FFprobePath != "" {
		cfg.FFprobePath = cmd.FFprobePath
	}
	if cmd.Interpolation != "" {
		cfg.Interpolation = cmd.Interpolation
	}
	return cfg, nil
}

// Run executes the video command.
func (cmd *VideoCmd) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cmd.Quiet, cmd.LogLevel)
	ctx, cancel := signalContext(log)
	defer cancel()

	// Create adapters
	fs := osfilesystem.New()
	runner := execrunner.New()
	sampler := resampler.New()

	if cfg.FFmpegPath != "" {
		ffmpegstream.SetFFmpegPath(cfg.FFmpegPath)
	}
	ffprober := ffprobe.New(runner)
	ffprober.SetToolPath(cfg.FFprobePath)
	prober := smartprober.New(mp4probe.New(), ffprober, log)

	// Create debug sink
	var sink ports.DebugSink
	if cmd.Debug {
		if err := fs.MkdirAll(cmd.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cmd.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	validateStage := validate.NewStage(fs, log)

	log.Info(l10n.F("Upscaling %s by %gx...", cmd.Input, cmd.Scale))

	if cmd.Rebuild {
		err = cmd.runRebuild(ctx, cfg, validateStage, runner, prober, sampler, fs, log)
	} else {
		err = cmd.runDirect(ctx, cfg, validateStage, runner, prober, sampler, sink, log)
	}
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", cmd.Output))
	return nil
}

// runDirect executes the direct frame-stream variant.
func (cmd *VideoCmd) runDirect(
	ctx context.Context,
	cfg config.Config,
	validateStage *validate.Stage,
	runner ports.ToolRunner,
	prober ports.Prober,
	sampler ports.Resampler,
	sink ports.DebugSink,
	log ports.Logger,
) error {
	probeStage := probe.NewStage(prober, log)
	transformStage := transform.NewStage(sampler, sink, log)

	if bar := cmd.progressBar(-1); bar != nil {
		transformStage.OnFrame = func(index int) { bar.Add(1) }
		defer bar.Finish()
	}

	orch := orchestrator.New(
		validateStage,
		probeStage,
		transformStage,
		ffmpegstream.NewSource(),
		ffmpegstream.NewSink(),
		ffmpegstream.NewSelector(runner, log),
		sink,
		log,
	)

	_, err := orch.Run(ctx, orchestrator.Config{
		SourcePath:    cmd.Input,
		DestPath:      cmd.Output,
		Scale:         cmd.Scale,
		Method:        cfg.Interpolation,
		CodecPriority: cfg.CodecPriority,
		MaxWidth:      cfg.MaxWidth,
		MaxHeight:     cfg.MaxHeight,
	})
	return err
}

// runRebuild executes the extract/rebuild variant.
func (cmd *VideoCmd) runRebuild(
	ctx context.Context,
	cfg config.Config,
	validateStage *validate.Stage,
	runner ports.ToolRunner,
	prober ports.Prober,
	sampler ports.Resampler,
	fs ports.FileSystem,
	log ports.Logger,
) error {
	orch := rebuild.New(
		validateStage,
		runner,
		prober,
		sampler,
		imagecodec.New(fs),
		fs,
		log,
	)

	var bar *progressbar.ProgressBar
	onFrame := func(index, total int) {
		if bar == nil {
			bar = cmd.progressBar(total)
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	defer func() {
		if bar != nil {
			bar.Finish()
		}
	}()

	_, err := orch.Run(ctx, rebuild.Config{
		SourcePath: cmd.Input,
		DestPath:   cmd.Output,
		Scale:      cmd.Scale,
		Method:     cfg.Interpolation,
		CRF:        cfg.RebuildCRF,
		Preset:     cfg.RebuildPreset,
		MaxWidth:   cfg.MaxWidth,
		MaxHeight:  cfg.MaxHeight,
		FFmpegPath: cfg.FFmpegPath,
		OnFrame:    onFrame,
	})
	return err
}

// progressBar returns a frame progress bar, or nil when output is quiet
// or not a terminal.
func (cmd *VideoCmd) progressBar(total int) *progressbar.ProgressBar {
	if cmd.Quiet || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(l10n.T("frames")),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
}

// Run executes the image command.
func (cmd *ImageCmd) Run() error {
	log := newLogger(cmd.Quiet, cmd.LogLevel)
	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	stills := imagecodec.New(fs)
	sampler := resampler.New()

	method := cmd.Interpolation
	if method == "" {
		method = string(upscale.DefaultMethod)
	}

	validateStage := validate.NewStage(fs, log)
	validated, err := validateStage.Execute(ctx, pipeline.ValidateInput{
		SourcePath:        cmd.Input,
		DestPath:          cmd.Output,
		Scale:             cmd.Scale,
		Method:            method,
		AllowedExtensions: upscale.ImageExtensions(),
	})
	if err != nil {
		return err
	}

	img, err := stills.Decode(cmd.Input)
	if err != nil {
		return fmt.Errorf("%w: could not read image from %s: %v", upscale.ErrCorruptInput, cmd.Input, err)
	}

	bounds := img.Bounds()
	outWidth, outHeight := upscale.OutputDims(bounds.Dx(), bounds.Dy(), cmd.Scale)
	if err := upscale.CheckCeiling(outWidth, outHeight, 0, 0); err != nil {
		return err
	}

	resized, err := sampler.Resize(img, outWidth, outHeight, validated.Method)
	if err != nil {
		return fmt.Errorf("%w: %v", upscale.ErrProcessing, err)
	}

	if err := stills.Encode(cmd.Output, resized); err != nil {
		return fmt.Errorf("%w: %v", upscale.ErrProcessing, err)
	}

	log.Info(l10n.F("Upscaled image to %dx%d", outWidth, outHeight))
	log.Info(l10n.F("Output saved to %s", cmd.Output))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("vidscale version %s", version))
	return nil
}
