// Package orchestrator coordinates the direct frame-stream pipeline.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ideamans/go-l10n"

	"github.com/user/vidscale/pkg/pipeline"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// State tracks the orchestrator through one run. Transitions are
// strictly forward: Unopened -> Validated -> Opened -> Streaming ->
// Closed (success or error).
type State int

const (
	// StateUnopened is the initial state before validation.
	StateUnopened State = iota
	// StateValidated means fail-fast checks passed; no resource is open yet.
	StateValidated
	// StateOpened means input stream, codec and output writer are ready.
	StateOpened
	// StateStreaming means frames are being transformed and emitted.
	StateStreaming
	// StateClosedSuccess means the run completed and resources were released.
	StateClosedSuccess
	// StateClosedError means the run failed; resources were still released.
	StateClosedError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateValidated:
		return "validated"
	case StateOpened:
		return "opened"
	case StateStreaming:
		return "streaming"
	case StateClosedSuccess:
		return "closed(success)"
	case StateClosedError:
		return "closed(error)"
	default:
		return "unknown"
	}
}

// Config contains all configuration for one direct-variant run.
type Config struct {
	SourcePath string
	DestPath   string
	Scale      float64
	Method     string

	// CodecPriority is tried in order; first success wins.
	CodecPriority []string

	// Resolution ceiling; zero values fall back to the 8K defaults.
	MaxWidth  int
	MaxHeight int
}

// RunResult summarizes a completed run.
type RunResult struct {
	Props      ports.StreamProperties
	Codec      string
	OutWidth   int
	OutHeight  int
	FrameCount int
}

// Orchestrator owns the direct-variant state machine and guarantees that
// the input stream and output writer are released on every exit path.
type Orchestrator struct {
	validateStage  pipeline.Stage[pipeline.ValidateInput, pipeline.ValidateResult]
	probeStage     pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	transformStage pipeline.Stage[pipeline.TransformInput, pipeline.TransformResult]
	source         ports.FrameSource
	sink           ports.FrameSink
	selector       ports.CodecSelector
	debugSink      ports.DebugSink
	logger         ports.Logger

	state State
}

// New creates a new Orchestrator.
func New(
	validateStage pipeline.Stage[pipeline.ValidateInput, pipeline.ValidateResult],
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	transformStage pipeline.Stage[pipeline.TransformInput, pipeline.TransformResult],
	source ports.FrameSource,
	sink ports.FrameSink,
	selector ports.CodecSelector,
	debugSink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		validateStage:  validateStage,
		probeStage:     probeStage,
		transformStage: transformStage,
		source:         source,
		sink:           sink,
		selector:       selector,
		debugSink:      debugSink,
		logger:         logger,
		state:          StateUnopened,
	}
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State {
	return o.state
}

func (o *Orchestrator) transition(next State) {
	o.logger.Debug("State %s -> %s", o.state, next)
	o.state = next
}

// Run executes the complete direct-variant pipeline. Whatever the
// outcome, the input stream and the output writer (if it was opened) are
// released exactly once before Run returns.
func (o *Orchestrator) Run(ctx context.Context, config Config) (result RunResult, err error) {
	// Registered first so it runs last, after the stream and writer
	// release defers below have settled err.
	defer func() {
		if err != nil {
			o.transition(StateClosedError)
		} else {
			o.transition(StateClosedSuccess)
		}
	}()

	// 1. Fail-fast validation, before any I/O.
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
	o.transition(StateValidated)

	// 2. Read and validate stream properties.
	probed, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{SourcePath: config.SourcePath})
	if err != nil {
		o.logger.Error(l10n.F("Failed to read stream properties: %s", err))
		return result, err
	}
	result.Props = probed.Props
	o.logger.Info(l10n.F("Input: %dx%d at %g fps", probed.Props.Width, probed.Props.Height, probed.Props.FPS))

	if o.debugSink.Enabled() {
		if data, jerr := json.MarshalIndent(probed.Props, "", "  "); jerr == nil {
			o.debugSink.SavePropertiesJSON(data)
		}
	}

	// 3. Output geometry and resolution ceiling, before any resource opens.
	outWidth, outHeight := upscale.OutputDims(probed.Props.Width, probed.Props.Height, config.Scale)
	if err = upscale.CheckCeiling(outWidth, outHeight, config.MaxWidth, config.MaxHeight); err != nil {
		o.logger.Error(l10n.F("Resolution check failed: %s", err))
		return result, err
	}
	result.OutWidth = outWidth
	result.OutHeight = outHeight

	// 4. Select the output codec: first of the priority list that
	// initializes, exhaustion is fatal.
	codec, err := o.selector.Select(ctx, config.CodecPriority)
	if err != nil {
		o.logger.Error(l10n.F("Codec selection failed: %s", err))
		return result, err
	}
	result.Codec = codec
	o.logger.Debug("Selected output codec %s", codec)

	// 5. Open the input stream.
	stream, err := o.source.Open(ctx, config.SourcePath, probed.Props)
	if err != nil {
		return result, fmt.Errorf("open input stream: %w", err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("release input stream: %w", cerr)
		}
	}()

	// 6. Open the output writer at the source frame rate.
	outProps := ports.StreamProperties{
		FPS:       probed.Props.FPS,
		Width:     outWidth,
		Height:    outHeight,
		RateRatio: probed.Props.RateRatio,
	}
	writer, err := o.sink.Open(ctx, config.DestPath, codec, outProps)
	if err != nil {
		return result, fmt.Errorf("open output writer: %w", err)
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("finalize output: %w", cerr)
		}
	}()
	o.transition(StateOpened)

	// 7. Stream frames through the transform stage.
	o.transition(StateStreaming)
	o.logger.Info(l10n.F("Upscaling to %dx%d (%s)", outWidth, outHeight, validated.Method))
	transformed, err := o.transformStage.Execute(ctx, pipeline.TransformInput{
		Stream:    stream,
		Writer:    writer,
		Scale:     config.Scale,
		Method:    validated.Method,
		OutWidth:  outWidth,
		OutHeight: outHeight,
	})
	if err != nil {
		o.logger.Error(l10n.F("Frame processing failed: %s", err))
		return result, err
	}
	result.FrameCount = transformed.FrameCount

	o.logger.Info(l10n.F("Processed %d frames", transformed.FrameCount))
	return result, nil
}
