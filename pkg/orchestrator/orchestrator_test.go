package orchestrator

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/vidscale/pkg/adapters/logger"
	"github.com/user/vidscale/pkg/mocks"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/stages/probe"
	"github.com/user/vidscale/pkg/stages/transform"
	"github.com/user/vidscale/pkg/stages/validate"
	"github.com/user/vidscale/pkg/upscale"
)

// fixture wires real stages over mock adapters.
type fixture struct {
	fs       *mocks.FileSystem
	prober   *mocks.Prober
	source   *mocks.FrameSource
	stream   *mocks.FrameStream
	sink     *mocks.FrameSink
	writer   *mocks.FrameWriter
	selector *mocks.CodecSelector
	debug    *mocks.DebugSink
	orch     *Orchestrator
}

func newFixture(frameCount int) *fixture {
	props := ports.StreamProperties{FPS: 30, Width: 4, Height: 4, RateRatio: "30/1"}

	frames := make([]ports.Frame, frameCount)
	for i := range frames {
		frames[i] = ports.Frame{Image: image.NewRGBA(image.Rect(0, 0, 4, 4)), Index: i}
	}

	f := &fixture{
		fs:       mocks.NewFileSystem(),
		prober:   &mocks.Prober{Props: props},
		source:   &mocks.FrameSource{},
		stream:   mocks.NewFrameStream(props, frames),
		sink:     &mocks.FrameSink{},
		writer:   &mocks.FrameWriter{},
		selector: &mocks.CodecSelector{},
		debug:    &mocks.DebugSink{},
	}
	f.fs.AddFile("in.mp4", []byte("video"))
	f.source.Stream = f.stream
	f.sink.Writer = f.writer

	log := logger.NewNoop()
	f.orch = New(
		validate.NewStage(f.fs, log),
		probe.NewStage(f.prober, log),
		transform.NewStage(&mocks.Resampler{}, f.debug, log),
		f.source,
		f.sink,
		f.selector,
		f.debug,
		log,
	)
	return f
}

func defaultConfig() Config {
	return Config{
		SourcePath:    "in.mp4",
		DestPath:      "out.mp4",
		Scale:         2,
		Method:        "cubic",
		CodecPriority: []string{"libx264", "mpeg4"},
	}
}

func TestRun_Success(t *testing.T) {
	f := newFixture(3)

	result, err := f.orch.Run(context.Background(), defaultConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.FrameCount != 3 {
		t.Errorf("frame count = %d, want 3", result.FrameCount)
	}
	if result.OutWidth != 8 || result.OutHeight != 8 {
		t.Errorf("output dims = %dx%d, want 8x8", result.OutWidth, result.OutHeight)
	}
	if result.Codec != "libx264" {
		t.Errorf("codec = %q, want libx264", result.Codec)
	}

	// The writer was opened with the output geometry at the source rate.
	if f.sink.OpenProps.Width != 8 || f.sink.OpenProps.Height != 8 {
		t.Errorf("writer opened at %dx%d", f.sink.OpenProps.Width, f.sink.OpenProps.Height)
	}
	if f.sink.OpenProps.FPS != 30 || f.sink.OpenProps.RateRatio != "30/1" {
		t.Errorf("writer rate = %g (%q)", f.sink.OpenProps.FPS, f.sink.OpenProps.RateRatio)
	}
	if f.sink.OpenPath != "out.mp4" {
		t.Errorf("writer path = %q", f.sink.OpenPath)
	}

	// Both resources released exactly once, success state reached.
	if f.stream.CloseCalls != 1 {
		t.Errorf("stream closed %d times, want 1", f.stream.CloseCalls)
	}
	if f.writer.CloseCalls != 1 {
		t.Errorf("writer closed %d times, want 1", f.writer.CloseCalls)
	}
	if f.orch.State() != StateClosedSuccess {
		t.Errorf("state = %s, want %s", f.orch.State(), StateClosedSuccess)
	}
}

func TestRun_MidStreamFailureReleasesResources(t *testing.T) {
	f := newFixture(10)
	f.stream.FailAt = 4
	f.stream.FailErr = errors.New("decoder pipe closed")

	_, err := f.orch.Run(context.Background(), defaultConfig())
	if !errors.Is(err, upscale.ErrCorruptInput) {
		t.Fatalf("expected ErrCorruptInput, got %v", err)
	}

	if f.stream.CloseCalls != 1 {
		t.Errorf("stream closed %d times, want 1", f.stream.CloseCalls)
	}
	if f.writer.CloseCalls != 1 {
		t.Errorf("writer closed %d times, want 1", f.writer.CloseCalls)
	}
	if f.orch.State() != StateClosedError {
		t.Errorf("state = %s, want %s", f.orch.State(), StateClosedError)
	}
}

func TestRun_WriteFailureReleasesResources(t *testing.T) {
	f := newFixture(5)
	f.writer.FailAt = 2
	f.writer.FailErr = errors.New("encoder exited")

	_, err := f.orch.Run(context.Background(), defaultConfig())
	if !errors.Is(err, upscale.ErrProcessing) {
		t.Fatalf("expected ErrProcessing, got %v", err)
	}
	if !f.stream.Released() || !f.writer.Released() {
		t.Error("resources not released after write failure")
	}
}

func TestRun_CeilingRejectedBeforeOpen(t *testing.T) {
	f := newFixture(1)
	f.prober.Props = ports.StreamProperties{FPS: 30, Width: 4000, Height: 3000}

	config := defaultConfig()
	config.Scale = 3

	_, err := f.orch.Run(context.Background(), config)
	if !errors.Is(err, upscale.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if f.source.OpenCalled {
		t.Error("input stream must not be opened when the ceiling rejects the run")
	}
	if f.sink.OpenCalled {
		t.Error("output writer must not be opened when the ceiling rejects the run")
	}
	if f.orch.State() != StateClosedError {
		t.Errorf("state = %s, want %s", f.orch.State(), StateClosedError)
	}
}

func TestRun_CodecExhaustionBeforeOpen(t *testing.T) {
	f := newFixture(1)
	f.selector.SelectFunc = func(ctx context.Context, priority []string) (string, error) {
		return "", upscale.ErrUnavailable
	}

	_, err := f.orch.Run(context.Background(), defaultConfig())
	if !errors.Is(err, upscale.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if f.source.OpenCalled {
		t.Error("input stream must not be opened without a usable codec")
	}
}

func TestRun_ValidationFailureSkipsProbe(t *testing.T) {
	f := newFixture(1)
	f.fs.AddFile("out.mp4", []byte("existing"))

	_, err := f.orch.Run(context.Background(), defaultConfig())
	if !errors.Is(err, upscale.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if f.prober.PropertiesCalled {
		t.Error("probing must not run after validation failed")
	}
	if f.source.OpenCalled {
		t.Error("input stream must not be opened after validation failed")
	}
}

func TestRun_DebugSinkReceivesProperties(t *testing.T) {
	f := newFixture(1)
	f.debug.On = true

	if _, err := f.orch.Run(context.Background(), defaultConfig()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.debug.PropertiesJSON) == 0 {
		t.Error("debug sink did not receive the probed properties")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnopened, "unopened"},
		{StateValidated, "validated"},
		{StateOpened, "opened"},
		{StateStreaming, "streaming"},
		{StateClosedSuccess, "closed(success)"},
		{StateClosedError, "closed(error)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
