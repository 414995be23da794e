package rebuild

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/vidscale/pkg/adapters/logger"
	"github.com/user/vidscale/pkg/mocks"
	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/stages/validate"
	"github.com/user/vidscale/pkg/upscale"
)

const workDir = "/tmp/vidscale-test-work"

// fixture wires the rebuild orchestrator over mock adapters. The mock
// runner simulates frame extraction by seeding stills into the mock
// filesystem when the extract invocation runs.
type fixture struct {
	fs      *mocks.FileSystem
	runner  *mocks.ToolRunner
	prober  *mocks.Prober
	sampler *mocks.Resampler
	stills  *mocks.StillCodec
	orch    *Orchestrator
}

func newFixture(extractedFrames int) *fixture {
	f := &fixture{
		fs:      mocks.NewFileSystem(),
		runner:  &mocks.ToolRunner{},
		prober:  &mocks.Prober{Props: ports.StreamProperties{FPS: 30, Width: 4, Height: 4}, Ratio: "30/1"},
		sampler: &mocks.Resampler{},
		stills:  &mocks.StillCodec{},
	}
	f.fs.AddFile("in.mp4", []byte("video"))
	f.fs.TempDirFunc = func(dir, pattern string) (string, error) {
		f.fs.AddDir(workDir)
		return workDir, nil
	}
	f.runner.RunFunc = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		// The extraction call names the frame pattern as its last
		// argument; emulate ffmpeg dumping numbered stills.
		if len(args) == 3 && args[0] == "-i" {
			for i := 1; i <= extractedFrames; i++ {
				f.fs.AddFile(filepath.Join(workDir, fmt.Sprintf("frame_%06d.png", i)), []byte("png"))
			}
		}
		return nil, nil, nil
	}

	log := logger.NewNoop()
	f.orch = New(validate.NewStage(f.fs, log), f.runner, f.prober, f.sampler, f.stills, f.fs, log)
	return f
}

func defaultConfig() Config {
	return Config{
		SourcePath: "in.mp4",
		DestPath:   "out.mp4",
		Scale:      2,
		Method:     "lanczos",
		CRF:        20,
		Preset:     "slow",
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
	if result.RateRatio != "30/1" {
		t.Errorf("rate ratio = %q, want 30/1", result.RateRatio)
	}

	// Every extracted still was decoded, resized and written back.
	if len(f.stills.DecodeCalls) != 3 || len(f.stills.EncodeCalls) != 3 {
		t.Errorf("decode/encode calls = %d/%d, want 3/3", len(f.stills.DecodeCalls), len(f.stills.EncodeCalls))
	}
	for _, m := range f.sampler.ResizeCalls {
		if m != ports.MethodLanczos {
			t.Errorf("resize used %q, want lanczos", m)
		}
	}

	// One extract run, one rebuild run, both through ffmpeg.
	calls := f.runner.CallsFor("ffmpeg")
	if len(calls) != 2 {
		t.Fatalf("ffmpeg invoked %d times, want 2", len(calls))
	}
	if !f.runner.HasRun("ffmpeg", "-framerate 30/1", "-c:v libx264", "-preset slow", "-crf 20", "out.mp4") {
		t.Errorf("unexpected rebuild invocation: %+v", calls[1])
	}

	// The working directory is gone.
	if f.fs.HasDir(workDir) {
		t.Error("temporary frame directory was not removed")
	}
}

func TestRun_ProgressCallback(t *testing.T) {
	f := newFixture(4)

	var indexes []int
	total := 0
	config := defaultConfig()
	config.OnFrame = func(index, n int) {
		indexes = append(indexes, index)
		total = n
	}

	if _, err := f.orch.Run(context.Background(), config); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(indexes) != 4 || indexes[3] != 3 || total != 4 {
		t.Errorf("progress = %v of %d", indexes, total)
	}
}

func TestRun_FFmpegMissing(t *testing.T) {
	f := newFixture(0)
	f.runner.LookFunc = func(name string) (string, error) {
		return "", errors.New("not found in PATH")
	}

	_, err := f.orch.Run(context.Background(), defaultConfig())
	if !errors.Is(err, upscale.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "is required") {
		t.Errorf("error should say the tool is required, got %q", err)
	}
	// Nothing ran, nothing to clean up.
	if len(f.runner.RunCalls) != 0 {
		t.Errorf("no subprocess should run without ffmpeg, got %+v", f.runner.RunCalls)
	}
}

func TestRun_ExtractFailureStillCleansUp(t *testing.T) {
	f := newFixture(0)
	f.runner.RunFunc = func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("Invalid data found when processing input"), errors.New("exit status 1")
	}

	_, err := f.orch.Run(context.Background(), defaultConfig())
	if !errors.Is(err, upscale.ErrProcessing) {
		t.Fatalf("expected ErrProcessing, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error should surface ffmpeg stderr, got %q", err)
	}
	// Cleanup runs on the error path too.
	if len(f.fs.RemoveAllCalls) != 1 || f.fs.RemoveAllCalls[0] != workDir {
		t.Errorf("RemoveAll calls = %v, want [%s]", f.fs.RemoveAllCalls, workDir)
	}
}

func TestRun_ZeroExtractedFramesIsCorruptInput(t *testing.T) {
	f := newFixture(0)

	_, err := f.orch.Run(context.Background(), defaultConfig())
	if !errors.Is(err, upscale.ErrCorruptInput) {
		t.Fatalf("expected ErrCorruptInput, got %v", err)
	}
	if f.fs.HasDir(workDir) {
		t.Error("temporary frame directory was not removed")
	}
}

func TestRun_CeilingRejectedBeforeExtraction(t *testing.T) {
	f := newFixture(3)
	f.prober.Props = ports.StreamProperties{FPS: 30, Width: 4000, Height: 3000}

	config := defaultConfig()
	config.Scale = 3

	_, err := f.orch.Run(context.Background(), config)
	if !errors.Is(err, upscale.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	// No frame was dumped and no temp dir created.
	if len(f.runner.RunCalls) != 0 {
		t.Errorf("no subprocess should run, got %+v", f.runner.RunCalls)
	}
	if len(f.fs.RemoveAllCalls) != 0 {
		t.Errorf("no temp dir should exist, RemoveAll calls = %v", f.fs.RemoveAllCalls)
	}
}

func TestRun_CustomFFmpegPath(t *testing.T) {
	f := newFixture(2)

	config := defaultConfig()
	config.FFmpegPath = "/opt/ffmpeg/bin/ffmpeg"

	if _, err := f.orch.Run(context.Background(), config); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.runner.CallsFor("/opt/ffmpeg/bin/ffmpeg")) != 2 {
		t.Errorf("custom ffmpeg path not used: %+v", f.runner.RunCalls)
	}
	if len(f.runner.CallsFor("ffmpeg")) != 0 {
		t.Errorf("default tool name used despite override: %+v", f.runner.RunCalls)
	}
}
