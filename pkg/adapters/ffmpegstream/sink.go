package ffmpegstream

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"sync"

	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// Sink implements ports.FrameSink over an ffmpeg rawvideo stdin pipe.
type Sink struct{}

// NewSink creates a new ffmpeg-backed frame sink.
func NewSink() *Sink {
	return &Sink{}
}

// Open starts an ffmpeg process encoding raw RGBA frames from stdin into
// path with the given codec, frame rate and dimensions. The "-n" flag
// makes ffmpeg itself refuse to overwrite an existing destination.
func (s *Sink) Open(ctx context.Context, path string, codec string, props ports.StreamProperties) (ports.FrameWriter, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upscale.ErrUnavailable, err)
	}
	if props.Width <= 0 || props.Height <= 0 {
		return nil, fmt.Errorf("ffmpegstream: invalid output dimensions %dx%d", props.Width, props.Height)
	}

	rate := fmt.Sprintf("%g", props.FPS)
	if props.RateRatio != "" {
		rate = props.RateRatio
	}

	args := []string{
		"-n",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", props.Width, props.Height),
		"-r", rate,
		"-i", "pipe:0",
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
		path,
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	w := &writer{
		props: props,
		cmd:   cmd,
	}
	cmd.Stderr = &w.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("get stdin pipe: %w", err)
	}
	w.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return w, nil
}

// writer is one open encoding session.
type writer struct {
	props  ports.StreamProperties
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	mu     sync.Mutex
	closed bool
}

// Write converts the frame to RGBA and pipes the raw pixels to ffmpeg.
func (w *writer) Write(frame ports.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrNotOpen
	}

	rgba, ok := frame.Image.(*image.RGBA)
	if !ok || rgba.Bounds() != image.Rect(0, 0, w.props.Width, w.props.Height) {
		rgba = image.NewRGBA(image.Rect(0, 0, w.props.Width, w.props.Height))
		draw.Draw(rgba, rgba.Bounds(), frame.Image, frame.Image.Bounds().Min, draw.Src)
	}

	if _, err := w.stdin.Write(rgba.Pix); err != nil {
		return fmt.Errorf("write frame %d: %w\nstderr: %s", frame.Index, err, w.stderr.String())
	}
	return nil
}

// Close signals end of input and waits for ffmpeg to finalize the
// container. Idempotent.
func (w *writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg encoding failed: %w\nstderr: %s", err, w.stderr.String())
	}
	return nil
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
