package ffmpegstream

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sync"

	"github.com/user/vidscale/pkg/ports"
	"github.com/user/vidscale/pkg/upscale"
)

// Source implements ports.FrameSource over an ffmpeg rawvideo stdout
// pipe. One frame of raw RGBA is read per Read call.
type Source struct{}

// NewSource creates a new ffmpeg-backed frame source.
func NewSource() *Source {
	return &Source{}
}

// Open starts an ffmpeg process decoding path to raw RGBA on stdout.
// The props dimensions size the per-frame read buffer.
func (s *Source) Open(ctx context.Context, path string, props ports.StreamProperties) (ports.FrameStream, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", upscale.ErrUnavailable, err)
	}
	if props.Width <= 0 || props.Height <= 0 {
		return nil, fmt.Errorf("ffmpegstream: cannot open with dimensions %dx%d", props.Width, props.Height)
	}

	args := []string{
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	st := &stream{
		props: props,
		cmd:   cmd,
	}
	cmd.Stderr = &st.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("get stdout pipe: %w", err)
	}
	st.stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	return st, nil
}

// stream is one open decoding session.
type stream struct {
	props  ports.StreamProperties
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer

	mu     sync.Mutex
	index  int
	closed bool
	done   bool
}

// Properties returns the stream properties the source was opened with.
func (st *stream) Properties() ports.StreamProperties {
	return st.props
}

// Read returns the next frame, or io.EOF once ffmpeg has emitted its
// last frame and exited cleanly.
func (st *stream) Read() (ports.Frame, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return ports.Frame{}, ErrNotOpen
	}
	if st.done {
		return ports.Frame{}, io.EOF
	}

	rgba := image.NewRGBA(image.Rect(0, 0, st.props.Width, st.props.Height))
	n, err := io.ReadFull(st.stdout, rgba.Pix)
	if err == io.EOF && n == 0 {
		// Clean end of stream; a decoder failure surfaces as a non-zero
		// exit here since no frame was produced in front of it.
		st.done = true
		if werr := st.cmd.Wait(); werr != nil {
			return ports.Frame{}, fmt.Errorf("ffmpeg decoding failed: %w\nstderr: %s", werr, st.stderr.String())
		}
		return ports.Frame{}, io.EOF
	}
	if err != nil {
		st.done = true
		st.cmd.Wait()
		return ports.Frame{}, fmt.Errorf("%w at frame %d: %s", ErrShortFrame, st.index, st.stderr.String())
	}

	frame := ports.Frame{Image: rgba, Index: st.index}
	st.index++
	return frame, nil
}

// Close releases the decoder process. Idempotent.
func (st *stream) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return nil
	}
	st.closed = true

	st.stdout.Close()
	if !st.done && st.cmd.Process != nil {
		st.cmd.Process.Kill()
		st.cmd.Wait()
	}
	return nil
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
