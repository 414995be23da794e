package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/user/vidscale/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource.
type FrameSource struct {
	OpenFunc func(ctx context.Context, path string, props ports.StreamProperties) (ports.FrameStream, error)

	// Stream is returned by Open when OpenFunc is nil.
	Stream *FrameStream

	OpenCalled bool
}

func (m *FrameSource) Open(ctx context.Context, path string, props ports.StreamProperties) (ports.FrameStream, error) {
	m.OpenCalled = true
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path, props)
	}
	if m.Stream == nil {
		m.Stream = &FrameStream{Props: props}
	}
	return m.Stream, nil
}

// FrameStream is a mock implementation of ports.FrameStream. It serves
// Frames in order and then io.EOF, unless ReadFunc overrides it.
type FrameStream struct {
	Props  ports.StreamProperties
	Frames []ports.Frame

	ReadFunc func() (ports.Frame, error)

	// FailAt, when >= 0, makes Read fail with FailErr at that index.
	FailAt  int
	FailErr error

	mu         sync.Mutex
	pos        int
	CloseCalls int
}

// NewFrameStream creates a mock stream serving the given frames.
func NewFrameStream(props ports.StreamProperties, frames []ports.Frame) *FrameStream {
	return &FrameStream{Props: props, Frames: frames, FailAt: -1}
}

func (m *FrameStream) Properties() ports.StreamProperties {
	return m.Props
}

func (m *FrameStream) Read() (ports.Frame, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailErr != nil && m.pos == m.FailAt {
		return ports.Frame{}, m.FailErr
	}
	if m.pos >= len(m.Frames) {
		return ports.Frame{}, io.EOF
	}
	frame := m.Frames[m.pos]
	m.pos++
	return frame, nil
}

func (m *FrameStream) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}

// Released reports whether Close was called at least once.
func (m *FrameStream) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CloseCalls > 0
}

// Ensure mocks implement the ports interfaces
var (
	_ ports.FrameSource = (*FrameSource)(nil)
	_ ports.FrameStream = (*FrameStream)(nil)
)
