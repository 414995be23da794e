package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/vidscale/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	OpenFunc func(ctx context.Context, path string, codec string, props ports.StreamProperties) (ports.FrameWriter, error)

	// Writer is returned by Open when OpenFunc is nil.
	Writer *FrameWriter

	OpenCalled bool
	OpenPath   string
	OpenCodec  string
	OpenProps  ports.StreamProperties
}

func (m *FrameSink) Open(ctx context.Context, path string, codec string, props ports.StreamProperties) (ports.FrameWriter, error) {
	m.OpenCalled = true
	m.OpenPath = path
	m.OpenCodec = codec
	m.OpenProps = props
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path, codec, props)
	}
	if m.Writer == nil {
		m.Writer = &FrameWriter{}
	}
	return m.Writer, nil
}

// FrameWriter is a mock implementation of ports.FrameWriter.
type FrameWriter struct {
	WriteFunc func(frame ports.Frame) error

	// FailAt, when > 0, makes Write fail with FailErr after that many
	// successful writes.
	FailAt  int
	FailErr error

	mu         sync.Mutex
	Written    []int
	CloseCalls int
}

func (m *FrameWriter) Write(frame ports.Frame) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(frame)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailErr != nil && len(m.Written) >= m.FailAt {
		return m.FailErr
	}
	m.Written = append(m.Written, frame.Index)
	return nil
}

func (m *FrameWriter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}

// Released reports whether Close was called at least once.
func (m *FrameWriter) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CloseCalls > 0
}

// CodecSelector is a mock implementation of ports.CodecSelector.
type CodecSelector struct {
	SelectFunc func(ctx context.Context, priority []string) (string, error)

	// Codec is returned when SelectFunc is nil; defaults to the first
	// priority entry.
	Codec string
}

func (m *CodecSelector) Select(ctx context.Context, priority []string) (string, error) {
	if m.SelectFunc != nil {
		return m.SelectFunc(ctx, priority)
	}
	if m.Codec != "" {
		return m.Codec, nil
	}
	if len(priority) > 0 {
		return priority[0], nil
	}
	return "libx264", nil
}

// DebugSink is a recording mock implementation of ports.DebugSink.
type DebugSink struct {
	On bool

	PropertiesJSON []byte
	SavedFrames    []int
}

func (m *DebugSink) Enabled() bool { return m.On }

func (m *DebugSink) SavePropertiesJSON(data []byte) error {
	m.PropertiesJSON = data
	return nil
}

func (m *DebugSink) SaveFrame(index int, img image.Image) error {
	m.SavedFrames = append(m.SavedFrames, index)
	return nil
}

// Ensure mocks implement the ports interfaces
var (
	_ ports.FrameSink     = (*FrameSink)(nil)
	_ ports.FrameWriter   = (*FrameWriter)(nil)
	_ ports.CodecSelector = (*CodecSelector)(nil)
	_ ports.DebugSink     = (*DebugSink)(nil)
)
