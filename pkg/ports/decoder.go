// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// FrameSource abstracts video decoding operations.
type FrameSource interface {
	// Open starts decoding the video at path. The stream properties must
	// already be probed and validated; the decoder uses them to size its
	// frame buffers.
	Open(ctx context.Context, path string, props StreamProperties) (FrameStream, error)
}

// FrameStream is an open decoding session over one video file.
type FrameStream interface {
	// Properties returns the stream properties the source was opened with.
	Properties() StreamProperties

	// Read returns the next decoded frame. It returns io.EOF after the
	// last frame. Any other error indicates a corrupted stream or a
	// decoder failure.
	Read() (Frame, error)

	// Close releases the decoder. It is idempotent and safe to call on
	// every exit path.
	Close() error
}
