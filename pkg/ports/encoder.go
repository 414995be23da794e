package ports

import (
	"context"
)

// FrameSink abstracts video encoding operations.
type FrameSink interface {
	// Open creates a writer bound to the destination path, codec, frame
	// rate and output dimensions.
	Open(ctx context.Context, path string, codec string, props StreamProperties) (FrameWriter, error)
}

// FrameWriter is an open encoding session over one output file.
type FrameWriter interface {
	// Write encodes a single frame. The frame must match the dimensions
	// the writer was opened with.
	Write(frame Frame) error

	// Close finalizes the container and releases the encoder. It is
	// idempotent and safe to call on every exit path.
	Close() error
}

// CodecSelector chooses an output codec from an ordered priority list.
type CodecSelector interface {
	// Select returns the first codec in priority that the runtime can
	// initialize. On exhaustion it returns an error naming every
	// attempted candidate.
	Select(ctx context.Context, priority []string) (string, error)
}
