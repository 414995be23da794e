package ports

import (
	"context"
)

// Prober reads stream properties from a video file without decoding it.
type Prober interface {
	// Properties returns the frame rate and dimensions of the first
	// video stream. An unreadable file is an open failure; a readable
	// file with non-positive properties is corrupt input.
	Properties(ctx context.Context, path string) (StreamProperties, error)

	// FrameRateRatio returns the exact frame rate of the first video
	// stream as a ratio string, e.g. "30000/1001".
	FrameRateRatio(ctx context.Context, path string) (string, error)
}
