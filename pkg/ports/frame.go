package ports

import (
	"image"
)

// Frame represents a single decoded video frame.
type Frame struct {
	Image image.Image
	Index int // Zero-based position in the stream
}

// Valid reports whether the frame carries a usable image.
// A nil image or an empty bounding box signals stream corruption.
func (f Frame) Valid() bool {
	if f.Image == nil {
		return false
	}
	b := f.Image.Bounds()
	return b.Dx() > 0 && b.Dy() > 0
}

// StreamProperties describes a video stream. Captured once per input
// and read-only afterwards.
type StreamProperties struct {
	FPS    float64
	Width  int
	Height int

	// RateRatio is the exact frame rate as a ratio string (e.g. "30000/1001")
	// when the prober can supply one. Empty otherwise.
	RateRatio string
}
