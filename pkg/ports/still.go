package ports

import (
	"image"
)

// StillCodec loads and saves still images, choosing the format by file
// extension.
type StillCodec interface {
	// Decode reads the image at path.
	Decode(path string) (image.Image, error)

	// Encode writes img to path.
	Encode(path string, img image.Image) error
}
