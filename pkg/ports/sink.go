package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePropertiesJSON saves the probed stream properties as JSON.
	SavePropertiesJSON(data []byte) error

	// SaveFrame saves a resized frame image.
	SaveFrame(index int, img image.Image) error
}
