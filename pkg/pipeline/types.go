package pipeline

import (
	"github.com/user/vidscale/pkg/ports"
)

// ValidateInput carries everything the validation stage checks before
// any resource is acquired.
type ValidateInput struct {
	SourcePath string
	DestPath   string
	Scale      float64
	Method     string

	// AllowedExtensions is the fixed set of acceptable destination
	// extensions for this run (video containers or still-image formats).
	AllowedExtensions []string
}

// ValidateResult is the outcome of fail-fast validation.
type ValidateResult struct {
	Method ports.Method
}

// ProbeInput identifies the stream to read properties from.
type ProbeInput struct {
	SourcePath string
}

// ProbeResult carries the validated stream properties.
type ProbeResult struct {
	Props ports.StreamProperties
}

// TransformInput carries the open resources and geometry for the
// frame-by-frame resize loop. The caller owns stream and writer release.
type TransformInput struct {
	Stream ports.FrameStream
	Writer ports.FrameWriter
	Scale  float64
	Method ports.Method

	// Expected output dimensions; a resized frame that differs is a
	// fatal processing error.
	OutWidth  int
	OutHeight int
}

// TransformResult reports the completed streaming loop.
type TransformResult struct {
	FrameCount int
}
