package ports

import (
	"image"
)

// Method identifies an interpolation kernel.
type Method string

const (
	// MethodNearest is nearest-neighbor interpolation (fastest, lowest quality).
	MethodNearest Method = "nearest"
	// MethodLinear is bilinear interpolation.
	MethodLinear Method = "linear"
	// MethodCubic is bicubic (Catmull-Rom) interpolation.
	MethodCubic Method = "cubic"
	// MethodLanczos is Lanczos interpolation (slowest, highest quality).
	MethodLanczos Method = "lanczos"
)

// Methods returns the closed set of recognized interpolation methods.
func Methods() []Method {
	return []Method{MethodNearest, MethodLinear, MethodCubic, MethodLanczos}
}

// Resampler abstracts the pixel-resampling kernel. Implementations are
// deterministic, pure and perform no I/O.
type Resampler interface {
	// Resize scales img to exactly width x height using the given method.
	Resize(img image.Image, width, height int, method Method) (image.Image, error)
}
