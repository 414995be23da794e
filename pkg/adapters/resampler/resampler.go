// Package resampler implements pixel resampling over the x/image draw
// kernels, with Lanczos supplied by nfnt/resize.
package resampler

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/user/vidscale/pkg/ports"
)

// kernels maps the closed method set onto x/image scalers. Lanczos has
// no x/image kernel and is handled separately.
var kernels = map[ports.Method]draw.Scaler{
	ports.MethodNearest: draw.NearestNeighbor,
	ports.MethodLinear:  draw.BiLinear,
	ports.MethodCubic:   draw.CatmullRom,
}

// Resampler implements ports.Resampler.
type Resampler struct{}

// New creates a new Resampler.
func New() *Resampler {
	return &Resampler{}
}

// Resize scales img to exactly width x height using the given method.
func (r *Resampler) Resize(img image.Image, width, height int, method ports.Method) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("resampler: nil source image")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resampler: invalid target dimensions %dx%d", width, height)
	}

	if method == ports.MethodLanczos {
		return resize.Resize(uint(width), uint(height), img, resize.Lanczos3), nil
	}

	kernel, ok := kernels[method]
	if !ok {
		return nil, fmt.Errorf("resampler: no kernel for method %q", method)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	kernel.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Ensure Resampler implements ports.Resampler
var _ ports.Resampler = (*Resampler)(nil)
