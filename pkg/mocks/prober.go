package mocks

import (
	"context"
	"image"

	"github.com/user/vidscale/pkg/ports"
)

// Prober is a mock implementation of ports.Prober.
type Prober struct {
	PropertiesFunc     func(ctx context.Context, path string) (ports.StreamProperties, error)
	FrameRateRatioFunc func(ctx context.Context, path string) (string, error)

	// Props and Ratio are returned when the funcs are nil.
	Props ports.StreamProperties
	Ratio string

	PropertiesCalled bool
	RatioCalled      bool
}

func (m *Prober) Properties(ctx context.Context, path string) (ports.StreamProperties, error) {
	m.PropertiesCalled = true
	if m.PropertiesFunc != nil {
		return m.PropertiesFunc(ctx, path)
	}
	return m.Props, nil
}

func (m *Prober) FrameRateRatio(ctx context.Context, path string) (string, error) {
	m.RatioCalled = true
	if m.FrameRateRatioFunc != nil {
		return m.FrameRateRatioFunc(ctx, path)
	}
	if m.Ratio != "" {
		return m.Ratio, nil
	}
	return "30/1", nil
}

// Resampler is a mock implementation of ports.Resampler. By default it
// returns an RGBA image of exactly the requested dimensions.
type Resampler struct {
	ResizeFunc func(img image.Image, width, height int, method ports.Method) (image.Image, error)

	ResizeCalls []ports.Method
}

func (m *Resampler) Resize(img image.Image, width, height int, method ports.Method) (image.Image, error) {
	m.ResizeCalls = append(m.ResizeCalls, method)
	if m.ResizeFunc != nil {
		return m.ResizeFunc(img, width, height, method)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// StillCodec is a mock implementation of ports.StillCodec.
type StillCodec struct {
	DecodeFunc func(path string) (image.Image, error)
	EncodeFunc func(path string, img image.Image) error

	// Img is returned by Decode when DecodeFunc is nil.
	Img image.Image

	DecodeCalls []string
	EncodeCalls []string
}

func (m *StillCodec) Decode(path string) (image.Image, error) {
	m.DecodeCalls = append(m.DecodeCalls, path)
	if m.DecodeFunc != nil {
		return m.DecodeFunc(path)
	}
	if m.Img != nil {
		return m.Img, nil
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (m *StillCodec) Encode(path string, img image.Image) error {
	m.EncodeCalls = append(m.EncodeCalls, path)
	if m.EncodeFunc != nil {
		return m.EncodeFunc(path, img)
	}
	return nil
}

// Ensure mocks implement the ports interfaces
var (
	_ ports.Prober     = (*Prober)(nil)
	_ ports.Resampler  = (*Resampler)(nil)
	_ ports.StillCodec = (*StillCodec)(nil)
)
