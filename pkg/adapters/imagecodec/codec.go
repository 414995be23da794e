// Package imagecodec loads and saves still images, selecting the format
// by file extension. PNG and JPEG use the standard decoders; WebP uses
// chai2010/webp.
package imagecodec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"

	"github.com/user/vidscale/pkg/ports"
)

// jpegQuality is used when re-encoding JPEG output.
const jpegQuality = 92

// Codec implements ports.StillCodec.
type Codec struct {
	fs ports.FileSystem
}

// New creates a new still-image codec.
func New(fs ports.FileSystem) *Codec {
	return &Codec{fs: fs}
}

// Decode reads the image at path according to its extension.
func (c *Codec) Decode(path string) (image.Image, error) {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}

	switch ext(path) {
	case ".png":
		return png.Decode(bytes.NewReader(data))
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(data))
	case ".webp":
		return webp.Decode(bytes.NewReader(data))
	default:
		// Fall back to content sniffing for anything else.
		img, _, err := image.Decode(bytes.NewReader(data))
		return img, err
	}
}

// Encode writes img to path in the format its extension names.
func (c *Codec) Encode(path string, img image.Image) error {
	var buf bytes.Buffer
	var err error

	switch ext(path) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case ".webp":
		err = webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: jpegQuality})
	default:
		return fmt.Errorf("imagecodec: unsupported image extension %q", ext(path))
	}
	if err != nil {
		return fmt.Errorf("encode image %s: %w", path, err)
	}

	return c.fs.WriteFile(path, buf.Bytes())
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Ensure Codec implements ports.StillCodec
var _ ports.StillCodec = (*Codec)(nil)
