package upscale

import (
	"fmt"
	"path/filepath"
	"strings"
)

// VideoExtensions is the fixed set of supported output containers.
func VideoExtensions() []string {
	return []string{".mp4", ".avi", ".mov"}
}

// ImageExtensions is the fixed set of supported still-image formats.
func ImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".webp"}
}

// ValidateExtension rejects a destination whose extension is not in the
// allowed set, before processing begins.
func ValidateExtension(path string, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported output extension %q for %s (supported formats: %s)",
		ErrInvalidArgument, ext, filepath.Base(path), strings.Join(allowed, ", "))
}
