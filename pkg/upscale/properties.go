package upscale

import (
	"fmt"

	"github.com/user/vidscale/pkg/ports"
)

// ValidateProperties rejects a stream that opened but reported unusable
// properties. This is corrupt input, distinct from an open failure.
func ValidateProperties(props ports.StreamProperties) error {
	if props.FPS <= 0 {
		return fmt.Errorf("%w: invalid frame rate %g, must be positive", ErrCorruptInput, props.FPS)
	}
	if props.Width <= 0 || props.Height <= 0 {
		return fmt.Errorf("%w: invalid video dimensions %dx%d, must be positive",
			ErrCorruptInput, props.Width, props.Height)
	}
	return nil
}
