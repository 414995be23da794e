package upscale

import (
	"fmt"
	"math"
)

// Resolution ceiling defaults (8K UHD).
const (
	DefaultMaxWidth  = 7680
	DefaultMaxHeight = 4320
)

// ValidateScale enforces the scale factor invariant before any resource
// is opened. Factors below 1 (including zero and negatives) are rejected.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale < 1 {
		return fmt.Errorf("%w: scale factor must be >= 1 (got %g); use --scale 2 to double dimensions",
			ErrInvalidArgument, scale)
	}
	return nil
}

// OutputDims returns the output dimensions for a source of width x height
// scaled by scale, rounding each axis independently.
func OutputDims(width, height int, scale float64) (int, int) {
	return int(math.Round(float64(width) * scale)), int(math.Round(float64(height) * scale))
}

// CheckCeiling rejects output dimensions above the configured resolution
// ceiling. Checked before any frame is processed.
func CheckCeiling(width, height, maxWidth, maxHeight int) error {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	if width > maxWidth || height > maxHeight {
		return fmt.Errorf("%w: output dimensions %dx%d exceed the %dx%d resolution ceiling",
			ErrInvalidArgument, width, height, maxWidth, maxHeight)
	}
	return nil
}
