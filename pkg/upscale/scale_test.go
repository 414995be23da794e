package upscale

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidateScale(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		wantErr bool
	}{
		{"identity", 1, false},
		{"double", 2, false},
		{"fractional above one", 1.5, false},
		{"large", 12, false},
		{"below one", 0.5, true},
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScale(tt.scale)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateScale(%g): expected error, got nil", tt.scale)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				if !strings.Contains(err.Error(), "must be >= 1") {
					t.Errorf("error should explain the constraint, got %q", err)
				}
			} else if err != nil {
				t.Errorf("ValidateScale(%g): unexpected error %v", tt.scale, err)
			}
		})
	}
}

func TestValidateScale_MessageSuggestsUsage(t *testing.T) {
	err := ValidateScale(0.5)
	if err == nil {
		t.Fatal("expected error for scale 0.5")
	}
	if !strings.Contains(err.Error(), "0.5") {
		t.Errorf("error should include the rejected value, got %q", err)
	}
	if !strings.Contains(err.Error(), "--scale 2") {
		t.Errorf("error should suggest a valid invocation, got %q", err)
	}
}

func TestOutputDims(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		scale      float64
		wantWidth  int
		wantHeight int
	}{
		{"identity", 640, 480, 1, 640, 480},
		{"double", 640, 480, 2, 1280, 960},
		{"fractional rounds per axis", 641, 481, 1.5, 962, 722},
		{"odd half rounds up", 3, 3, 1.5, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := OutputDims(tt.width, tt.height, tt.scale)
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("OutputDims(%d, %d, %g) = %dx%d, want %dx%d",
					tt.width, tt.height, tt.scale, w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestCheckCeiling(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		maxWidth  int
		maxHeight int
		wantErr   bool
	}{
		{"well under default ceiling", 1280, 960, 0, 0, false},
		{"exactly at default ceiling", 7680, 4320, 0, 0, false},
		{"width over default ceiling", 7681, 4320, 0, 0, true},
		{"height over default ceiling", 7680, 4321, 0, 0, true},
		{"4K tripled exceeds ceiling", 12000, 9000, 0, 0, true},
		{"custom ceiling honored", 2000, 2000, 1920, 1080, true},
		{"under custom ceiling", 1920, 1080, 1920, 1080, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCeiling(tt.width, tt.height, tt.maxWidth, tt.maxHeight)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CheckCeiling(%d, %d): expected error, got nil", tt.width, tt.height)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
			} else if err != nil {
				t.Errorf("CheckCeiling(%d, %d): unexpected error %v", tt.width, tt.height, err)
			}
		})
	}
}

func TestCheckCeiling_MessageNamesBothResolutions(t *testing.T) {
	// A 4000x3000 source at 3x lands over 8K on both axes.
	w, h := OutputDims(4000, 3000, 3)
	err := CheckCeiling(w, h, 0, 0)
	if err == nil {
		t.Fatal("expected error for 12000x9000 output")
	}
	for _, want := range []string{"12000x9000", "7680x4320"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got %q", want, err)
		}
	}
}
