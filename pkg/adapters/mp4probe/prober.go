// Package mp4probe reads stream properties directly from MP4 boxes,
// avoiding a subprocess round trip for the common container.
package mp4probe

import (
	"context"
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vidscale/pkg/ports"
)

// Prober reads the first video track of a progressive MP4 file.
// Fragmented files and non-MP4 containers are reported as errors so a
// caller can fall back to a general prober.
type Prober struct{}

// New creates a new MP4 box prober.
func New() *Prober {
	return &Prober{}
}

// Properties returns frame rate and dimensions of the first video track.
func (p *Prober) Properties(ctx context.Context, path string) (ports.StreamProperties, error) {
	props := ports.StreamProperties{}

	f, err := os.Open(path)
	if err != nil {
		return props, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return props, fmt.Errorf("decode mp4: %w", err)
	}
	if mp4File.IsFragmented() || mp4File.Moov == nil {
		return props, fmt.Errorf("mp4probe: no progressive moov box in %s", path)
	}

	for _, trak := range mp4File.Moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		return trackProperties(trak)
	}

	return props, fmt.Errorf("mp4probe: no video track found in %s", path)
}

// FrameRateRatio is not derivable more cheaply than Properties; callers
// should use a general prober for the exact ratio.
func (p *Prober) FrameRateRatio(ctx context.Context, path string) (string, error) {
	props, err := p.Properties(ctx, path)
	if err != nil {
		return "", err
	}
	if props.RateRatio == "" {
		return "", fmt.Errorf("mp4probe: no frame rate information in %s", path)
	}
	return props.RateRatio, nil
}

func trackProperties(trak *mp4.TrakBox) (ports.StreamProperties, error) {
	props := ports.StreamProperties{}

	if trak.Tkhd == nil {
		return props, fmt.Errorf("mp4probe: video track missing tkhd box")
	}
	// Tkhd dimensions are 16.16 fixed point.
	props.Width = int(trak.Tkhd.Width >> 16)
	props.Height = int(trak.Tkhd.Height >> 16)

	if trak.Mdia.Mdhd == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stts == nil {
		return props, fmt.Errorf("mp4probe: video track missing timing boxes")
	}

	stts := trak.Mdia.Minf.Stbl.Stts
	var sampleCount, totalDuration uint64
	for i := range stts.SampleCount {
		sampleCount += uint64(stts.SampleCount[i])
		totalDuration += uint64(stts.SampleCount[i]) * uint64(stts.SampleTimeDelta[i])
	}
	if sampleCount == 0 || totalDuration == 0 {
		return props, fmt.Errorf("mp4probe: video track has no timed samples")
	}

	timescale := uint64(trak.Mdia.Mdhd.Timescale)
	props.FPS = float64(sampleCount) * float64(timescale) / float64(totalDuration)
	props.RateRatio = fmt.Sprintf("%d/%d", sampleCount*timescale, totalDuration)
	return props, nil
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
