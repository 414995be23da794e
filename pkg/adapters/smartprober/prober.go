// Package smartprober selects the best available property prober: MP4
// box parsing for .mp4 inputs, ffprobe for everything else and as a
// fallback.
package smartprober

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/user/vidscale/pkg/ports"
)

// Prober implements ports.Prober with a fast path for MP4 containers.
type Prober struct {
	mp4    ports.Prober
	probe  ports.Prober
	logger ports.Logger
}

// New creates a smart prober that prefers mp4 box parsing and falls back
// to the general prober.
func New(mp4 ports.Prober, probe ports.Prober, logger ports.Logger) *Prober {
	return &Prober{
		mp4:    mp4,
		probe:  probe,
		logger: logger.WithComponent("prober"),
	}
}

// Properties probes path, using the MP4 fast path when the extension
// matches and its box layout is readable.
func (p *Prober) Properties(ctx context.Context, path string) (ports.StreamProperties, error) {
	if strings.ToLower(filepath.Ext(path)) == ".mp4" {
		props, err := p.mp4.Properties(ctx, path)
		if err == nil {
			return props, nil
		}
		p.logger.Debug("MP4 box probe failed, falling back to ffprobe: %s", err)
	}
	return p.probe.Properties(ctx, path)
}

// FrameRateRatio always uses the general prober; it reports the exact
// ratio for any container.
func (p *Prober) FrameRateRatio(ctx context.Context, path string) (string, error) {
	return p.probe.FrameRateRatio(ctx, path)
}

// Ensure Prober implements ports.Prober
var _ ports.Prober = (*Prober)(nil)
