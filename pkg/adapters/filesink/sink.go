// Package filesink provides a debug sink that writes intermediate
// results to a directory.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/user/vidscale/pkg/ports"
)

// Sink implements ports.DebugSink by writing files into a debug directory.
type Sink struct {
	dir string
	fs  ports.FileSystem
}

// New creates a new file-based debug sink rooted at dir.
func New(dir string, fs ports.FileSystem) *Sink {
	return &Sink{dir: dir, fs: fs}
}

// Enabled returns true; this sink always writes.
func (s *Sink) Enabled() bool {
	return true
}

// SavePropertiesJSON saves the probed stream properties.
func (s *Sink) SavePropertiesJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.dir, "properties.json"), data)
}

// SaveFrame saves one resized frame as PNG.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode debug frame %d: %w", index, err)
	}
	name := fmt.Sprintf("frame_%06d.png", index)
	return s.fs.WriteFile(filepath.Join(s.dir, name), buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
