package ffmpegstream

import "errors"

var (
	// ErrFFmpegNotFound is returned when no usable ffmpeg binary exists.
	ErrFFmpegNotFound = errors.New("ffmpegstream: ffmpeg not found in PATH")

	// ErrNotOpen is returned when a stream or writer is used before Open
	// or after Close.
	ErrNotOpen = errors.New("ffmpegstream: not open")

	// ErrShortFrame is returned when the decoder pipe ends mid-frame,
	// which indicates a truncated or corrupted stream.
	ErrShortFrame = errors.New("ffmpegstream: truncated frame data")
)
