package upscale

import (
	"fmt"
	"path/filepath"

	"github.com/user/vidscale/pkg/ports"
)

// ValidatePaths rejects invalid source/destination pairs before any
// expensive resource is touched. Checks run in order: source exists,
// source is a regular file, destination parent exists (created when
// missing), destination is not a directory, destination does not already
// exist, destination parent is writable. Creating the destination parent
// tree is the only side effect.
func ValidatePaths(fs ports.FileSystem, source, dest string) error {
	info, err := fs.Stat(source)
	if err != nil {
		return fmt.Errorf("%w: input file %s", ErrNotFound, source)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: input path %s is a directory, not a file", ErrWrongType, source)
	}

	parent := filepath.Dir(dest)
	if err := fs.MkdirAll(parent); err != nil {
		return fmt.Errorf("%w: cannot create output directory %s: %v", ErrPermission, parent, err)
	}

	if destInfo, err := fs.Stat(dest); err == nil {
		if destInfo.IsDir() {
			return fmt.Errorf("%w: output path %s is a directory", ErrWrongType, dest)
		}
		return fmt.Errorf("%w: output file %s already exists, refusing to overwrite", ErrAlreadyExists, dest)
	}

	if !fs.Writable(parent) {
		return fmt.Errorf("%w: output directory %s is not writable", ErrPermission, parent)
	}
	return nil
}
