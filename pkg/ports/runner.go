package ports

import (
	"context"
)

// ToolRunner abstracts blocking subprocess invocations of external tools.
type ToolRunner interface {
	// Look resolves the executable for name, returning its path.
	Look(name string) (string, error)

	// Run executes name with args and blocks until it exits. It returns
	// the captured stdout and stderr; a non-zero exit is reported as an
	// error with stderr still populated.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}
