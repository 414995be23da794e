// Package execrunner runs external tools as blocking subprocesses.
package execrunner

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/user/vidscale/pkg/ports"
)

// Runner implements ports.ToolRunner using os/exec.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// Look resolves the executable for name via PATH.
func (r *Runner) Look(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes name with args and blocks until it exits, capturing
// stdout and stderr separately.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Ensure Runner implements ports.ToolRunner
var _ ports.ToolRunner = (*Runner)(nil)
