package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/user/vidscale/pkg/ports"
)

// RunCall records one subprocess invocation.
type RunCall struct {
	Name string
	Args []string
}

// ToolRunner is a mock implementation of ports.ToolRunner.
type ToolRunner struct {
	LookFunc func(name string) (string, error)
	RunFunc  func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

	mu       sync.Mutex
	RunCalls []RunCall
}

func (m *ToolRunner) Look(name string) (string, error) {
	if m.LookFunc != nil {
		return m.LookFunc(name)
	}
	return "/usr/bin/" + name, nil
}

func (m *ToolRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	m.RunCalls = append(m.RunCalls, RunCall{Name: name, Args: args})
	m.mu.Unlock()
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	return nil, nil, nil
}

// CallsFor returns the recorded invocations of the named tool.
func (m *ToolRunner) CallsFor(name string) []RunCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []RunCall
	for _, c := range m.RunCalls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

// HasRun reports whether a recorded call of name contains all the given
// argument fragments in order.
func (m *ToolRunner) HasRun(name string, fragments ...string) bool {
	for _, c := range m.CallsFor(name) {
		joined := strings.Join(c.Args, " ")
		ok := true
		idx := 0
		for _, f := range fragments {
			pos := strings.Index(joined[idx:], f)
			if pos < 0 {
				ok = false
				break
			}
			idx += pos + len(f)
		}
		if ok {
			return true
		}
	}
	return false
}

// Ensure ToolRunner implements ports.ToolRunner
var _ ports.ToolRunner = (*ToolRunner)(nil)
