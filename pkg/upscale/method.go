package upscale

import (
	"fmt"
	"strings"

	"github.com/user/vidscale/pkg/ports"
)

// DefaultMethod is used when no interpolation method is requested.
const DefaultMethod = ports.MethodCubic

// ParseMethod maps a user-supplied interpolation name onto the closed
// method set. Unrecognized names are rejected before any resource is
// opened, with a message enumerating the valid choices.
func ParseMethod(name string) (ports.Method, error) {
	m := ports.Method(strings.ToLower(strings.TrimSpace(name)))
	for _, valid := range ports.Methods() {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown interpolation method %q (valid methods: %s)",
		ErrInvalidArgument, name, methodNames())
}

func methodNames() string {
	names := make([]string, 0, len(ports.Methods()))
	for _, m := range ports.Methods() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
