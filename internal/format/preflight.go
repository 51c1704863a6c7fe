package format

import (
	"fmt"
	"os/exec"
	"strings"
)

// Missing returns the binaries of cmds that are not found on PATH, in order,
// without duplicates.
func Missing(cmds []*Command) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, c := range cmds {
		if seen[c.Path] {
			continue
		}
		seen[c.Path] = true
		if _, err := exec.LookPath(c.Path); err != nil {
			missing = append(missing, c.Path)
		}
	}
	return missing
}

// Preflight checks that every formatter binary is available on PATH.
// A missing formatter is not fatal to a build; callers use this to warn.
func Preflight(cmds []*Command) error {
	if missing := Missing(cmds); len(missing) > 0 {
		return fmt.Errorf("formatter binaries not found in PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
