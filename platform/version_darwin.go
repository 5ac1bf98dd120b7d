//go:build darwin

package platform

import (
	"context"
	"os/exec"
	"strings"
)

// osVersion asks sw_vers for the product version. iOS builds cannot spawn
// processes; they fall back to the Darwin kernel line from uname.
func osVersion(ctx context.Context) string {
	if out, err := exec.CommandContext(ctx, "sw_vers", "-productVersion").Output(); err == nil {
		if v := strings.TrimSpace(string(out)); v != "" {
			return v
		}
	}
	if out, err := exec.CommandContext(ctx, "uname", "-r").Output(); err == nil {
		return strings.TrimSpace(string(out))
	}
	return ""
}
