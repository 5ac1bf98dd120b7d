//go:build linux

package platform

import (
	"context"
	"os"
	"strings"
)

// osVersion reads the kernel release, falling back to the distro name from
// os-release. Android builds also take this path; the kernel release is the
// best portable identifier available without the platform SDK.
func osVersion(ctx context.Context) string {
	if data, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		if v := strings.TrimSpace(string(data)); v != "" {
			return v
		}
	}
	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if name, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
				return strings.Trim(name, `"`)
			}
		}
	}
	return ""
}
