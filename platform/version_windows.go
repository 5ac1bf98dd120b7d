//go:build windows

package platform

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows"
)

// osVersion reads the true OS build via RtlGetNtVersionNumbers, which is not
// subject to the compatibility-manifest lies GetVersionEx tells.
func osVersion(ctx context.Context) string {
	major, minor, build := windows.RtlGetNtVersionNumbers()
	return fmt.Sprintf("%d.%d.%d", major, minor, build)
}
