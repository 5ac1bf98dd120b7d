//go:build !linux && !darwin && !windows

package platform

import (
	"context"
	"runtime"
)

// osVersion has no host API to query on wasm and other targets; the Go
// runtime version is the closest stable build identifier.
func osVersion(ctx context.Context) string {
	return runtime.Version()
}
