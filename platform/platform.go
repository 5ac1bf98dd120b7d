// Package platform identifies the runtime environment an error was
// captured on.
package platform

import (
	"context"
	"runtime"
)

// Info is the two-element platform descriptor attached to error reports.
// The zero value means the runtime target was not recognized.
type Info struct {
	Name    string
	Version string
}

// Detect returns the platform descriptor for the current runtime target.
// Unrecognized targets yield an empty Info; Detect never fails.
func Detect(ctx context.Context) Info {
	return detect(ctx, runtime.GOOS, osVersion)
}

// detect is split out so tests can cover the branch table for targets the
// test binary is not compiled for.
func detect(ctx context.Context, goos string, version func(context.Context) string) Info {
	switch goos {
	case "android":
		return Info{Name: "android", Version: version(ctx)}
	case "ios":
		return Info{Name: "ios", Version: version(ctx)}
	case "darwin":
		return Info{Name: "macos", Version: version(ctx)}
	case "linux":
		return Info{Name: "linux", Version: version(ctx)}
	case "windows":
		return Info{Name: "windows", Version: version(ctx)}
	case "js", "wasip1":
		return Info{Name: "web", Version: version(ctx)}
	default:
		return Info{}
	}
}
