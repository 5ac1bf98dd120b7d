package platform

import (
	"context"
	"testing"
)

func TestDetectBranchTable(t *testing.T) {
	version := func(context.Context) string { return "1.2.3" }

	tests := []struct {
		goos string
		want Info
	}{
		{"android", Info{"android", "1.2.3"}},
		{"ios", Info{"ios", "1.2.3"}},
		{"darwin", Info{"macos", "1.2.3"}},
		{"linux", Info{"linux", "1.2.3"}},
		{"windows", Info{"windows", "1.2.3"}},
		{"js", Info{"web", "1.2.3"}},
		{"wasip1", Info{"web", "1.2.3"}},
	}

	for _, tt := range tests {
		got := detect(context.Background(), tt.goos, version)
		if got != tt.want {
			t.Errorf("detect(%q) = %+v, want %+v", tt.goos, got, tt.want)
		}
	}
}

func TestDetectUnrecognizedTargetIsEmpty(t *testing.T) {
	called := false
	version := func(context.Context) string {
		called = true
		return "never"
	}

	got := detect(context.Background(), "plan9", version)
	if got != (Info{}) {
		t.Errorf("detect(plan9) = %+v, want empty", got)
	}
	if called {
		t.Error("version probe should not run for unrecognized targets")
	}
}

func TestDetectCurrentTarget(t *testing.T) {
	// Whatever the test host is, it is one of the recognized targets, so
	// the descriptor must carry a name.
	got := Detect(context.Background())
	if got.Name == "" {
		t.Errorf("Detect() = %+v, want non-empty name on a supported host", got)
	}
}
