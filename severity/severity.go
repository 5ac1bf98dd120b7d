// Package severity classifies error kinds into triage levels.
package severity

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// Severity is the triage level attached to a reported error
type Severity string

const (
	Info     Severity = "info"
	Warning  Severity = "warning"
	Error    Severity = "error"
	Critical Severity = "critical"
)

// Kind identifies the concrete failure class of a reported error.
// The set is closed: classification is a pure lookup over these values,
// callers supply the kind explicitly (or derive it with KindForError).
type Kind string

const (
	KindProcessSpawn  Kind = "process-spawn"
	KindMissingPlugin Kind = "missing-plugin"
	KindOS            Kind = "os"

	KindIO              Kind = "io"
	KindRender          Kind = "render"
	KindPlatformChannel Kind = "platform-channel"
	KindImageLoad       Kind = "image-load"

	KindMalformedInput Kind = "malformed-input"
	KindUnsupported    Kind = "unsupported"
	KindPathExists     Kind = "path-exists"
	KindPathNotFound   Kind = "path-not-found"
	KindPathAccess     Kind = "path-access"
	KindTimeout        Kind = "timeout"

	KindDeferredLoad   Kind = "deferred-load"
	KindTickerCanceled Kind = "ticker-canceled"

	KindUnknown Kind = "unknown"
)

// Membership tables for Classify. The sets are disjoint; lookup order is
// critical, error, warning, info, and anything not listed falls through to
// Error as a conservative default.
var criticalKinds = map[Kind]struct{}{
	KindProcessSpawn:  {},
	KindMissingPlugin: {},
	KindOS:            {},
}

var errorKinds = map[Kind]struct{}{
	KindIO:              {},
	KindRender:          {},
	KindPlatformChannel: {},
	KindImageLoad:       {},
}

var warningKinds = map[Kind]struct{}{
	KindMalformedInput: {},
	KindUnsupported:    {},
	KindPathExists:     {},
	KindPathNotFound:   {},
	KindPathAccess:     {},
	KindTimeout:        {},
}

var infoKinds = map[Kind]struct{}{
	KindDeferredLoad:   {},
	KindTickerCanceled: {},
}

// Classify maps an error kind to its severity level.
// It is total: kinds not present in any table classify as Error.
func Classify(kind Kind) Severity {
	if _, ok := criticalKinds[kind]; ok {
		return Critical
	}
	if _, ok := errorKinds[kind]; ok {
		return Error
	}
	if _, ok := warningKinds[kind]; ok {
		return Warning
	}
	if _, ok := infoKinds[kind]; ok {
		return Info
	}
	return Error
}

// KindForError derives a Kind from a concrete Go error so callers that hold
// an error value rather than an explicit kind still get useful triage.
// Sentinel checks run before syscall.Errno: fs.ErrNotExist and friends
// unwrap to Errno values and must win.
func KindForError(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindPathNotFound
	case errors.Is(err, fs.ErrExist):
		return KindPathExists
	case errors.Is(err, fs.ErrPermission):
		return KindPathAccess
	case errors.Is(err, errors.ErrUnsupported):
		return KindUnsupported
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return KindTimeout
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return KindProcessSpawn
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var jsonErr *json.SyntaxError
	if errors.As(err, &jsonErr) {
		return KindMalformedInput
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return KindMalformedInput
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return KindIO
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return KindOS
	}

	return KindUnknown
}
