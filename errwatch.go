// Package errwatch is a client-side error reporting SDK. It classifies
// captured errors by severity, enriches them with a platform descriptor,
// and forwards them as JSON to a remote collection service. Reporting is
// fire-and-forget: no call on this package ever raises a failure back into
// the hosting application.
package errwatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/errwatch/errwatch-go/internal/version"
	"github.com/errwatch/errwatch-go/platform"
	"github.com/errwatch/errwatch-go/severity"
)

const (
	// DefaultBaseURL is the collection service endpoint.
	DefaultBaseURL = "https://collect.errwatch.io"

	// DefaultTimeout bounds every outbound call. There is no retry; a call
	// that misses the bound is recorded and dropped.
	DefaultTimeout = 10 * time.Second

	// StatusTimedOut is the status recorded when an outbound call misses
	// its deadline.
	StatusTimedOut = "API Timedout"

	// StatusInvalidCredentials is the status recorded when the validation
	// endpoint rejects the app identifier / API key pair.
	StatusInvalidCredentials = "Either App Identifier or Api Key is invalid!"
)

// Reporter is the capability a hosting application wires into its
// uncaught-error hook. The core carries no dependency on any particular
// hook mechanism; the host injects a Reporter wherever errors surface.
type Reporter interface {
	Report(ctx context.Context, kind severity.Kind, message, stackTrace string)
}

// Client sends error reports to the collection service.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger
	state   *State
	probe   func(context.Context) platform.Info
	now     func() time.Time
	timeout time.Duration
}

var _ Reporter = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the collection service endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger overrides the diagnostic sink. The default is log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithState shares a registration state between clients.
func WithState(state *State) Option {
	return func(c *Client) { c.state = state }
}

// WithPlatformProbe overrides platform detection.
func WithPlatformProbe(probe func(context.Context) platform.Info) Option {
	return func(c *Client) { c.probe = probe }
}

// WithTimeout overrides the per-call deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a Client. Without options it talks to DefaultBaseURL with the
// default timeout and logs diagnostics through the standard logger.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		logger:  log.Default(),
		state:   NewState(),
		probe:   platform.Detect,
		now:     time.Now,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: c.timeout}
	}
	return c
}

// State exposes the shared registration state for inspection.
func (c *Client) State() *State {
	return c.state
}

// LastStatus returns the reason of the most recent failure, if any.
func (c *Client) LastStatus() string {
	return c.state.LastStatus()
}

// Register validates the app identifier / API key pair against the service
// and stores the granted application id for subsequent reports. It never
// returns an error: a rejection or transport failure is recorded in the
// state's last status and leaves the client in unregistered mode, where
// reports carry application id 0. Calling Register again overwrites the
// prior outcome.
func (c *Client) Register(ctx context.Context, appIdentifier, apiKey string) {
	c.state.setCredentials(appIdentifier, apiKey)

	body, err := json.Marshal(validateRequest{AppIdentifier: appIdentifier})
	if err != nil {
		c.recordFailure("register", "", err)
		return
	}

	statusCode, respBody, err := c.post(ctx, "/app/validate", apiKey, body)
	if err != nil {
		c.recordFailure("register", "", err)
		return
	}

	if statusCode != http.StatusOK {
		c.state.setLastStatus(StatusInvalidCredentials)
		c.logger.Printf("errwatch: register rejected for %q (HTTP %d)", appIdentifier, statusCode)
		return
	}

	var env validateResponse
	if err := json.Unmarshal(respBody, &env); err != nil {
		c.recordFailure("register", "", fmt.Errorf("decode validate response: %w", err))
		return
	}
	if env.Data == nil {
		// Recognized but no id granted; stay unregistered.
		c.logger.Printf("errwatch: register for %q returned no application id", appIdentifier)
		return
	}

	c.state.setRegistered(*env.Data)
}

// Report classifies the error, attaches the platform descriptor and a UTC
// timestamp, and posts the record to the collection service. The response
// status is not inspected; only transport failures are recorded. Report
// never propagates a failure to its caller. Each invocation is independent:
// concurrent reports produce concurrent outbound calls.
func (c *Client) Report(ctx context.Context, kind severity.Kind, message, stackTrace string) {
	info := c.probe(ctx)

	record := errorRecord{
		AppID:           c.state.AppID(),
		Severity:        severity.Classify(kind),
		ErrorMessage:    sanitize(message),
		StackTrace:      sanitize(stackTrace),
		Platform:        info.Name,
		PlatformVersion: info.Version,
		ErrorDatetime:   c.now().UTC().Format(time.RFC3339),
	}

	// The event id never goes on the wire; it correlates diagnostic log
	// lines with a specific invocation.
	eventID := uuid.NewString()

	body, err := json.Marshal(record)
	if err != nil {
		c.recordFailure("report", eventID, err)
		return
	}

	_, apiKey := c.state.credentials()
	if _, _, err := c.post(ctx, "/errors", apiKey, body); err != nil {
		c.recordFailure("report", eventID, err)
	}
}

// ReportError derives the kind from a concrete Go error and reports it.
// A nil error is ignored.
func (c *Client) ReportError(ctx context.Context, err error, stackTrace string) {
	if err == nil {
		return
	}
	c.Report(ctx, severity.KindForError(err), err.Error(), stackTrace)
}

// Recover is meant to be deferred: it converts a panic into a report with
// the current stack and swallows it.
func (c *Client) Recover(ctx context.Context) {
	if r := recover(); r != nil {
		c.Report(ctx, severity.KindUnknown, fmt.Sprint(r), string(debug.Stack()))
	}
}

// Go runs fn on a new goroutine, reporting instead of crashing if it panics.
func (c *Client) Go(ctx context.Context, fn func()) {
	go func() {
		defer c.Recover(ctx)
		fn()
	}()
}

// post issues one JSON POST bounded by the client timeout and drains the
// response before the deadline is released.
func (c *Client) post(ctx context.Context, path, apiKey string, body []byte) (int, []byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_key", apiKey)
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// recordFailure implements the widened catch: a timeout keeps its fixed
// status text, every other transport failure records its own error text.
func (c *Client) recordFailure(op, eventID string, err error) {
	status := err.Error()
	if isTimeout(err) {
		status = StatusTimedOut
	}
	c.state.setLastStatus(status)

	if eventID != "" {
		c.logger.Printf("errwatch: %s %s failed: %v", op, eventID, err)
	} else {
		c.logger.Printf("errwatch: %s failed: %v", op, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
