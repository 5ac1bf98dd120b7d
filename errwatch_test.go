package errwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/errwatch/errwatch-go/platform"
	"github.com/errwatch/errwatch-go/severity"
)

func testProbe(context.Context) platform.Info {
	return platform.Info{Name: "linux", Version: "6.1.0-test"}
}

func testClock() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.FixedZone("MSK", 3*3600))
}

func newTestClient(serverURL string, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(serverURL),
		WithPlatformProbe(testProbe),
		WithClock(testClock),
		WithLogger(log.New(io.Discard, "", 0)),
	}
	return New(append(base, opts...)...)
}

func TestRegisterSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app/validate" {
			t.Errorf("path = %q, want /app/validate", r.URL.Path)
		}
		if got := r.Header.Get("api_key"); got != "secret" {
			t.Errorf("api_key header = %q, want secret", got)
		}
		var req struct {
			AppIdentifier string `json:"appIdentifier"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.AppIdentifier != "com.example.app" {
			t.Errorf("appIdentifier = %q, want com.example.app", req.AppIdentifier)
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"data": 42}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Register(context.Background(), "com.example.app", "secret")

	if got := client.State().AppID(); got != 42 {
		t.Errorf("AppID() = %d, want 42", got)
	}
	if !client.State().Registered() {
		t.Error("Registered() = false, want true")
	}
	if got := client.LastStatus(); got != "" {
		t.Errorf("LastStatus() = %q, want empty", got)
	}
}

func TestRegisterRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Register(context.Background(), "com.example.app", "wrong")

	if client.State().Registered() {
		t.Error("Registered() = true, want false after rejection")
	}
	if got := client.State().AppID(); got != 0 {
		t.Errorf("AppID() = %d, want 0 after rejection", got)
	}
	if got := client.LastStatus(); got != StatusInvalidCredentials {
		t.Errorf("LastStatus() = %q, want %q", got, StatusInvalidCredentials)
	}
}

func TestRegisterNullDataStaysUnregistered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": null}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Register(context.Background(), "com.example.app", "secret")

	if client.State().Registered() {
		t.Error("Registered() = true, want false for null data")
	}
	if got := client.LastStatus(); got != "" {
		t.Errorf("LastStatus() = %q, want empty", got)
	}
}

func TestRegisterTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithTimeout(50*time.Millisecond))
	client.Register(context.Background(), "com.example.app", "secret")

	if got := client.LastStatus(); got != StatusTimedOut {
		t.Errorf("LastStatus() = %q, want %q", got, StatusTimedOut)
	}
	if client.State().Registered() {
		t.Error("Registered() = true, want false after timeout")
	}
}

func TestRegisterAgainOverwrites(t *testing.T) {
	var id int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data": %d}`, id)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	id = 7
	client.Register(context.Background(), "com.example.app", "secret")
	id = 9
	client.Register(context.Background(), "com.example.other", "secret")

	if got := client.State().AppID(); got != 9 {
		t.Errorf("AppID() = %d, want 9 after second register", got)
	}
}

func TestReportPayload(t *testing.T) {
	var (
		mu      sync.Mutex
		payload map[string]interface{}
		header  string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/app/validate" {
			fmt.Fprint(w, `{"data": 42}`)
			return
		}
		if r.URL.Path != "/errors" {
			t.Errorf("path = %q, want /errors", r.URL.Path)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		header = r.Header.Get("api_key")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Register(context.Background(), "com.example.app", "secret")
	client.Report(context.Background(), severity.KindIO, "disk full", "main.go:42")

	mu.Lock()
	defer mu.Unlock()

	if header != "secret" {
		t.Errorf("api_key header = %q, want secret", header)
	}

	want := map[string]interface{}{
		"appId":           float64(42),
		"severity":        "error",
		"errorMessage":    "disk full",
		"stackTrace":      "main.go:42",
		"platform":        "linux",
		"platformVersion": "6.1.0-test",
		"errorDatetime":   "2026-08-30T09:00:00Z",
	}
	for key, wantVal := range want {
		if payload[key] != wantVal {
			t.Errorf("payload[%q] = %v, want %v", key, payload[key], wantVal)
		}
	}
	if len(payload) != len(want) {
		t.Errorf("payload has %d fields, want %d: %v", len(payload), len(want), payload)
	}
}

func TestReportUnregisteredUsesZeroAppID(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Report(context.Background(), severity.KindTimeout, "slow call", "")

	if payload["appId"] != float64(0) {
		t.Errorf("appId = %v, want 0 while unregistered", payload["appId"])
	}
	if payload["severity"] != "warning" {
		t.Errorf("severity = %v, want warning", payload["severity"])
	}
}

func TestReportIgnoresResponseStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Report(context.Background(), severity.KindIO, "boom", "")

	if got := client.LastStatus(); got != "" {
		t.Errorf("LastStatus() = %q, want empty for a delivered call", got)
	}
}

func TestReportTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithTimeout(50*time.Millisecond))
	client.Report(context.Background(), severity.KindIO, "boom", "")

	if got := client.LastStatus(); got != StatusTimedOut {
		t.Errorf("LastStatus() = %q, want %q", got, StatusTimedOut)
	}
}

func TestReportConnectionFailureIsRecorded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse every connection

	client := newTestClient(server.URL)
	client.Report(context.Background(), severity.KindIO, "boom", "")

	if got := client.LastStatus(); got == "" || got == StatusTimedOut {
		t.Errorf("LastStatus() = %q, want a connection error text", got)
	}
}

func TestConcurrentReportsAreIndependent(t *testing.T) {
	const n = 16

	var (
		mu       sync.Mutex
		payloads []map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode payload: %v", err)
			return
		}
		mu.Lock()
		payloads = append(payloads, p)
		mu.Unlock()
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := severity.KindIO
			if i%2 == 1 {
				kind = severity.KindProcessSpawn
			}
			client.Report(context.Background(), kind, fmt.Sprintf("error-%d", i), fmt.Sprintf("stack-%d", i))
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()

	if len(payloads) != n {
		t.Fatalf("received %d payloads, want %d", len(payloads), n)
	}
	for _, p := range payloads {
		msg, _ := p["errorMessage"].(string)
		var i int
		if _, err := fmt.Sscanf(msg, "error-%d", &i); err != nil {
			t.Errorf("unexpected errorMessage %q", msg)
			continue
		}
		wantSeverity := "error"
		if i%2 == 1 {
			wantSeverity = "critical"
		}
		if p["severity"] != wantSeverity {
			t.Errorf("payload %d severity = %v, want %s", i, p["severity"], wantSeverity)
		}
		if p["stackTrace"] != fmt.Sprintf("stack-%d", i) {
			t.Errorf("payload %d stackTrace = %v, want stack-%d", i, p["stackTrace"], i)
		}
	}
}

func TestReportErrorDerivesKind(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.ReportError(context.Background(), context.DeadlineExceeded, "")

	if payload["severity"] != "warning" {
		t.Errorf("severity = %v, want warning for a deadline error", payload["severity"])
	}
}

func TestReportErrorNilIsNoop(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.ReportError(context.Background(), nil, "")

	if calls != 0 {
		t.Errorf("nil error produced %d outbound calls, want 0", calls)
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	func() {
		defer client.Recover(context.Background())
		panic("unexpected state")
	}()

	if payload["errorMessage"] != "unexpected state" {
		t.Errorf("errorMessage = %v, want the panic value", payload["errorMessage"])
	}
	stack, _ := payload["stackTrace"].(string)
	if !strings.Contains(stack, "goroutine") {
		t.Errorf("stackTrace does not look like a stack: %q", stack)
	}
}

func TestGoReportsPanicWithoutCrashing(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(done)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.Go(context.Background(), func() {
		panic("background failure")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("panic in Go() was not reported")
	}
}
