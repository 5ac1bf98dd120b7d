// Package collector is a small in-memory collection service used to exercise
// the SDK against a live endpoint during development. It implements the same
// wire surface the hosted service does: POST /app/validate and POST /errors.
package collector

import (
	"sync"
)

// ReceivedError is one error record accepted by the collector.
type ReceivedError struct {
	AppID           int64  `json:"appId"`
	Severity        string `json:"severity"`
	ErrorMessage    string `json:"errorMessage"`
	StackTrace      string `json:"stackTrace"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	ErrorDatetime   string `json:"errorDatetime"`
}

// Registry holds registered applications and the errors received for them.
type Registry struct {
	mu      sync.Mutex
	nextID  int64
	apps    map[string]int64
	records []ReceivedError
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		nextID: 1,
		apps:   make(map[string]int64),
	}
}

// AppID returns the application id for an identifier, assigning the next
// sequential id on first sight. Re-validation of a known identifier returns
// the same id.
func (r *Registry) AppID(identifier string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.apps[identifier]; ok {
		return id
	}
	id := r.nextID
	r.nextID++
	r.apps[identifier] = id
	return id
}

// Add stores a received error record
func (r *Registry) Add(rec ReceivedError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// Count returns the number of received error records
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// BySeverity returns received error counts keyed by severity
func (r *Registry) BySeverity() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int)
	for _, rec := range r.records {
		counts[rec.Severity]++
	}
	return counts
}

// Recent returns up to n most recently received records, newest last
func (r *Registry) Recent(n int) []ReceivedError {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > len(r.records) {
		n = len(r.records)
	}
	out := make([]ReceivedError, n)
	copy(out, r.records[len(r.records)-n:])
	return out
}
