package errwatch

import "sync"

// State holds the result of the registration handshake and the last failure
// status. One State is shared by every report a Client sends. The app id is
// written once by a successful Register and read on every Report; the lock
// keeps a burst of concurrent reports from racing a late registration.
type State struct {
	mu            sync.RWMutex
	appIdentifier string
	apiKey        string
	appID         int64
	registered    bool
	lastStatus    string
}

// NewState returns an empty, unregistered state.
func NewState() *State {
	return &State{}
}

func (s *State) setCredentials(appIdentifier, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appIdentifier = appIdentifier
	s.apiKey = apiKey
}

func (s *State) setRegistered(appID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appID = appID
	s.registered = true
}

func (s *State) setLastStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastStatus = status
}

func (s *State) credentials() (appIdentifier, apiKey string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appIdentifier, s.apiKey
}

// AppID returns the application id granted by the handshake, or 0 while
// unregistered. 0 is a valid payload value meaning "unregistered".
func (s *State) AppID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appID
}

// Registered reports whether a handshake has succeeded.
func (s *State) Registered() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registered
}

// LastStatus returns the human-readable reason of the most recent failure,
// or the empty string if nothing has failed yet.
func (s *State) LastStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStatus
}
