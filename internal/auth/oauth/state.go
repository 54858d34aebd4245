package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"sync"
	"time"
)

// generateState creates a cryptographically secure random state string
// for CSRF protection. 32 random bytes, base64url-encoded.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// StateStore holds pending CSRF states for in-flight authorization flows.
// Each state is single-use: Consume removes it on the first lookup, so a
// replayed callback finds nothing and fails closed.
type StateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
	ttl    time.Duration
	done   chan struct{}
}

func NewStateStore(ttl time.Duration) *StateStore {
	s := &StateStore{
		states: make(map[string]time.Time),
		ttl:    ttl,
		done:   make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Save records a freshly generated state with its expiry.
func (s *StateStore) Save(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = time.Now().Add(s.ttl)
}

// Consume removes the state and reports whether it was present and
// unexpired. The removal happens regardless of the outcome.
func (s *StateStore) Consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.states[state]
	delete(s.states, state)
	return ok && time.Now().Before(expiry)
}

// Close stops the background cleanup goroutine.
func (s *StateStore) Close() {
	close(s.done)
}

func (s *StateStore) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for state, expiry := range s.states {
				if now.After(expiry) {
					delete(s.states, state)
				}
			}
			s.mu.Unlock()
		}
	}
}
