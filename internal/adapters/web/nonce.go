package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const nonceTTL = 12 * time.Hour

// nonceStore issues and validates single-purpose request tokens. A token
// stays valid until its TTL expires, so a page can reuse the nonce it
// was served with across many actions, the same way session nonces
// behave in the admin screens this serves.
type nonceStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	issued map[string]time.Time
}

func newNonceStore() *nonceStore {
	return &nonceStore{ttl: nonceTTL, issued: make(map[string]time.Time)}
}

// issue mints a fresh nonce.
func (s *nonceStore) issue() string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[token] = time.Now()
	return token
}

// valid reports whether the nonce was issued by this store and has not
// expired. Valid nonces are not consumed.
func (s *nonceStore) valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.issued[token]
	if !ok {
		return false
	}
	if time.Since(at) > s.ttl {
		delete(s.issued, token)
		return false
	}
	return true
}

// startPurge starts a background goroutine that evicts expired entries every hour.
func (s *nonceStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purgeExpired()
			}
		}
	}()
}

func (s *nonceStore) purgeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for token, at := range s.issued {
		if now.Sub(at) > s.ttl {
			delete(s.issued, token)
		}
	}
}
