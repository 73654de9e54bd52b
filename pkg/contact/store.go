package contact

import (
	"sync"
	"time"
)

// PendingStore is the single source of truth for submissions that are mid
// verification. It is safe for concurrent use; each operation runs under the
// store mutex so read-then-write sequences on the same email never lose
// updates.
type PendingStore struct {
	mu      sync.Mutex
	entries map[string]PendingSubmission
	ttl     time.Duration
}

// NewPendingStore creates a store with the given entry lifetime. A ttl of 0
// means entries never expire.
func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		entries: map[string]PendingSubmission{},
		ttl:     ttl,
	}
}

// Upsert stores the pending submission under its email, replacing any
// existing entry for that address.
func (s *PendingStore) Upsert(pending PendingSubmission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[pending.Email] = pending
}

// Get returns the pending submission for the email. Expired entries are
// treated as absent and removed.
func (s *PendingStore) Get(email string) (PendingSubmission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.entries[email]
	if !ok {
		return PendingSubmission{}, false
	}
	if s.expired(pending, time.Now()) {
		delete(s.entries, email)
		return PendingSubmission{}, false
	}
	return pending, true
}

// Delete removes the entry for the email, if any.
func (s *PendingStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// DeleteWithCode removes the entry for the email only if its stored code
// still matches, so a record overwritten by a newer submission is left
// untouched. Reports whether an entry was removed.
func (s *PendingStore) DeleteWithCode(email string, code int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.entries[email]
	if !ok || pending.OTP != code {
		return false
	}
	delete(s.entries, email)
	return true
}

// CleanupExpired removes all expired entries and returns how many were
// removed.
func (s *PendingStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}
	now := time.Now()
	removed := 0
	for email, pending := range s.entries {
		if s.expired(pending, now) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}

func (s *PendingStore) expired(pending PendingSubmission, now time.Time) bool {
	return s.ttl > 0 && now.Sub(pending.CreatedAt) > s.ttl
}
