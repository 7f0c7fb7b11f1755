package token

import (
	"sync"
	"time"
)

// Blacklist is the process-wide set of revoked token ids (`jti` claims).
// Logout inserts entries, every authenticated request consults it, and a
// periodic sweep drops entries once their expiry has passed. Correctness
// does not depend on the sweep: an unexpired revoked token stays blocked
// until its natural expiry. State is local to one process; a multi-replica
// deployment needs a shared store behind the same three operations.
type Blacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti -> expiry (zero time = no expiry)
}

// NewBlacklist returns an empty blacklist.
func NewBlacklist() *Blacklist {
	return &Blacklist{revoked: make(map[string]time.Time)}
}

// Revoke inserts a token id with an optional expiry. It reports whether the
// id was newly inserted, which gives refresh rotation its compare-and-revoke
// primitive: of two racing rotations only one observes true.
func (b *Blacklist) Revoke(id string, expiresAt time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.revoked[id]; ok {
		return false
	}
	b.revoked[id] = expiresAt
	return true
}

// IsRevoked reports whether the token id is currently revoked.
func (b *Blacklist) IsRevoked(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.revoked[id]
	return ok
}

// Sweep removes entries whose expiry has passed and returns how many were
// removed. Entries without an expiry are kept forever.
func (b *Blacklist) Sweep() int {
	now := time.Now().UTC()
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for id, exp := range b.revoked {
		if !exp.IsZero() && now.After(exp) {
			delete(b.revoked, id)
			removed++
		}
	}
	return removed
}

// Len returns the current number of revoked entries. Used by the sweeper
// log line and by tests.
func (b *Blacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.revoked)
}
