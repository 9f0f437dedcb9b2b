package generator

import (
	"context"
	"sync"
	"time"
)

// DefaultConversationTTL is how long an idle user's history is kept.
const DefaultConversationTTL = 24 * time.Hour

// conversation is one user's step history. Its mutex serializes appends for
// that user without blocking other users. evicted marks a record the sweep
// has removed from the map: writes to it would be lost, so append refuses
// them and the caller retries against a fresh record.
type conversation struct {
	mu           sync.Mutex
	steps        []StepRecord
	lastActivity time.Time
	evicted      bool
}

// append adds rec and bumps last activity, reporting false when the record
// was evicted between the map lookup and taking its lock.
func (c *conversation) append(rec StepRecord, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.evicted {
		return false
	}
	c.steps = append(c.steps, rec)
	c.lastActivity = now
	return true
}

// ConversationStore holds per-user step history across requests. It is the
// only long-lived mutable state in the subsystem: the map lock covers record
// insertion and eviction, the per-record lock covers step appends.
type ConversationStore struct {
	mu     sync.Mutex
	byUser map[string]*conversation
	ttl    time.Duration
	now    func() time.Time
}

// NewConversationStore creates a store with the given idle TTL; ttl <= 0
// falls back to DefaultConversationTTL.
func NewConversationStore(ttl time.Duration) *ConversationStore {
	if ttl <= 0 {
		ttl = DefaultConversationTTL
	}
	return &ConversationStore{
		byUser: make(map[string]*conversation),
		ttl:    ttl,
		now:    time.Now,
	}
}

// record returns the user's conversation, creating it lazily.
func (s *ConversationStore) record(userID string) *conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.byUser[userID]
	if !ok {
		conv = &conversation{lastActivity: s.now()}
		s.byUser[userID] = conv
	}
	return conv
}

// Append adds a step record to the user's history and bumps last activity.
// A sweep can evict the record between the lookup and taking its lock; the
// retry then gets a freshly inserted record, so the step is never lost.
func (s *ConversationStore) Append(userID string, rec StepRecord) {
	for {
		if s.record(userID).append(rec, s.now()) {
			return
		}
	}
}

// Recent returns up to n of the user's most recent step records, oldest
// first. A user with no history yields nil without creating a record.
func (s *ConversationStore) Recent(userID string, n int) []StepRecord {
	s.mu.Lock()
	conv, ok := s.byUser[userID]
	s.mu.Unlock()
	if !ok || n <= 0 {
		return nil
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	steps := conv.steps
	if len(steps) > n {
		steps = steps[len(steps)-n:]
	}
	out := make([]StepRecord, len(steps))
	copy(out, steps)
	return out
}

// Len reports the number of active user records.
func (s *ConversationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser)
}

// Sweep evicts records idle longer than the TTL and returns how many were
// removed. An expired record is marked evicted under its own lock before the
// map delete, so an append that already fetched the pointer sees the mark
// and retries instead of writing to an orphan.
func (s *ConversationStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for userID, conv := range s.byUser {
		conv.mu.Lock()
		expired := now.Sub(conv.lastActivity) > s.ttl
		if expired {
			conv.evicted = true
		}
		conv.mu.Unlock()
		if expired {
			delete(s.byUser, userID)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps the store on the given interval until ctx is done.
func (s *ConversationStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.Sweep(now)
			}
		}
	}()
}
