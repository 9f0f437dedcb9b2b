package generator

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStore_AppendAndRecent(t *testing.T) {
	store := NewConversationStore(0)

	assert.Nil(t, store.Recent("u1", 2), "no record before first append")
	assert.Equal(t, 0, store.Len())

	for i := 1; i <= 3; i++ {
		store.Append("u1", StepRecord{Instruction: fmt.Sprintf("step %d", i), Succeeded: true, ExecutedAt: time.Now()})
	}

	recent := store.Recent("u1", 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "step 2", recent[0].Instruction)
	assert.Equal(t, "step 3", recent[1].Instruction)
	assert.Equal(t, 1, store.Len())
}

func TestConversationStore_SweepExpiry(t *testing.T) {
	store := NewConversationStore(24 * time.Hour)
	now := time.Now()

	// Pin the clock so we can place records precisely in the past.
	store.now = func() time.Time { return now.Add(-25 * time.Hour) }
	store.Append("stale", StepRecord{Instruction: "old", ExecutedAt: now.Add(-25 * time.Hour)})

	store.now = func() time.Time { return now.Add(-time.Hour) }
	store.Append("fresh", StepRecord{Instruction: "recent", ExecutedAt: now.Add(-time.Hour)})

	removed := store.Sweep(now)

	assert.Equal(t, 1, removed)
	assert.Nil(t, store.Recent("stale", 5))
	assert.Len(t, store.Recent("fresh", 5), 1)
}

func TestConversationStore_ConcurrentUsers(t *testing.T) {
	store := NewConversationStore(0)
	var wg sync.WaitGroup

	for u := 0; u < 8; u++ {
		userID := fmt.Sprintf("user-%d", u)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				store.Append(userID, StepRecord{Instruction: "step", Succeeded: true, ExecutedAt: time.Now()})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, store.Len())
	for u := 0; u < 8; u++ {
		assert.Len(t, store.Recent(fmt.Sprintf("user-%d", u), 100), 50)
	}
}

func TestConversationStore_SweepDuringAppends(t *testing.T) {
	store := NewConversationStore(24 * time.Hour)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			store.Append("busy", StepRecord{Instruction: "step", Succeeded: true, ExecutedAt: time.Now()})
		}
	}()
	for i := 0; i < 50; i++ {
		store.Sweep(time.Now())
	}
	<-done

	// The busy user keeps appending, so it must survive every sweep.
	assert.NotNil(t, store.Recent("busy", 1))
}

func TestConversationStore_AppendRacingEvictionIsNotLost(t *testing.T) {
	store := NewConversationStore(24 * time.Hour)
	now := time.Now()

	store.now = func() time.Time { return now.Add(-25 * time.Hour) }
	store.Append("u1", StepRecord{Instruction: "old", ExecutedAt: now.Add(-25 * time.Hour)})

	// Interleave the way a racing append would: fetch the record, let a
	// sweep evict it, then try to write through the stale pointer.
	stale := store.record("u1")
	store.now = func() time.Time { return now }
	require.Equal(t, 1, store.Sweep(now))

	assert.False(t, stale.append(StepRecord{Instruction: "lost"}, now),
		"evicted record must refuse writes")

	// The public path retries against a fresh record, so the step lands.
	store.Append("u1", StepRecord{Instruction: "kept", ExecutedAt: now})
	recent := store.Recent("u1", 5)
	require.Len(t, recent, 1)
	assert.Equal(t, "kept", recent[0].Instruction)
}
