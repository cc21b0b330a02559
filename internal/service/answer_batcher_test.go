package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flushRecord struct {
	roomCode  string
	playerID  string
	correct   int
	incorrect int
}

type flushRecorder struct {
	mu      sync.Mutex
	flushes []flushRecord
}

func (r *flushRecorder) flush(_ context.Context, roomCode, playerID string, correct, incorrect int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushes = append(r.flushes, flushRecord{roomCode, playerID, correct, incorrect})
}

func (r *flushRecorder) snapshot() []flushRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]flushRecord, len(r.flushes))
	copy(out, r.flushes)
	return out
}

func waitForFlushes(t *testing.T, rec *flushRecorder, n int) []flushRecord {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := rec.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d flushes, got %d", n, len(rec.snapshot()))
	return nil
}

func TestBatcherCoalescesRapidAnswers(t *testing.T) {
	rec := &flushRecorder{}
	b := NewAnswerBatcher(rec.flush, 30*time.Millisecond, 10)

	b.Enqueue("ABC123", "p_1", true)
	b.Enqueue("ABC123", "p_1", true)
	b.Enqueue("ABC123", "p_1", false)

	got := waitForFlushes(t, rec, 1)
	require.Len(t, got, 1)
	assert.Equal(t, flushRecord{"ABC123", "p_1", 2, 1}, got[0])
}

func TestBatcherFlushesEarlyAtCap(t *testing.T) {
	rec := &flushRecorder{}
	b := NewAnswerBatcher(rec.flush, time.Hour, 3)

	b.Enqueue("ABC123", "p_1", true)
	b.Enqueue("ABC123", "p_1", false)
	b.Enqueue("ABC123", "p_1", true)

	// Cap flush is synchronous; no debounce wait needed.
	got := rec.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, flushRecord{"ABC123", "p_1", 2, 1}, got[0])
}

func TestBatcherKeepsPlayersSeparate(t *testing.T) {
	rec := &flushRecorder{}
	b := NewAnswerBatcher(rec.flush, 30*time.Millisecond, 10)

	b.Enqueue("ABC123", "p_1", true)
	b.Enqueue("ABC123", "p_2", false)
	b.Enqueue("XYZ789", "p_1", true)

	got := waitForFlushes(t, rec, 3)
	require.Len(t, got, 3)

	totals := map[flushRecord]bool{}
	for _, f := range got {
		totals[f] = true
	}
	assert.True(t, totals[flushRecord{"ABC123", "p_1", 1, 0}])
	assert.True(t, totals[flushRecord{"ABC123", "p_2", 0, 1}])
	assert.True(t, totals[flushRecord{"XYZ789", "p_1", 1, 0}])
}

func TestBatcherDrainFlushesPending(t *testing.T) {
	rec := &flushRecorder{}
	b := NewAnswerBatcher(rec.flush, time.Hour, 10)

	b.Enqueue("ABC123", "p_1", true)
	b.Enqueue("ABC123", "p_2", false)

	b.Drain()

	got := rec.snapshot()
	require.Len(t, got, 2)

	// A second drain finds nothing.
	b.Drain()
	assert.Len(t, rec.snapshot(), 2)
}

func TestBatcherNewAnswersAfterFlushStartFreshBatch(t *testing.T) {
	rec := &flushRecorder{}
	b := NewAnswerBatcher(rec.flush, time.Hour, 2)

	b.Enqueue("ABC123", "p_1", true)
	b.Enqueue("ABC123", "p_1", true)
	b.Enqueue("ABC123", "p_1", false)
	b.Enqueue("ABC123", "p_1", false)

	got := rec.snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, flushRecord{"ABC123", "p_1", 2, 0}, got[0])
	assert.Equal(t, flushRecord{"ABC123", "p_1", 0, 2}, got[1])
}
