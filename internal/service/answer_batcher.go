package service

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultFlushDelay is the debounce window for coalescing quiz answers.
	DefaultFlushDelay = 500 * time.Millisecond
	// DefaultMaxBatch flushes early once this many answers are queued.
	DefaultMaxBatch = 10

	flushTimeout = 10 * time.Second
)

// FlushFunc settles one player's coalesced answers. It must read the
// authoritative room state itself: deltas are computed at flush time, never
// at enqueue time, so a stale active event cannot leak into the arithmetic.
type FlushFunc func(ctx context.Context, roomCode, playerID string, correct, incorrect int)

// AnswerBatcher is a bounded write-coalescing queue for quiz answers. Rapid
// repeated answers from one player collapse into a single ledger write,
// flushed after a quiet period or once the batch cap is hit.
type AnswerBatcher struct {
	mu      sync.Mutex
	pending map[batchKey]*batch

	flush    FlushFunc
	delay    time.Duration
	maxBatch int
}

type batchKey struct {
	roomCode string
	playerID string
}

type batch struct {
	correct   int
	incorrect int
	timer     *time.Timer
}

// NewAnswerBatcher creates a batcher that settles through flush.
func NewAnswerBatcher(flush FlushFunc, delay time.Duration, maxBatch int) *AnswerBatcher {
	return &AnswerBatcher{
		pending:  make(map[batchKey]*batch),
		flush:    flush,
		delay:    delay,
		maxBatch: maxBatch,
	}
}

// Enqueue adds one graded answer to the player's batch.
func (b *AnswerBatcher) Enqueue(roomCode, playerID string, correct bool) {
	key := batchKey{roomCode: roomCode, playerID: playerID}

	b.mu.Lock()
	entry, ok := b.pending[key]
	if !ok {
		entry = &batch{}
		entry.timer = time.AfterFunc(b.delay, func() { b.flushKey(key) })
		b.pending[key] = entry
	}
	if correct {
		entry.correct++
	} else {
		entry.incorrect++
	}
	full := entry.correct+entry.incorrect >= b.maxBatch
	b.mu.Unlock()

	if full {
		b.flushKey(key)
	}
}

// flushKey settles and removes one batch. Safe against the timer and a
// size-cap flush racing: whichever takes the entry out wins.
func (b *AnswerBatcher) flushKey(key batchKey) {
	b.mu.Lock()
	entry, ok := b.pending[key]
	if ok {
		delete(b.pending, key)
		entry.timer.Stop()
	}
	b.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	b.flush(ctx, key.roomCode, key.playerID, entry.correct, entry.incorrect)
}

// Drain flushes every pending batch immediately. Called on shutdown.
func (b *AnswerBatcher) Drain() {
	b.mu.Lock()
	keys := make([]batchKey, 0, len(b.pending))
	for key := range b.pending {
		keys = append(keys, key)
	}
	b.mu.Unlock()

	for _, key := range keys {
		b.flushKey(key)
	}
}
