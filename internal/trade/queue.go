package trade

import (
	"context"
	"io"
)

// Queue wraps a channel of inbound SIO bytes with a one-slot lookahead
// buffer, giving WaitWhile its "peek the next byte without
// consuming it" semantics (original_source/trading_state_machine.py's
// WaitWhileState reaches into ctx.reader._queue[0] directly; Go's
// channels don't support that, so the lookahead slot is the idiomatic
// stand-in).
type Queue struct {
	ch       <-chan byte
	hasPeek  bool
	peekByte byte
}

// NewQueue wraps ch.
func NewQueue(ch <-chan byte) *Queue {
	return &Queue{ch: ch}
}

// Peek returns the next byte without removing it from the queue. The
// second return value is false if no byte is currently available
// (caller should wait briefly and retry) or the channel has closed.
func (q *Queue) Peek() (byte, bool) {
	if q.hasPeek {
		return q.peekByte, true
	}
	select {
	case b, ok := <-q.ch:
		if !ok {
			return 0, false
		}
		q.peekByte = b
		q.hasPeek = true
		return b, true
	default:
		return 0, false
	}
}

// Consume discards the byte previously returned by Peek.
func (q *Queue) Consume() {
	q.hasPeek = false
}

// Get blocks for the next byte, returning the peeked byte first if one
// is pending. It returns io.EOF if the underlying channel closes, or
// ctx.Err() if ctx is canceled first.
func (q *Queue) Get(ctx context.Context) (byte, error) {
	if q.hasPeek {
		q.hasPeek = false
		return q.peekByte, nil
	}
	select {
	case b, ok := <-q.ch:
		if !ok {
			return 0, io.EOF
		}
		return b, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
