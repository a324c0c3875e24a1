package trade

import (
	"context"
	"testing"
)

func TestQueuePeekDoesNotConsume(t *testing.T) {
	ch := make(chan byte, 1)
	ch <- 0x42
	q := NewQueue(ch)

	b, ok := q.Peek()
	if !ok || b != 0x42 {
		t.Fatalf("peek: got (%v, %v)", b, ok)
	}
	b, ok = q.Peek()
	if !ok || b != 0x42 {
		t.Fatalf("second peek: got (%v, %v)", b, ok)
	}

	got, err := q.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x42 {
		t.Fatalf("get after peek: got %v", got)
	}
}

func TestQueuePeekEmpty(t *testing.T) {
	ch := make(chan byte)
	q := NewQueue(ch)
	if _, ok := q.Peek(); ok {
		t.Fatal("expected empty peek to report false")
	}
}

func TestQueueConsumeAfterPeek(t *testing.T) {
	ch := make(chan byte, 2)
	ch <- 1
	ch <- 2
	q := NewQueue(ch)

	b, ok := q.Peek()
	if !ok || b != 1 {
		t.Fatalf("peek: got (%v, %v)", b, ok)
	}
	q.Consume()

	got, err := q.Get(context.Background())
	if err != nil || got != 2 {
		t.Fatalf("get: got (%v, %v)", got, err)
	}
}

func TestQueueGetCanceled(t *testing.T) {
	ch := make(chan byte)
	q := NewQueue(ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Get(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
