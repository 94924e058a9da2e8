package containers

import (
	"errors"
	"testing"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if !rq.IsFull() {
		t.Fatal("expected queue to be full")
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	v, err := rq.Peek()
	if err != nil || v != 1 {
		t.Fatalf("peek = %d, %v; want 1", v, err)
	}
	for want := 1; want <= 3; want++ {
		got, err := rq.Dequeue()
		if err != nil {
			t.Fatalf("dequeue: %v", err)
		}
		if got != want {
			t.Fatalf("dequeue = %d, want %d", got, want)
		}
	}
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestRingQueuePushEvictsOldest(t *testing.T) {
	rq := NewRingQueue[float64](2)
	if _, ok := rq.Push(1); ok {
		t.Fatal("nothing should be evicted yet")
	}
	rq.Push(2)
	old, ok := rq.Push(3)
	if !ok || old != 1 {
		t.Fatalf("evicted = %v, %v; want 1, true", old, ok)
	}
	if rq.Len() != 2 || rq.Cap() != 2 {
		t.Fatalf("len/cap = %d/%d", rq.Len(), rq.Cap())
	}
	front, _ := rq.Peek()
	if front != 2 {
		t.Fatalf("front = %v, want 2", front)
	}
}
