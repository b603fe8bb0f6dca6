package platform

import (
	"testing"
	"time"
)

func TestMutexRecursive(t *testing.T) {
	m := NewMutex("test")
	m.Lock()
	m.Lock() // re-entrant: must not deadlock
	m.Unlock()
	m.Unlock()

	done := make(chan struct{})
	go func() {
		m.Lock()
		m.Unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("mutex did not release to another goroutine")
	}
}

func TestMutexUnlockByNonOwnerPanics(t *testing.T) {
	m := NewMutex("test")
	m.Lock()
	done := make(chan any, 1)
	go func() {
		defer func() { done <- recover() }()
		m.Unlock()
	}()
	if r := <-done; r == nil {
		t.Fatal("expected panic unlocking from non-owner goroutine")
	}
}

func TestSemaphoreTimeout(t *testing.T) {
	s := NewSemaphore("test", 1, 0)
	if status := s.Take(10 * time.Millisecond); status != Timeout {
		t.Fatalf("Take on empty semaphore = %v, want Timeout", status)
	}
	s.Release()
	if status := s.Take(time.Second); status != OK {
		t.Fatalf("Take after Release = %v, want OK", status)
	}
}

func TestSemaphoreReleaseNeverBlocksAtMax(t *testing.T) {
	s := NewSemaphore("test", 1, 1)
	done := make(chan struct{})
	go func() {
		s.Release() // already at max; must not block
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Release blocked at max count")
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue[int]("test", 4)
	for i := 0; i < 4; i++ {
		if status := q.Put(i, Forever); status != OK {
			t.Fatalf("Put(%d) = %v", i, status)
		}
	}
	if status := q.Put(4, 10*time.Millisecond); status != Timeout {
		t.Fatalf("Put on full queue = %v, want Timeout", status)
	}
	for i := 0; i < 4; i++ {
		v, status := q.Get(Forever)
		if status != OK || v != i {
			t.Fatalf("Get() = (%d, %v), want (%d, OK)", v, status, i)
		}
	}
}
