package netbuf

import "testing"

func TestBufferInvariants(t *testing.T) {
	b := &Buffer{storage: make([]byte, 16)}
	b.SetSize(10)
	b.Advance(4)
	if got := len(b.Payload()); got != 6 {
		t.Fatalf("Payload len = %d, want 6", got)
	}
	if b.Reserved() != 4 {
		t.Fatalf("Reserved = %d, want 4", b.Reserved())
	}
}

func TestBufferSetSizePastCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	b := &Buffer{storage: make([]byte, 4)}
	b.SetSize(5)
}

func TestPoolExhaustion(t *testing.T) {
	p := NewDefaultPool(2, 64)
	a := p.Alloc()
	c := p.Alloc()
	if a == nil || c == nil {
		t.Fatal("expected two successful allocations")
	}
	if p.Alloc() != nil {
		t.Fatal("expected nil on exhausted pool")
	}
	p.Free(a)
	if p.Alloc() == nil {
		t.Fatal("expected allocation to succeed after Free")
	}
}

func TestPoolCapacity(t *testing.T) {
	p := NewDefaultPool(1, 64)
	if p.Capacity() <= 0 {
		t.Fatal("expected positive capacity")
	}
}
