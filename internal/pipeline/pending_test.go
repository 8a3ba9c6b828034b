package pipeline

import (
	"reflect"
	"testing"
)

func TestPendingWrites_SetOverwrites(t *testing.T) {
	p := newPendingWrites()
	p.set(1, 2)
	p.set(1, 5)

	if q, ok := p.get(1); !ok || q != 5 {
		t.Fatalf("get(1) = %d,%v; want 5,true", q, ok)
	}
	if p.len() != 1 {
		t.Fatalf("len = %d; want 1", p.len())
	}
}

func TestPendingWrites_RemoveIfKeepsNewerIntent(t *testing.T) {
	p := newPendingWrites()
	p.set(1, 3)
	p.set(1, 4) // newer intent arrived while 3 was on the wire

	if p.removeIf(1, 3) {
		t.Fatalf("removeIf must not delete a newer value")
	}
	if !p.has(1) {
		t.Fatalf("entry lost")
	}
	if !p.removeIf(1, 4) {
		t.Fatalf("removeIf with current value must delete")
	}
	if !p.isEmpty() {
		t.Fatalf("expected empty set")
	}
}

func TestPendingWrites_Take(t *testing.T) {
	p := newPendingWrites()
	p.set(7, 0)

	q, ok := p.take(7)
	if !ok || q != 0 {
		t.Fatalf("take = %d,%v; want 0,true", q, ok)
	}
	if _, ok := p.take(7); ok {
		t.Fatalf("second take must miss")
	}
}

func TestPendingWrites_ProductIDsSortedAndEntriesCopied(t *testing.T) {
	p := newPendingWrites()
	p.set(9, 1)
	p.set(2, -1)
	p.set(5, 3)

	if got, want := p.productIDs(), []int{2, 5, 9}; !reflect.DeepEqual(got, want) {
		t.Fatalf("productIDs = %v; want %v", got, want)
	}

	e := p.entries()
	e[2] = 100
	if q, _ := p.get(2); q != -1 {
		t.Fatalf("entries must be a copy, got %d", q)
	}
}
