package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

func product(id int) *domain.ProductInfo {
	return &domain.ProductInfo{ProductID: id, Name: "p", Price: 1.5}
}

// fakeClock lets TTL tests run without sleeping.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestSetGet_HitMiss(t *testing.T) {
	c := NewProductCache(2, time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, 1); ok {
		t.Fatalf("expected miss before Set")
	}
	_ = c.Set(ctx, product(1))
	got, ok := c.Get(ctx, 1)
	if !ok || got.ProductID != 1 {
		t.Fatalf("expected hit for 1")
	}
}

func TestTTL_IsAbsolute(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewProductCache(2, 100*time.Millisecond)
	c.now = clock.now
	ctx := context.Background()

	_ = c.Set(ctx, product(1))
	clock.advance(60 * time.Millisecond)
	if _, ok := c.Get(ctx, 1); !ok {
		t.Fatalf("expected hit inside TTL")
	}
	clock.advance(60 * time.Millisecond) // 120ms after Set, hit did not extend it
	if _, ok := c.Get(ctx, 1); ok {
		t.Fatalf("expected miss after TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be removed, len=%d", c.Len())
	}
}

func TestSet_PrunesExpiredBeforeEvicting(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := NewProductCache(2, time.Second)
	c.now = clock.now
	ctx := context.Background()

	_ = c.Set(ctx, product(1))
	clock.advance(2 * time.Second)
	_ = c.Set(ctx, product(2))
	_ = c.Set(ctx, product(3))

	if c.Len() != 2 {
		t.Fatalf("len = %d; want 2", c.Len())
	}
	if _, ok := c.Get(ctx, 2); !ok {
		t.Fatalf("live entry 2 must not be evicted")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewProductCache(2, 0)
	ctx := context.Background()

	_ = c.Set(ctx, product(1))
	_ = c.Set(ctx, product(2))
	if _, ok := c.Get(ctx, 1); !ok {
		t.Fatalf("expected hit for 1")
	}
	_ = c.Set(ctx, product(3))

	if _, ok := c.Get(ctx, 2); ok {
		t.Fatalf("expected 2 to be evicted")
	}
	if _, ok := c.Get(ctx, 1); !ok || c.Len() != 2 {
		t.Fatalf("expected 1 and 3 to stay in cache")
	}
}

func TestSet_IgnoresInvalid(t *testing.T) {
	c := NewProductCache(2, 0)
	_ = c.Set(context.Background(), nil)
	_ = c.Set(context.Background(), &domain.ProductInfo{})
	if c.Len() != 0 {
		t.Fatalf("invalid products must be ignored")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewProductCache(1, 0)
	ctx := context.Background()
	orig := product(9)
	_ = c.Set(ctx, orig)
	orig.Name = "changed-after-set"

	p1, _ := c.Get(ctx, 9)
	p1.Name = "changed"

	p2, _ := c.Get(ctx, 9)
	if p2.Name != "p" {
		t.Fatalf("cache should hold copies, got %q", p2.Name)
	}
}
