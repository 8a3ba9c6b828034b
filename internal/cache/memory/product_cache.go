// Package memory holds the in-process product info cache used to enrich cart lines.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/pkg/metrics"
)

const cacheLabel = "product"

// Compile-time check.
var _ ports.ProductCache = (*ProductCache)(nil)

type entry struct {
	productID int
	product   *domain.ProductInfo
	expiresAt time.Time
}

// ProductCache is an LRU cache with an absolute TTL per entry: a hit does not
// extend the lifetime, so prices and stock are re-read at least once per TTL.
// ttl <= 0 disables expiry.
type ProductCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	ll    *list.List
	index map[int]*list.Element
}

// NewProductCache keeps at most capacity products, each for ttl after it
// was stored.
func NewProductCache(capacity int, ttl time.Duration) *ProductCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ProductCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[int]*list.Element),
	}
}

// Get returns a copy of the cached product.
func (c *ProductCache) Get(_ context.Context, productID int) (*domain.ProductInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[productID]
	if !ok {
		metrics.CacheOps.WithLabelValues(cacheLabel, "miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.expired(ent, c.now()) {
		metrics.CacheOps.WithLabelValues(cacheLabel, "expired").Inc()
		c.removeElement(elem)
		return nil, false
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues(cacheLabel, "hit").Inc()
	p := *ent.product
	return &p, true
}

// Set stores a copy of product. Products without an id are ignored.
func (c *ProductCache) Set(_ context.Context, product *domain.ProductInfo) error {
	if product == nil || product.ProductID <= 0 {
		return nil
	}
	now := c.now()
	stored := *product

	c.mu.Lock()
	defer c.mu.Unlock()
	metrics.CacheOps.WithLabelValues(cacheLabel, "set").Inc()

	if elem, ok := c.index[product.ProductID]; ok {
		ent := elem.Value.(*entry)
		ent.product = &stored
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpired(now)
	c.index[product.ProductID] = c.ll.PushFront(&entry{
		productID: product.ProductID,
		product:   &stored,
		expiresAt: c.expiryFrom(now),
	})
	for c.ll.Len() > c.capacity {
		c.removeElement(c.ll.Back())
		metrics.CacheOps.WithLabelValues(cacheLabel, "evicted").Inc()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return nil
}

// Len is the number of entries, expired ones included until they are pruned.
func (c *ProductCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *ProductCache) removeElement(elem *list.Element) {
	delete(c.index, elem.Value.(*entry).productID)
	c.ll.Remove(elem)
	metrics.CacheSize.Set(float64(len(c.index)))
}

func (c *ProductCache) expired(ent *entry, now time.Time) bool {
	return c.ttl > 0 && now.After(ent.expiresAt)
}

func (c *ProductCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpired drops expired entries from the LRU end until a live one is found.
func (c *ProductCache) pruneExpired(now time.Time) {
	for back := c.ll.Back(); back != nil && c.expired(back.Value.(*entry), now); back = c.ll.Back() {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues(cacheLabel, "expired").Inc()
	}
}
