// Package redis mirrors confirmed cart snapshots into Redis so other
// processes can read the last known cart without calling the remote API.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/pkg/metrics"
	goredis "github.com/redis/go-redis/v9"
)

const (
	cacheLabel     = "mirror"
	defaultBaseTTL = 15 * time.Minute
	maxJitter      = 5 * time.Minute
)

// ErrCacheMiss is returned by Get when no snapshot is stored for the user.
var ErrCacheMiss = errors.New("cache miss")

// Compile-time check.
var _ ports.SnapshotMirror = (*Mirror)(nil)

// Mirror stores snapshots as JSON under cart:{userID}. Each write gets the
// base TTL plus up to five minutes of jitter so entries don't expire together.
type Mirror struct {
	client  goredis.UniversalClient
	baseTTL time.Duration
}

// NewMirror stores snapshots in client. A non-positive baseTTL falls back
// to the default.
func NewMirror(client goredis.UniversalClient, baseTTL time.Duration) *Mirror {
	if baseTTL <= 0 {
		baseTTL = defaultBaseTTL
	}
	return &Mirror{client: client, baseTTL: baseTTL}
}

// Get returns the stored snapshot or ErrCacheMiss.
func (m *Mirror) Get(ctx context.Context, userID string) (*domain.CartSnapshot, error) {
	data, err := m.client.Get(ctx, Key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.CacheOps.WithLabelValues(cacheLabel, "miss").Inc()
		return nil, ErrCacheMiss
	}
	if err != nil {
		metrics.CacheOps.WithLabelValues(cacheLabel, "error").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var snap domain.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	metrics.CacheOps.WithLabelValues(cacheLabel, "hit").Inc()
	return &snap, nil
}

// Set overwrites the entry for userID and refreshes its TTL.
func (m *Mirror) Set(ctx context.Context, userID string, snapshot *domain.CartSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := m.client.Set(ctx, Key(userID), data, m.ttl()).Err(); err != nil {
		metrics.CacheOps.WithLabelValues(cacheLabel, "error").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	metrics.CacheOps.WithLabelValues(cacheLabel, "set").Inc()
	return nil
}

func (m *Mirror) Delete(ctx context.Context, userID string) error {
	if err := m.client.Del(ctx, Key(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

func (m *Mirror) ttl() time.Duration {
	return m.baseTTL + rand.N(maxJitter)
}

// Key is the Redis key of a user's snapshot.
func Key(userID string) string {
	return "cart:" + userID
}
