package ports

import (
	"context"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

// SnapshotMirror publishes confirmed snapshots to a shared store.
type SnapshotMirror interface {
	Set(ctx context.Context, userID string, snapshot *domain.CartSnapshot) error
	Get(ctx context.Context, userID string) (*domain.CartSnapshot, error)
	Delete(ctx context.Context, userID string) error
}
