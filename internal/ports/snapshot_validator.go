package ports

import (
	"context"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

// SnapshotValidator checks a decoded cart before it is accepted.
type SnapshotValidator interface {
	Validate(ctx context.Context, snapshot *domain.CartSnapshot) error
}
