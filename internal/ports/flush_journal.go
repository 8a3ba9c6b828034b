package ports

import (
	"context"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

// FlushJournal stores every write attempt made by the pipeline.
type FlushJournal interface {
	Record(ctx context.Context, rec *domain.FlushRecord) error
	Recent(ctx context.Context, n int) ([]domain.FlushRecord, error)
}
