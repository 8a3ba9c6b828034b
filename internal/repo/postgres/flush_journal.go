package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// Compile-time check.
var _ ports.FlushJournal = (*FlushJournal)(nil)

// FlushJournal keeps every write attempt of one user's pipeline in cart_flushes.
type FlushJournal struct {
	pool   *pgxpool.Pool
	userID string
}

// NewFlushJournal journals writes made on behalf of userID.
func NewFlushJournal(pool *pgxpool.Pool, userID string) *FlushJournal {
	return &FlushJournal{pool: pool, userID: userID}
}

// Record inserts rec and sets rec.ID.
func (j *FlushJournal) Record(ctx context.Context, rec *domain.FlushRecord) error {
	if rec == nil {
		return errors.New("flush record is nil")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err := j.pool.QueryRow(ctx, `
		INSERT INTO cart_flushes (user_id, product_id, quantity, reason, ok, error, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, j.userID, rec.ProductID, rec.Quantity, string(rec.Reason), rec.OK, rec.Error,
		rec.Duration.Milliseconds(), createdAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert flush: %w", err)
	}
	return nil
}

// Recent returns up to n latest records, newest first. n <= 0 means
// DefaultRecentLimit; n is capped at MaxRecentLimit.
func (j *FlushJournal) Recent(ctx context.Context, n int) ([]domain.FlushRecord, error) {
	switch {
	case n <= 0:
		n = DefaultRecentLimit
	case n > MaxRecentLimit:
		n = MaxRecentLimit
	}

	rows, err := j.pool.Query(ctx, `
		SELECT id, product_id, quantity, reason, ok, error, duration_ms, created_at
		FROM cart_flushes
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, j.userID, n)
	if err != nil {
		return nil, fmt.Errorf("select flushes: %w", err)
	}
	defer rows.Close()

	out := make([]domain.FlushRecord, 0, n)
	for rows.Next() {
		var (
			rec        domain.FlushRecord
			reason     string
			durationMS int64
		)
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Quantity, &reason, &rec.OK, &rec.Error, &durationMS, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan flush: %w", err)
		}
		rec.Reason = domain.FlushReason(reason)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flushes: %w", err)
	}
	return out, nil
}
