//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/cartsync/internal/domain"
	pgrepo "github.com/Gunvolt24/cartsync/internal/repo/postgres"
	"github.com/Gunvolt24/cartsync/internal/testutil"
)

func TestFlushJournal_RecordAndRecent_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	applied, err := pgrepo.Migrate(ctx, pg.Pool)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	again, err := pgrepo.Migrate(ctx, pg.Pool)
	require.NoError(t, err)
	require.Zero(t, again, "migrations are idempotent")

	j := pgrepo.NewFlushJournal(pg.Pool, "u-1")
	other := pgrepo.NewFlushJournal(pg.Pool, "u-2")

	recs := []domain.FlushRecord{
		{ProductID: 1, Quantity: 3, Reason: domain.FlushReconcile, OK: true, Duration: 12 * time.Millisecond},
		{ProductID: 2, Quantity: 5, Reason: domain.FlushDebounced, OK: true, Duration: 8 * time.Millisecond},
		{ProductID: 2, Quantity: 0, Reason: domain.FlushRemove, OK: false, Error: "status 502"},
	}
	for i := range recs {
		require.NoError(t, j.Record(ctx, &recs[i]))
		require.NotZero(t, recs[i].ID)
	}
	require.NoError(t, other.Record(ctx, &domain.FlushRecord{ProductID: 9, Quantity: 1, Reason: domain.FlushDebounced, OK: true}))

	got, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, domain.FlushRemove, got[0].Reason)
	require.False(t, got[0].OK)
	require.Equal(t, "status 502", got[0].Error)
	require.Equal(t, domain.FlushDebounced, got[1].Reason)
	require.Equal(t, 8*time.Millisecond, got[1].Duration)

	all, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3, "other users' records are not listed")
}

func TestFlushJournal_RejectsUnknownReason_TC(t *testing.T) {
	t.Parallel()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stopPG(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err = pgrepo.Migrate(ctx, pg.Pool)
	require.NoError(t, err)

	err = pgrepo.NewFlushJournal(pg.Pool, "u-1").Record(ctx, &domain.FlushRecord{ProductID: 1, Reason: "retry"})
	require.Error(t, err)
}
