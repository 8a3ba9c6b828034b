package redis

import (
	"context"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
)

const writeTimeout = 2 * time.Second

// SnapshotSource is anything that streams confirmed snapshots.
type SnapshotSource interface {
	Subscribe() (<-chan *domain.CartSnapshot, func())
}

// Observer copies every snapshot published by a source into a mirror.
type Observer struct {
	mirror ports.SnapshotMirror
	userID string
	log    ports.Logger
}

// NewObserver mirrors snapshots for userID. log receives write failures.
func NewObserver(mirror ports.SnapshotMirror, userID string, log ports.Logger) *Observer {
	return &Observer{mirror: mirror, userID: userID, log: log}
}

// Run mirrors snapshots until ctx is done or the source closes the stream.
// A nil snapshot (cart not loaded) deletes the entry. Write errors are logged.
func (o *Observer) Run(ctx context.Context, src SnapshotSource) {
	ch, unsubscribe := src.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}
			o.store(ctx, snap)
		}
	}
}

func (o *Observer) store(ctx context.Context, snap *domain.CartSnapshot) {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var err error
	if snap == nil {
		err = o.mirror.Delete(wctx, o.userID)
	} else {
		err = o.mirror.Set(wctx, o.userID, snap)
	}
	if err != nil {
		o.log.Warnf(ctx, "snapshot mirror write failed user=%s err=%v", o.userID, err)
	}
}
