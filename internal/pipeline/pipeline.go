// Package pipeline turns bursts of cart quantity edits into a minimal,
// ordered sequence of absolute-quantity writes against the remote cart.
//
// All mutable state lives behind one mutex. At most one coordination task
// exists at a time: each mutation cancels the previous task before recording
// its own intent. A cancelled (superseded) caller returns nil, so a caller
// cannot tell "my edit was applied" from "my edit was folded into a later
// one". Only the caller whose task actually reached the network sees its error.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrClosed is returned by operations called after Close.
var ErrClosed = errors.New("cart pipeline closed")

const journalTimeout = 2 * time.Second

// Compile-time check.
var _ ports.CartService = (*Pipeline)(nil)

// Pipeline is the cart mutation pipeline.
type Pipeline struct {
	gateway  ports.CartGateway
	log      ports.Logger
	journal  ports.FlushJournal
	tracer   trace.Tracer
	debounce time.Duration
	negative NegativePolicy

	// flushMu is the flush lane: every gateway call and the snapshot
	// replacement after it run under it, one at a time. Lock order is
	// flushMu, then mu.
	flushMu sync.Mutex

	mu       sync.Mutex
	snapshot *domain.CartSnapshot
	pending  *pendingWrites
	inflight map[int]int // quantity handed to the gateway, not yet answered
	current  *task
	closed   bool

	observers *Observable

	// journalWG tracks asynchronous journal writes; Close waits for them.
	journalWG sync.WaitGroup
}

// New builds a pipeline on top of gateway.
func New(gateway ports.CartGateway, log ports.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		gateway:   gateway,
		log:       log,
		tracer:    otel.Tracer("github.com/Gunvolt24/cartsync/internal/pipeline"),
		debounce:  DefaultDebounce,
		negative:  NegativeForward,
		pending:   newPendingWrites(),
		inflight:  make(map[int]int),
		observers: NewObservable(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Increment asks for one more unit of productID.
func (p *Pipeline) Increment(ctx context.Context, productID int) error {
	return p.mutate(ctx, "increment", productID, func(base int) int { return base + 1 })
}

// Decrement asks for one unit less of productID. The result is not clamped
// unless the pipeline uses NegativeClamp.
func (p *Pipeline) Decrement(ctx context.Context, productID int) error {
	return p.mutate(ctx, "decrement", productID, func(base int) int { return base - 1 })
}

// SetQuantity asks for exactly quantity units of productID.
func (p *Pipeline) SetQuantity(ctx context.Context, productID, quantity int) error {
	return p.mutate(ctx, "set", productID, func(int) int { return quantity })
}

// RemoveFromCart writes quantity 0 for productID right away, without the
// debounce window. A remove is committed as soon as it is scheduled: a later
// mutation does not cancel it.
func (p *Pipeline) RemoveFromCart(ctx context.Context, productID int) error {
	metrics.CartMutations.WithLabelValues("remove").Inc()

	wctx := context.WithoutCancel(ctx)
	t, err := p.schedule(ctx, productID, func() *task {
		p.pending.remove(productID)
		p.inflight[productID] = 0
		p.syncPendingGaugeLocked()
		t := p.startLocked(func(*task) error {
			return p.flush(wctx, productID, domain.FlushRemove, func() (int, bool) { return 0, true })
		})
		t.committed = true
		return t
	})
	if err != nil {
		return err
	}
	return t.wait(ctx)
}

// RefreshCart replaces the snapshot with a fresh copy from the server.
// Pending intent is left untouched.
func (p *Pipeline) RefreshCart(ctx context.Context) error {
	metrics.CartMutations.WithLabelValues("refresh").Inc()

	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	start := time.Now()
	snap, err := p.gateway.Fetch(ctx)
	if err != nil {
		p.log.Errorf(ctx, "cart refresh failed took=%s err=%v", time.Since(start), err)
		return fmt.Errorf("refresh cart: %w", err)
	}

	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()

	p.observers.Publish(snap)
	p.log.Infof(ctx, "cart refreshed lines=%d took=%s", snap.ItemCount(), time.Since(start))
	return nil
}

// Flush cancels the current task and writes every pending entry now.
// Used on shutdown so that queued intent is not lost.
func (p *Pipeline) Flush(ctx context.Context) error {
	p.mu.Lock()
	p.cancelCurrentLocked()
	ids := p.pending.productIDs()
	p.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}
	return p.reconcile(ctx, ids)
}

// Snapshot returns the last confirmed cart, nil before the first load.
// The value is shared and must not be modified.
func (p *Pipeline) Snapshot() *domain.CartSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Subscribe attaches an observer; see Observable.Subscribe.
func (p *Pipeline) Subscribe() (<-chan *domain.CartSnapshot, func()) {
	return p.observers.Subscribe()
}

// Pending returns a copy of the not yet flushed intent.
func (p *Pipeline) Pending() map[int]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending.entries()
}

// Close cancels the current task, waits for journal writes still in
// progress and closes all subscriptions. Call Flush first to keep pending
// intent.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.cancelCurrentLocked()
	p.mu.Unlock()

	p.journalWG.Wait()
	p.observers.Close()
}

// mutate is the debounced path shared by Increment, Decrement and SetQuantity.
func (p *Pipeline) mutate(ctx context.Context, op string, productID int, desired func(base int) int) error {
	metrics.CartMutations.WithLabelValues(op).Inc()

	wctx := context.WithoutCancel(ctx)
	t, err := p.schedule(ctx, productID, func() *task {
		qty := p.applyPolicy(desired(p.baseQuantityLocked(productID)))
		p.pending.set(productID, qty)
		p.syncPendingGaugeLocked()
		return p.startLocked(func(t *task) error {
			return p.runDebounced(wctx, t, productID)
		})
	})
	if err != nil {
		return err
	}
	return t.wait(ctx)
}

// schedule cancels the current task and reconciles stranded intent. Once no
// reconciliation is needed it calls start with p.mu held, so the decision,
// the new intent and the new task handle change together.
func (p *Pipeline) schedule(ctx context.Context, productID int, start func() *task) (*task, error) {
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return nil, ErrClosed
		}
		p.cancelCurrentLocked()

		if p.pending.isEmpty() || p.pending.has(productID) {
			t := start()
			p.mu.Unlock()
			return t, nil
		}
		stranded := p.pending.productIDs()
		p.mu.Unlock()

		p.log.Infof(ctx, "cart reconcile before product=%d stranded=%v", productID, stranded)
		if err := p.reconcile(ctx, stranded); err != nil {
			return nil, err
		}
	}
}

// reconcile writes the pending entries of productIDs one by one. It stops at
// the first failure; entries not reached stay pending.
func (p *Pipeline) reconcile(ctx context.Context, productIDs []int) error {
	wctx := context.WithoutCancel(ctx)
	for _, id := range productIDs {
		err := p.flush(wctx, id, domain.FlushReconcile, func() (int, bool) {
			return p.pending.get(id)
		})
		if err != nil {
			return fmt.Errorf("reconcile product %d: %w", id, err)
		}
	}
	return nil
}

// runDebounced sleeps for the debounce window and then flushes productID.
// The sleep is the only cancellation point.
func (p *Pipeline) runDebounced(ctx context.Context, t *task, productID int) error {
	timer := time.NewTimer(p.debounce)
	defer timer.Stop()

	select {
	case <-t.ctx.Done():
		return errSuperseded
	case <-timer.C:
	}

	superseded := false
	err := p.flush(ctx, productID, domain.FlushDebounced, func() (int, bool) {
		if t.cancelled() {
			superseded = true
			return 0, false
		}
		t.committed = true
		return p.pending.take(productID)
	})
	if superseded {
		return errSuperseded
	}
	return err
}

// flush sends one write through the flush lane. resolve runs under p.mu once
// the lane is free and returns the quantity to send; ok=false skips the write.
func (p *Pipeline) flush(ctx context.Context, productID int, reason domain.FlushReason, resolve func() (int, bool)) error {
	p.flushMu.Lock()
	defer p.flushMu.Unlock()

	p.mu.Lock()
	qty, ok := resolve()
	if ok {
		p.inflight[productID] = qty
	}
	p.syncPendingGaugeLocked()
	p.mu.Unlock()
	if !ok {
		return nil
	}

	ctx, span := p.tracer.Start(ctx, "cart.flush", trace.WithAttributes(
		attribute.Int("cart.product_id", productID),
		attribute.Int("cart.quantity", qty),
		attribute.String("cart.flush_reason", string(reason)),
	))
	defer span.End()

	start := time.Now()
	snap, err := p.gateway.Write(ctx, productID, qty)
	took := time.Since(start)

	p.mu.Lock()
	if q, ok := p.inflight[productID]; ok && q == qty {
		// a newer quantity (a queued remove) keeps its marker
		delete(p.inflight, productID)
	}
	if reason == domain.FlushReconcile {
		// success or failure, this intent is settled
		p.pending.removeIf(productID, qty)
	}
	if err == nil {
		p.snapshot = snap
	}
	p.syncPendingGaugeLocked()
	p.mu.Unlock()

	p.record(ctx, &domain.FlushRecord{
		ProductID: productID,
		Quantity:  qty,
		Reason:    reason,
		OK:        err == nil,
		Error:     errString(err),
		Duration:  took,
		CreatedAt: start,
	})

	if err != nil {
		metrics.CartFlushes.WithLabelValues(string(reason), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "cart write failed")
		p.log.Errorf(ctx, "cart flush failed product=%d qty=%d reason=%s took=%s err=%v", productID, qty, reason, took, err)
		return fmt.Errorf("write product %d quantity %d: %w", productID, qty, err)
	}

	metrics.CartFlushes.WithLabelValues(string(reason), "ok").Inc()
	p.log.Infof(ctx, "cart flushed product=%d qty=%d reason=%s took=%s", productID, qty, reason, took)
	p.observers.Publish(snap)
	return nil
}

// startLocked registers and launches a new task. p.mu must be held and the
// previous task already cancelled.
func (p *Pipeline) startLocked(run func(t *task) error) *task {
	t := newTask()
	p.current = t
	go func() {
		err := run(t)
		p.mu.Lock()
		if p.current == t {
			p.current = nil
		}
		p.mu.Unlock()
		t.finish(err)
	}()
	return t
}

func (p *Pipeline) cancelCurrentLocked() {
	if p.current == nil {
		return
	}
	if !p.current.committed {
		metrics.CartSuperseded.Inc()
	}
	p.current.cancel()
	p.current = nil
}

// baseQuantityLocked is the quantity a delta applies to: pending intent, then
// a write already on the wire, then the confirmed snapshot, then zero.
func (p *Pipeline) baseQuantityLocked(productID int) int {
	if q, ok := p.pending.get(productID); ok {
		return q
	}
	if q, ok := p.inflight[productID]; ok {
		return q
	}
	if q, ok := p.snapshot.Quantity(productID); ok {
		return q
	}
	return 0
}

func (p *Pipeline) applyPolicy(qty int) int {
	if p.negative == NegativeClamp && qty < 0 {
		return 0
	}
	return qty
}

func (p *Pipeline) syncPendingGaugeLocked() {
	metrics.CartPendingWrites.Set(float64(p.pending.len()))
}

func (p *Pipeline) record(ctx context.Context, rec *domain.FlushRecord) {
	if p.journal == nil {
		return
	}
	write := func() {
		jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
		defer cancel()
		if err := p.journal.Record(jctx, rec); err != nil {
			p.log.Warnf(jctx, "flush journal record failed product=%d err=%v", rec.ProductID, err)
		}
	}

	// After Close has started waiting, Add must not race with Wait: tasks
	// finishing late write synchronously instead.
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		write()
		return
	}
	p.journalWG.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.journalWG.Done()
		write()
	}()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
