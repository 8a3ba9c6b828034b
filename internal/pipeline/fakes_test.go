package pipeline_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// gateLogger parks the first "cart flushed" log line until release is
// closed. The line is logged inside the flush lane, right after the write
// has settled.
type gateLogger struct {
	noopLogger
	once    sync.Once
	reached chan struct{}
	release chan struct{}
}

func newGateLogger() *gateLogger {
	return &gateLogger{reached: make(chan struct{}), release: make(chan struct{})}
}

func (l *gateLogger) Infof(_ context.Context, format string, _ ...any) {
	if !strings.HasPrefix(format, "cart flushed") {
		return
	}
	l.once.Do(func() {
		close(l.reached)
		<-l.release
	})
}

type write struct {
	ProductID int
	Quantity  int
	At        time.Time
}

// fakeGateway keeps a server-side cart in memory and records every call.
type fakeGateway struct {
	mu      sync.Mutex
	cart    map[int]int
	writes  []write
	fetches int
	fail    map[int]error
	delay   time.Duration
}

func newFakeGateway(initial map[int]int) *fakeGateway {
	cart := make(map[int]int, len(initial))
	for id, q := range initial {
		cart[id] = q
	}
	return &fakeGateway{cart: cart, fail: make(map[int]error)}
}

func (g *fakeGateway) Fetch(context.Context) (*domain.CartSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetches++
	return g.snapshotLocked(), nil
}

func (g *fakeGateway) Write(_ context.Context, productID, quantity int) (*domain.CartSnapshot, error) {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.writes = append(g.writes, write{ProductID: productID, Quantity: quantity, At: time.Now()})
	if err := g.fail[productID]; err != nil {
		return nil, err
	}
	if quantity <= 0 {
		delete(g.cart, productID)
	} else {
		g.cart[productID] = quantity
	}
	return g.snapshotLocked(), nil
}

func (g *fakeGateway) failProduct(productID int, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail[productID] = err
}

func (g *fakeGateway) recorded() []write {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]write(nil), g.writes...)
}

// calls strips timestamps for comparisons.
func (g *fakeGateway) calls() [][2]int {
	var out [][2]int
	for _, w := range g.recorded() {
		out = append(out, [2]int{w.ProductID, w.Quantity})
	}
	return out
}

func (g *fakeGateway) snapshotLocked() *domain.CartSnapshot {
	ids := make([]int, 0, len(g.cart))
	for id := range g.cart {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	snap := domain.EmptyCart(1)
	for _, id := range ids {
		snap.Lines = append(snap.Lines, domain.CartLine{ID: id * 10, CartID: 1, ProductID: id, Quantity: g.cart[id]})
	}
	return snap
}

type fakeJournal struct {
	mu      sync.Mutex
	records []domain.FlushRecord
	delay   time.Duration
}

func (j *fakeJournal) Record(_ context.Context, rec *domain.FlushRecord) error {
	if j.delay > 0 {
		time.Sleep(j.delay)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, *rec)
	return nil
}

func (j *fakeJournal) Recent(context.Context, int) ([]domain.FlushRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.FlushRecord(nil), j.records...), nil
}

func (j *fakeJournal) reasons() []domain.FlushReason {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []domain.FlushReason
	for _, r := range j.records {
		out = append(out, r.Reason)
	}
	return out
}
