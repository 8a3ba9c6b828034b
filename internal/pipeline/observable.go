package pipeline

import (
	"sync"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

// Observable is a current-value stream of cart snapshots.
// Every subscriber gets a one-slot channel that always holds the newest value;
// a slow reader skips intermediate snapshots but never blocks the publisher.
type Observable struct {
	mu      sync.Mutex
	current *domain.CartSnapshot
	subs    map[int]chan *domain.CartSnapshot
	nextID  int
	closed  bool
}

// NewObservable returns a stream whose current value is nil (cart absent).
func NewObservable() *Observable {
	return &Observable{subs: make(map[int]chan *domain.CartSnapshot)}
}

// Current returns the last published value, nil while the cart is absent.
func (o *Observable) Current() *domain.CartSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Subscribe registers a subscriber. The current value (possibly nil) is
// delivered immediately. The returned func unsubscribes and closes the channel.
func (o *Observable) Subscribe() (<-chan *domain.CartSnapshot, func()) {
	ch := make(chan *domain.CartSnapshot, 1)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = ch
	ch <- o.current
	o.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if c, ok := o.subs[id]; ok {
				delete(o.subs, id)
				close(c)
			}
		})
	}
}

// Publish replaces the current value and notifies every subscriber.
func (o *Observable) Publish(snapshot *domain.CartSnapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.current = snapshot
	for _, ch := range o.subs {
		// drop a value the subscriber has not read yet
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

// Close closes all subscriber channels; later Publish calls are ignored.
func (o *Observable) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for id, ch := range o.subs {
		delete(o.subs, id)
		close(ch)
	}
}

// Subscribers returns the number of active subscribers.
func (o *Observable) Subscribers() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}
