package pipeline

import "sort"

// pendingWrites maps a product id to the latest desired absolute quantity
// that the gateway has not confirmed yet. Not safe for concurrent use: the
// pipeline guards it with its state mutex.
type pendingWrites struct {
	m map[int]int
}

func newPendingWrites() *pendingWrites {
	return &pendingWrites{m: make(map[int]int)}
}

func (p *pendingWrites) get(productID int) (int, bool) {
	q, ok := p.m[productID]
	return q, ok
}

func (p *pendingWrites) set(productID, quantity int) {
	p.m[productID] = quantity
}

func (p *pendingWrites) remove(productID int) {
	delete(p.m, productID)
}

// removeIf deletes the entry only while it still holds quantity, so a newer
// intent recorded in the meantime survives.
func (p *pendingWrites) removeIf(productID, quantity int) bool {
	if q, ok := p.m[productID]; ok && q == quantity {
		delete(p.m, productID)
		return true
	}
	return false
}

// take removes and returns the entry.
func (p *pendingWrites) take(productID int) (int, bool) {
	q, ok := p.m[productID]
	if ok {
		delete(p.m, productID)
	}
	return q, ok
}

func (p *pendingWrites) has(productID int) bool {
	_, ok := p.m[productID]
	return ok
}

func (p *pendingWrites) isEmpty() bool { return len(p.m) == 0 }

func (p *pendingWrites) len() int { return len(p.m) }

// productIDs returns the keys in ascending order.
func (p *pendingWrites) productIDs() []int {
	ids := make([]int, 0, len(p.m))
	for id := range p.m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// entries returns a copy of the set.
func (p *pendingWrites) entries() map[int]int {
	out := make(map[int]int, len(p.m))
	for id, q := range p.m {
		out[id] = q
	}
	return out
}
