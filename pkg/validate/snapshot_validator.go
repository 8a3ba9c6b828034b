package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
)

// Compile-time check.
var _ ports.SnapshotValidator = (*SnapshotValidator)(nil)

// ErrInvalidSnapshot is the sentinel wrapped by every validation failure.
var ErrInvalidSnapshot = errors.New("cart snapshot validation failed")

// SnapshotValidator checks the structural invariants of a cart payload.
type SnapshotValidator struct{}

// NewSnapshotValidator returns a validator with the default rules.
func NewSnapshotValidator() *SnapshotValidator { return &SnapshotValidator{} }

// Validate returns ErrInvalidSnapshot (with the cause wrapped in) on the
// first problem found.
func (v *SnapshotValidator) Validate(_ context.Context, snapshot *domain.CartSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot must not be nil", ErrInvalidSnapshot)
	}
	if snapshot.ID < 0 {
		return fmt.Errorf("%w: id must be non-negative", ErrInvalidSnapshot)
	}
	return v.validateLines(snapshot.ID, snapshot.Lines)
}

func (v *SnapshotValidator) validateLines(cartID int, lines []domain.CartLine) error {
	seen := make(map[int]struct{}, len(lines))
	for i := range lines {
		l := &lines[i]

		if l.ID <= 0 {
			return fmt.Errorf("%w: cartItems[%d].id must be positive", ErrInvalidSnapshot, i)
		}
		if l.ProductID <= 0 {
			return fmt.Errorf("%w: cartItems[%d].productId must be positive", ErrInvalidSnapshot, i)
		}
		if l.Quantity < 0 {
			return fmt.Errorf("%w: cartItems[%d].quantity must be non-negative", ErrInvalidSnapshot, i)
		}
		if l.CartID != cartID {
			return fmt.Errorf("%w: cartItems[%d].cartId %d does not match cart %d", ErrInvalidSnapshot, i, l.CartID, cartID)
		}
		if _, dup := seen[l.ProductID]; dup {
			return fmt.Errorf("%w: cartItems[%d].productId %d is duplicated", ErrInvalidSnapshot, i, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return nil
}
