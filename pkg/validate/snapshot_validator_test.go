package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/pkg/validate"
)

func validSnapshot() *domain.CartSnapshot {
	return &domain.CartSnapshot{
		ID: 3,
		Lines: []domain.CartLine{
			{ID: 10, CartID: 3, ProductID: 1, Quantity: 2},
			{ID: 11, CartID: 3, ProductID: 2, Quantity: 0},
		},
	}
}

func TestSnapshotValidator_Validate(t *testing.T) {
	v := validate.NewSnapshotValidator()
	ctx := context.Background()

	t.Run("valid snapshot", func(t *testing.T) {
		if err := v.Validate(ctx, validSnapshot()); err != nil {
			t.Fatalf("expected valid snapshot, got: %v", err)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		if err := v.Validate(ctx, domain.EmptyCart(0)); err != nil {
			t.Fatalf("expected valid empty cart, got: %v", err)
		}
	})

	cases := []struct {
		name string
		mod  func(s *domain.CartSnapshot) *domain.CartSnapshot
		msg  string
	}{
		{
			name: "nil snapshot",
			mod:  func(*domain.CartSnapshot) *domain.CartSnapshot { return nil },
			msg:  "must not be nil",
		},
		{
			name: "negative id",
			mod:  func(s *domain.CartSnapshot) *domain.CartSnapshot { s.ID = -1; return s },
			msg:  "id must be non-negative",
		},
		{
			name: "zero line id",
			mod:  func(s *domain.CartSnapshot) *domain.CartSnapshot { s.Lines[0].ID = 0; return s },
			msg:  "cartItems[0].id must be positive",
		},
		{
			name: "zero product id",
			mod:  func(s *domain.CartSnapshot) *domain.CartSnapshot { s.Lines[1].ProductID = 0; return s },
			msg:  "cartItems[1].productId must be positive",
		},
		{
			name: "negative quantity",
			mod:  func(s *domain.CartSnapshot) *domain.CartSnapshot { s.Lines[0].Quantity = -2; return s },
			msg:  "cartItems[0].quantity must be non-negative",
		},
		{
			name: "foreign cart id",
			mod:  func(s *domain.CartSnapshot) *domain.CartSnapshot { s.Lines[1].CartID = 9; return s },
			msg:  "does not match cart 3",
		},
		{
			name: "duplicated product",
			mod:  func(s *domain.CartSnapshot) *domain.CartSnapshot { s.Lines[1].ProductID = 1; return s },
			msg:  "productId 1 is duplicated",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.mod(validSnapshot()))
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !errors.Is(err, validate.ErrInvalidSnapshot) {
				t.Errorf("expected ErrInvalidSnapshot, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("expected error message to contain %q, got %q", tc.msg, err.Error())
			}
		})
	}
}
