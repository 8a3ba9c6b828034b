package ports

import (
	"context"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

// CartGateway is the remote cart API as seen by the mutation pipeline.
type CartGateway interface {
	// Fetch pulls the current authoritative snapshot.
	Fetch(ctx context.Context) (*domain.CartSnapshot, error)

	// Write sets the absolute quantity of a product (never a delta) and
	// returns the full snapshot after the change. Quantity 0 removes the line.
	Write(ctx context.Context, productID, quantity int) (*domain.CartSnapshot, error)
}

// ShoppingGateway prices a cart across stores.
type ShoppingGateway interface {
	ShoppingResults(ctx context.Context, cartID int, filter domain.ShoppingFilter) ([]domain.ShoppingResult, error)
}
