package ports

import (
	"context"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

// CartRefresher reloads the cart from the server.
type CartRefresher interface {
	RefreshCart(ctx context.Context) error
}

// CartService is what the transport layer needs from the mutation pipeline.
type CartService interface {
	CartRefresher

	Increment(ctx context.Context, productID int) error
	Decrement(ctx context.Context, productID int) error
	SetQuantity(ctx context.Context, productID, quantity int) error
	RemoveFromCart(ctx context.Context, productID int) error

	Snapshot() *domain.CartSnapshot
	Subscribe() (<-chan *domain.CartSnapshot, func())
}
