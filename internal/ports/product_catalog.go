package ports

import (
	"context"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

// ProductCatalog resolves catalog data for a product id.
type ProductCatalog interface {
	Product(ctx context.Context, productID int) (*domain.ProductInfo, error)
}

// ProductCache is a thread-safe cache of product info.
// Implementations return copies.
type ProductCache interface {
	Get(ctx context.Context, productID int) (*domain.ProductInfo, bool)
	Set(ctx context.Context, product *domain.ProductInfo) error
}
