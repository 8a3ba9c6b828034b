package rest

import (
	"strconv"
	"strings"

	"github.com/Gunvolt24/cartsync/internal/domain"
)

type cartItemDTO struct {
	ID        int `json:"id"`
	CartID    int `json:"cartId"`
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type cartDTO struct {
	ID        int           `json:"id"`
	CartItems []cartItemDTO `json:"cartItems"`
}

func (d *cartDTO) toDomain() *domain.CartSnapshot {
	snap := domain.EmptyCart(d.ID)
	for _, it := range d.CartItems {
		snap.Lines = append(snap.Lines, domain.CartLine{
			ID:        it.ID,
			CartID:    it.CartID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return snap
}

// writeRequest is the add-to-cart body. Quantity is absolute.
type writeRequest struct {
	UserID    string `json:"userId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type pricedProductDTO struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type shoppingResultDTO struct {
	StoreID       int                `json:"storeId"`
	StoreName     string             `json:"storeName"`
	StoreLocation string             `json:"storeLocation"`
	Products      []pricedProductDTO `json:"products"`
	Total         float64            `json:"total"`
}

func (d *shoppingResultDTO) toDomain() domain.ShoppingResult {
	r := domain.ShoppingResult{
		StoreID:       d.StoreID,
		StoreName:     d.StoreName,
		StoreLocation: d.StoreLocation,
		Products:      make([]domain.PricedProduct, 0, len(d.Products)),
		Total:         d.Total,
	}
	for _, p := range d.Products {
		r.Products = append(r.Products, domain.PricedProduct(p))
	}
	return r
}

type productDTO struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int     `json:"categoryId"`
	ImagePath   string  `json:"imagePath"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
}

func (d *productDTO) toDomain() *domain.ProductInfo {
	return &domain.ProductInfo{
		ProductID:   d.ProductID,
		Name:        d.ProductName,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		CategoryID:  d.CategoryID,
		ImagePath:   d.ImagePath,
		MinPrice:    d.MinPrice,
		MaxPrice:    d.MaxPrice,
	}
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
