package domain

// CartSnapshot is the last cart state confirmed by the server.
// Snapshots are replaced as a whole and never mutated after publication.
type CartSnapshot struct {
	ID    int        `json:"id"`
	Lines []CartLine `json:"cartItems"`
}

// CartLine is a single product row of a cart.
type CartLine struct {
	ID        int          `json:"id"`
	CartID    int          `json:"cartId"`
	ProductID int          `json:"productId"`
	Quantity  int          `json:"quantity"`
	Product   *ProductInfo `json:"product,omitempty"`
}

// ProductInfo is optional catalog data attached to a cart line.
type ProductInfo struct {
	ProductID   int     `json:"productId"`
	Name        string  `json:"productName"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock,omitempty"`
	CategoryID  int     `json:"categoryId,omitempty"`
	ImagePath   string  `json:"imagePath,omitempty"`
	MinPrice    float64 `json:"minPrice,omitempty"`
	MaxPrice    float64 `json:"maxPrice,omitempty"`
}

// EmptyCart returns a snapshot without lines.
func EmptyCart(id int) *CartSnapshot {
	return &CartSnapshot{ID: id, Lines: []CartLine{}}
}

// IsEmpty reports whether the cart has no lines. A nil snapshot is empty.
func (s *CartSnapshot) IsEmpty() bool {
	return s == nil || len(s.Lines) == 0
}

// ItemCount is the number of distinct lines (the badge count).
func (s *CartSnapshot) ItemCount() int {
	if s == nil {
		return 0
	}
	return len(s.Lines)
}

// Line returns the line for productID, if present.
func (s *CartSnapshot) Line(productID int) (CartLine, bool) {
	if s == nil {
		return CartLine{}, false
	}
	for _, l := range s.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Quantity returns the confirmed quantity of productID.
func (s *CartSnapshot) Quantity(productID int) (int, bool) {
	l, ok := s.Line(productID)
	return l.Quantity, ok
}

// Clone returns a deep copy so callers can't alter a published snapshot.
func (s *CartSnapshot) Clone() *CartSnapshot {
	if s == nil {
		return nil
	}
	cloned := &CartSnapshot{ID: s.ID}
	if s.Lines != nil {
		cloned.Lines = make([]CartLine, len(s.Lines))
		for i, l := range s.Lines {
			if l.Product != nil {
				p := *l.Product
				l.Product = &p
			}
			cloned.Lines[i] = l
		}
	}
	return cloned
}
