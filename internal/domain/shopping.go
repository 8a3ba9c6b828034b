package domain

// ShoppingFilter narrows the store comparison. Zero values mean "no filter".
type ShoppingFilter struct {
	StoreIDs  []int
	Radius    float64
	Latitude  float64
	Longitude float64
}

// ShoppingResult is the cost of the whole cart in one store.
type ShoppingResult struct {
	StoreID       int             `json:"storeId"`
	StoreName     string          `json:"storeName"`
	StoreLocation string          `json:"storeLocation"`
	Products      []PricedProduct `json:"products"`
	Total         float64         `json:"total"`
}

// PricedProduct is a cart product priced by a particular store.
type PricedProduct struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Total is price times quantity.
func (p PricedProduct) Total() float64 {
	return p.Price * float64(p.Quantity)
}
