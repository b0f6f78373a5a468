package domain

// Product is the cart's value copy of a catalog entry. Line items carry
// the copy so a cart survives catalog edits and storage round-trips.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}

// LineItem pairs a product copy with a quantity.
// Invariants: Quantity >= 1 and Quantity <= Product.Stock at mutation time;
// a cart holds at most one line item per product ID.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (li LineItem) Subtotal() int64 {
	return li.Product.Price * int64(li.Quantity)
}
