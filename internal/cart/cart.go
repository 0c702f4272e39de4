package cart

// Product is what the catalog hands to the cart: price is captured at
// add-time in minor units and never re-fetched on later mutations.
type Product struct {
	ID        string
	Name      string
	UnitPrice int64
}

// LineItem is one distinct product entry in the cart.
type LineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Snapshot is the cart state at a point in time, items in insertion order.
type Snapshot struct {
	Items         []LineItem `json:"items"`
	TotalPrice    int64      `json:"total_price"`
	TotalQuantity int        `json:"total_quantity"`
}
