package models

// CartLine represents one product in the shopping cart.
// Price and name are copied from the catalog when the product is added.
type CartLine struct {
	ProductID    string `json:"productId"`
	DisplayName  string `json:"displayName"`
	UnitPrice    int64  `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	TiedLength   string `json:"tiedLength,omitempty"`
	BallQuantity string `json:"ballQuantity,omitempty"`
}

// Subtotal returns UnitPrice * Quantity
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartSnapshot is the serializable state of a cart, lines in insertion order
type CartSnapshot struct {
	Language string     `json:"language"`
	Lines    []CartLine `json:"lines"`
}

// SumLines returns Σ unitPrice*quantity over lines
func SumLines(lines []CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}

// AddToCartRequest represents the request body for adding a product to the cart
// Example: {"productId": "3f1c..."}
type AddToCartRequest struct {
	ProductID string `json:"productId"`
}

// SetQuantityRequest represents the request body for changing a line quantity
// Example: {"quantity": 3}
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents the cart as returned to the storefront
// Example response:
// {
//   "lines": [
//     {"productId": "p1", "displayName": "மல்லிகை மாலை", "unitPrice": 150, "quantity": 2, "tiedLength": "1 muzham"}
//   ],
//   "count": 2,
//   "total": 300,
//   "formattedTotal": "₹300"
// }
type CartResponse struct {
	Lines          []CartLine `json:"lines"`
	Count          int        `json:"count"`
	Total          int64      `json:"total"`
	FormattedTotal string     `json:"formattedTotal"`
}
