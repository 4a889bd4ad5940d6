package domain

// CartItem is one line of a cart. All money fields are denormalized by the
// salon API; the gateway never recomputes them.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage,omitempty"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Subtotal     float64 `json:"subtotal"`
}

// Cart is the salon API's authoritative cart for one user. The gateway holds
// a cached copy only and replaces it wholesale after every mutation.
type Cart struct {
	CartID    string     `json:"cartId,omitempty"`
	UserID    string     `json:"userId,omitempty"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// EmptyCart is the state used when the upstream reports no cart exists yet.
func EmptyCart(userID string) *Cart {
	return &Cart{UserID: userID, Items: []CartItem{}}
}
