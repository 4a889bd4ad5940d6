package domain

import "time"

// Product is a retail catalog entry.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Available     bool      `json:"available"`
	ImageURL      string    `json:"imageUrl"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// Service is a bookable salon service.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	Features        []string  `json:"features,omitempty"`
	Category        string    `json:"category,omitempty"`
	Available       bool      `json:"available"`
	ImageURL        string    `json:"imageUrl"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt,omitempty"`
}

// Testimonial is a customer review, visible publicly once approved.
type Testimonial struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Media is an uploaded asset reference.
type Media struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Type      string    `json:"type"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// OrderItem mirrors a cart line frozen into an order.
type OrderItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is a purchase created from a cart at checkout.
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	UserID        string      `json:"userId"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	ShippingFee   float64     `json:"shippingFee"`
	Total         float64     `json:"total"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"createdAt,omitempty"`
}

// Payment is the gateway-side view of a payment attempt on an order.
type Payment struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Method     string    `json:"method"`
	Gateway    string    `json:"gateway,omitempty"`
	Status     string    `json:"status"`
	Reference  string    `json:"reference,omitempty"`
	PaymentURL string    `json:"paymentUrl,omitempty"`
	VerifiedAt time.Time `json:"verifiedAt,omitempty"`
}
