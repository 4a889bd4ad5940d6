package ports

import (
	"context"
	"io"
	"time"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// AuthResult is the identity payload returned by upstream login/register.
type AuthResult struct {
	Token        string
	RefreshToken string
	User         *domain.User
}

// RegisterInput carries the fields of the registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// ProfileUpdate carries mutable profile fields for PUT /users/{id}.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
}

// AuthAPI is the upstream authentication surface.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Logout(ctx context.Context, sess *domain.Session) error
	CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	UpdateProfile(ctx context.Context, sess *domain.Session, userID string, in ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, sess *domain.Session, userID, oldPassword, newPassword string) error
}

// CartAPI is the upstream cart surface. Every mutation returns the
// authoritative cart; the gateway caches that and nothing else.
type CartAPI interface {
	Get(ctx context.Context, sess *domain.Session, userID string) (*domain.Cart, error)
	Add(ctx context.Context, sess *domain.Session, userID, productID string, quantity int) (*domain.Cart, error)
	Update(ctx context.Context, sess *domain.Session, userID, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, sess *domain.Session, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, sess *domain.Session, userID string) error
}

// BookingRequest is the payload submitted to either booking endpoint.
type BookingRequest struct {
	UserID          string    `json:"userId,omitempty"`
	ServiceID       string    `json:"serviceId"`
	ServiceTitle    string    `json:"serviceTitle"`
	BookingDateTime time.Time `json:"bookingDateTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Notes           string    `json:"notes"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerEmail   string    `json:"customerEmail"`
	Address         string    `json:"address"`
	IsHomeService   bool      `json:"isHomeService"`
}

// BookingAPI is the upstream booking surface.
type BookingAPI interface {
	// Create submits an authenticated booking to POST /bookings.
	Create(ctx context.Context, sess *domain.Session, req BookingRequest) (*domain.Booking, error)
	// CreateGuest submits an unauthenticated booking to POST /bookings/guest.
	CreateGuest(ctx context.Context, req BookingRequest) (*domain.Booking, error)
	// LinkAll associates all guest bookings matching email with userID.
	LinkAll(ctx context.Context, email, userID string) error
	AvailableSlots(ctx context.Context, serviceID, date string) ([]string, error)
	ForUser(ctx context.Context, sess *domain.Session, userID string) ([]*domain.Booking, error)
	Get(ctx context.Context, sess *domain.Session, id string) (*domain.Booking, error)
	List(ctx context.Context, sess *domain.Session) ([]*domain.Booking, error)
	Update(ctx context.Context, sess *domain.Session, id string, req BookingRequest) (*domain.Booking, error)
	Cancel(ctx context.Context, sess *domain.Session, id string) (*domain.Booking, error)
}

// ProductInput is the admin CRUD payload for products.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	Available     bool     `json:"available"`
	ImageURL      string   `json:"imageUrl"`
	Category      string   `json:"category"`
	Features      []string `json:"features,omitempty"`
}

// ServiceInput is the admin CRUD payload for salon services.
type ServiceInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Features        []string `json:"features,omitempty"`
	Category        string   `json:"category,omitempty"`
	Available       bool     `json:"available"`
	ImageURL        string   `json:"imageUrl"`
}

// TestimonialInput is the payload for creating a testimonial.
type TestimonialInput struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// CatalogAPI covers products, services and testimonials, both the public
// reads and the admin CRUD.
type CatalogAPI interface {
	Products(ctx context.Context) ([]*domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*domain.Product, error)
	AvailableProducts(ctx context.Context) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, sess *domain.Session, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, sess *domain.Session, id string, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, sess *domain.Session, id string) error

	Services(ctx context.Context) ([]*domain.Service, error)
	Service(ctx context.Context, id string) (*domain.Service, error)
	AvailableServices(ctx context.Context) ([]*domain.Service, error)
	ServicesByCategory(ctx context.Context, category string) ([]*domain.Service, error)
	CreateService(ctx context.Context, sess *domain.Session, in ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, sess *domain.Session, id string, in ServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, sess *domain.Session, id string) error

	ApprovedTestimonials(ctx context.Context) ([]*domain.Testimonial, error)
	Testimonial(ctx context.Context, id string) (*domain.Testimonial, error)
	TestimonialsForUser(ctx context.Context, sess *domain.Session, userID string) ([]*domain.Testimonial, error)
	CreateTestimonial(ctx context.Context, sess *domain.Session, in TestimonialInput) (*domain.Testimonial, error)
	UpdateTestimonial(ctx context.Context, sess *domain.Session, id string, approved bool) (*domain.Testimonial, error)
	DeleteTestimonial(ctx context.Context, sess *domain.Session, id string) error
	AverageRating(ctx context.Context) (float64, error)
}

// PaymentInput initializes a payment attempt for an order.
type PaymentInput struct {
	OrderID       string `json:"orderId"`
	UserID        string `json:"userId"`
	PaymentMethod string `json:"paymentMethod"`
	Gateway       string `json:"gateway,omitempty"`
	CallbackURL   string `json:"callbackUrl,omitempty"`
}

// OrderAPI covers checkout and payment pass-throughs.
type OrderAPI interface {
	Create(ctx context.Context, sess *domain.Session, paymentMethod string) (*domain.Order, error)
	Get(ctx context.Context, sess *domain.Session, id string) (*domain.Order, error)
	ForUser(ctx context.Context, sess *domain.Session, userID string) ([]*domain.Order, error)
	Cancel(ctx context.Context, sess *domain.Session, id string) (*domain.Order, error)
	InitializePayment(ctx context.Context, sess *domain.Session, in PaymentInput) (*domain.Payment, error)
	VerifyPayment(ctx context.Context, sess *domain.Session, reference string) (*domain.Payment, error)
}

// UserAdminAPI covers admin user management.
type UserAdminAPI interface {
	Users(ctx context.Context, sess *domain.Session) ([]*domain.User, error)
	CreateAdmin(ctx context.Context, sess *domain.Session, in RegisterInput) (*domain.User, error)
	DeleteAdmin(ctx context.Context, sess *domain.Session, id string) error
}

// MediaAPI uploads assets through the salon API.
type MediaAPI interface {
	Upload(ctx context.Context, sess *domain.Session, filename, contentType string, r io.Reader) (*domain.Media, error)
}
