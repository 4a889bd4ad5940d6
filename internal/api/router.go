package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/threekst/storefront-gateway/docs"
	"github.com/threekst/storefront-gateway/internal/api/handler"
	"github.com/threekst/storefront-gateway/internal/api/middleware"
	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// Deps carries everything the router needs. The composition root builds the
// services and upstream clients; the router only maps them onto routes.
type Deps struct {
	Auth     ports.AuthService
	Cart     ports.CartService
	Bookings ports.BookingService
	Sessions ports.SessionStore

	BookingAPI ports.BookingAPI
	CatalogAPI ports.CatalogAPI
	OrderAPI   ports.OrderAPI
	UserAPI    ports.UserAdminAPI
	MediaAPI   ports.MediaAPI

	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(jwtSecret string, d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, jwtSecret)
	cartHandler := handler.NewCartHandler(d.Cart)
	bookingHandler := handler.NewBookingHandler(d.Bookings, d.BookingAPI)
	catalogHandler := handler.NewCatalogHandler(d.CatalogAPI)
	orderHandler := handler.NewOrderHandler(d.OrderAPI, d.Cart)
	adminHandler := handler.NewAdminHandler(d.CatalogAPI, d.BookingAPI, d.UserAPI)
	mediaHandler := handler.NewMediaHandler(d.MediaAPI)

	sessionMW := middleware.Session(jwtSecret, d.Sessions)
	adminMW := middleware.RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)
	superAdminMW := middleware.RequireRoles(domain.RoleSuperAdmin)

	// --- Probes and operational endpoints (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public storefront routes ---
	e.POST("/session", authHandler.StartSession)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	e.GET("/products", catalogHandler.Products)
	e.GET("/products/:id", catalogHandler.Product)
	e.GET("/services", catalogHandler.Services)
	e.GET("/services/:id", catalogHandler.Service)
	e.GET("/testimonials", catalogHandler.Testimonials)
	e.GET("/testimonials/:id", catalogHandler.Testimonial)
	e.GET("/booking/slots", bookingHandler.Slots)

	// --- Session-scoped routes ---
	s := e.Group("", sessionMW)

	s.POST("/auth/login", authHandler.Login)
	s.POST("/auth/register", authHandler.Register)
	s.POST("/auth/logout", authHandler.Logout)
	s.GET("/auth/me", authHandler.Me)
	s.PUT("/profile", authHandler.UpdateProfile)
	s.POST("/profile/change-password", authHandler.ChangePassword)

	s.GET("/cart", cartHandler.Get)
	s.DELETE("/cart", cartHandler.Clear)
	s.POST("/cart/refresh", cartHandler.Refresh)
	s.GET("/cart/summary", cartHandler.Summary)
	s.POST("/cart/items", cartHandler.Add)
	s.PUT("/cart/items/:productId", cartHandler.UpdateItem)
	s.DELETE("/cart/items/:productId", cartHandler.Remove)

	s.POST("/booking/wizard", bookingHandler.StartWizard)
	s.GET("/booking/wizard", bookingHandler.WizardState)
	s.PUT("/booking/wizard/service", bookingHandler.SelectService)
	s.PUT("/booking/wizard/location", bookingHandler.SelectLocation)
	s.PUT("/booking/wizard/schedule", bookingHandler.SelectSchedule)
	s.PUT("/booking/wizard/contact", bookingHandler.SetContact)
	s.PUT("/booking/wizard/notes", bookingHandler.SetNotes)
	s.POST("/booking/wizard/next", bookingHandler.Next)
	s.POST("/booking/wizard/back", bookingHandler.Back)
	s.POST("/booking/wizard/submit", bookingHandler.Submit)
	s.POST("/booking/wizard/convert", bookingHandler.ConvertGuest)
	s.GET("/bookings", bookingHandler.MyBookings)
	s.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)

	s.POST("/testimonials", catalogHandler.CreateTestimonial)
	s.GET("/testimonials/mine", catalogHandler.MyTestimonials)

	s.POST("/orders", orderHandler.Checkout)
	s.GET("/orders", orderHandler.MyOrders)
	s.GET("/orders/:id", orderHandler.Order)
	s.POST("/orders/:id/cancel", orderHandler.CancelOrder)
	s.POST("/payments", orderHandler.InitializePayment)
	s.GET("/payments/:reference/verify", orderHandler.VerifyPayment)

	// --- Admin routes ---
	a := e.Group("/admin", sessionMW, adminMW)

	a.POST("/products", adminHandler.CreateProduct)
	a.PUT("/products/:id", adminHandler.UpdateProduct)
	a.DELETE("/products/:id", adminHandler.DeleteProduct)

	a.POST("/services", adminHandler.CreateService)
	a.PUT("/services/:id", adminHandler.UpdateService)
	a.DELETE("/services/:id", adminHandler.DeleteService)

	a.PUT("/testimonials/:id", adminHandler.ModerateTestimonial)
	a.DELETE("/testimonials/:id", adminHandler.DeleteTestimonial)

	a.GET("/bookings", adminHandler.Bookings)
	a.GET("/bookings/:id", adminHandler.Booking)
	a.PUT("/bookings/:id", adminHandler.UpdateBooking)

	a.GET("/users", adminHandler.Users)
	a.POST("/users", adminHandler.CreateAdmin, superAdminMW)
	a.DELETE("/users/:id", adminHandler.DeleteAdmin, superAdminMW)

	a.POST("/media", mediaHandler.Upload)

	return e
}
