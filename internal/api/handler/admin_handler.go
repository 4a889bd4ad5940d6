package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// AdminHandler covers the management surface: product and service CRUD,
// testimonial moderation, booking oversight and admin accounts. Routes using
// it are mounted behind the admin RBAC middleware; the handler trusts that.
type AdminHandler struct {
	catalog  ports.CatalogAPI
	bookings ports.BookingAPI
	users    ports.UserAdminAPI
}

func NewAdminHandler(catalog ports.CatalogAPI, bookings ports.BookingAPI, users ports.UserAdminAPI) *AdminHandler {
	return &AdminHandler{catalog: catalog, bookings: bookings, users: users}
}

// --- Request types ---

type productRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	StockQuantity int      `json:"stockQuantity" validate:"gte=0"`
	Available     bool     `json:"available"`
	ImageURL      string   `json:"imageUrl"`
	Category      string   `json:"category" validate:"required"`
	Features      []string `json:"features"`
}

type serviceRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	DurationMinutes int      `json:"durationMinutes" validate:"gte=0"`
	Features        []string `json:"features"`
	Category        string   `json:"category"`
	Available       bool     `json:"available"`
	ImageURL        string   `json:"imageUrl"`
}

type moderateTestimonialRequest struct {
	Approved bool `json:"approved"`
}

type updateBookingRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"timeSlot" validate:"required"`
	Notes    string `json:"notes"`
}

func (r productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Available:     r.Available,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		Features:      r.Features,
	}
}

func (r serviceRequest) toInput() ports.ServiceInput {
	return ports.ServiceInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Features:        r.Features,
		Category:        r.Category,
		Available:       r.Available,
		ImageURL:        r.ImageURL,
	}
}

// --- Products ---

// CreateProduct adds a product to the catalog.
//
// @Summary      Create a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      403   {object}  map[string]string
// @Router       /admin/products [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), sess, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces a product's fields.
//
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  map[string]string
// @Router       /admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), sess, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product.
//
// @Summary      Delete a product
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Services ---

// CreateService adds a bookable salon service.
//
// @Summary      Create a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      serviceRequest  true  "Service"
// @Success      201   {object}  domain.Service
// @Router       /admin/services [post]
func (h *AdminHandler) CreateService(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	service, err := h.catalog.CreateService(c.Request().Context(), sess, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, service)
}

// UpdateService replaces a service's fields.
//
// @Summary      Update a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Service id"
// @Param        body  body      serviceRequest  true  "Service"
// @Success      200   {object}  domain.Service
// @Router       /admin/services/{id} [put]
func (h *AdminHandler) UpdateService(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	service, err := h.catalog.UpdateService(c.Request().Context(), sess, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service)
}

// DeleteService removes a service.
//
// @Summary      Delete a service
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Service id"
// @Success      204
// @Router       /admin/services/{id} [delete]
func (h *AdminHandler) DeleteService(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteService(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Testimonials ---

// ModerateTestimonial approves or rejects a testimonial.
//
// @Summary      Moderate a testimonial
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                      true  "Testimonial id"
// @Param        body  body      moderateTestimonialRequest  true  "Moderation decision"
// @Success      200   {object}  domain.Testimonial
// @Router       /admin/testimonials/{id} [put]
func (h *AdminHandler) ModerateTestimonial(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req moderateTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	testimonial, err := h.catalog.UpdateTestimonial(c.Request().Context(), sess, c.Param("id"), req.Approved)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, testimonial)
}

// DeleteTestimonial removes a testimonial.
//
// @Summary      Delete a testimonial
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Testimonial id"
// @Success      204
// @Router       /admin/testimonials/{id} [delete]
func (h *AdminHandler) DeleteTestimonial(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteTestimonial(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Bookings ---

// Bookings lists every booking in the system.
//
// @Summary      List all bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Booking
// @Router       /admin/bookings [get]
func (h *AdminHandler) Bookings(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.List(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Booking fetches one booking.
//
// @Summary      Get a booking
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Router       /admin/bookings/{id} [get]
func (h *AdminHandler) Booking(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// UpdateBooking reschedules a booking.
//
// @Summary      Reschedule a booking
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking id"
// @Param        body  body      updateBookingRequest  true  "New schedule"
// @Success      200   {object}  domain.Booking
// @Router       /admin/bookings/{id} [put]
func (h *AdminHandler) UpdateBooking(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if !domain.ValidSlot(req.TimeSlot) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unknown time slot")
	}

	when, err := domain.CombineSlot(req.Date, req.TimeSlot)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	booking, err := h.bookings.Update(c.Request().Context(), sess, c.Param("id"), ports.BookingRequest{
		BookingDateTime: when,
		Notes:           req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// --- Users ---

// Users lists all accounts.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	users, err := h.users.Users(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateAdmin creates an admin account. Restricted to super admins by the
// route's RBAC middleware.
//
// @Summary      Create an admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Admin details"
// @Success      201   {object}  domain.User
// @Router       /admin/users [post]
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.users.CreateAdmin(c.Request().Context(), sess, ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// DeleteAdmin removes an admin account.
//
// @Summary      Delete an admin account
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.users.DeleteAdmin(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
