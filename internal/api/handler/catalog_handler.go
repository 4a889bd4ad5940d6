package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// CatalogHandler serves the public storefront catalog: products, salon
// services and approved testimonials. Reads are plain pass-throughs.
type CatalogHandler struct {
	catalog ports.CatalogAPI
}

func NewCatalogHandler(catalog ports.CatalogAPI) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type createTestimonialRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// Products lists products, optionally filtered by category or search query.
// With all=true the full catalog is returned, unavailable products included.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        q         query     string  false  "Search query"
// @Param        all       query     bool    false  "Include unavailable products"
// @Success      200       {array}   domain.Product
// @Router       /products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	ctx := c.Request().Context()

	if q := c.QueryParam("q"); q != "" {
		products, err := h.catalog.SearchProducts(ctx, q)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, products)
	}
	if category := c.QueryParam("category"); category != "" {
		products, err := h.catalog.ProductsByCategory(ctx, category)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, products)
	}
	if c.QueryParam("all") == "true" {
		products, err := h.catalog.Products(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, products)
	}

	products, err := h.catalog.AvailableProducts(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Product fetches a single product.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *CatalogHandler) Product(c echo.Context) error {
	product, err := h.catalog.Product(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Services lists bookable salon services.
//
// @Summary      List services
// @Tags         catalog
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Success      200       {array}   domain.Service
// @Router       /services [get]
func (h *CatalogHandler) Services(c echo.Context) error {
	ctx := c.Request().Context()

	if category := c.QueryParam("category"); category != "" {
		services, err := h.catalog.ServicesByCategory(ctx, category)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, services)
	}

	services, err := h.catalog.AvailableServices(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// Service fetches a single salon service.
//
// @Summary      Get a service
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  domain.Service
// @Failure      404  {object}  map[string]string
// @Router       /services/{id} [get]
func (h *CatalogHandler) Service(c echo.Context) error {
	service, err := h.catalog.Service(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service)
}

// Testimonials lists approved testimonials with the average rating.
//
// @Summary      List approved testimonials
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /testimonials [get]
func (h *CatalogHandler) Testimonials(c echo.Context) error {
	ctx := c.Request().Context()

	testimonials, err := h.catalog.ApprovedTestimonials(ctx)
	if err != nil {
		return err
	}
	rating, err := h.catalog.AverageRating(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{
		"testimonials":  testimonials,
		"averageRating": rating,
	})
}

// Testimonial fetches a single testimonial.
//
// @Summary      Get a testimonial
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Testimonial id"
// @Success      200  {object}  domain.Testimonial
// @Failure      404  {object}  map[string]string
// @Router       /testimonials/{id} [get]
func (h *CatalogHandler) Testimonial(c echo.Context) error {
	testimonial, err := h.catalog.Testimonial(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, testimonial)
}

// CreateTestimonial submits a testimonial for moderation.
//
// @Summary      Submit a testimonial
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTestimonialRequest  true  "Testimonial"
// @Success      201   {object}  domain.Testimonial
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /testimonials [post]
func (h *CatalogHandler) CreateTestimonial(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		return domain.ErrAuthRequired
	}

	var req createTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	testimonial, err := h.catalog.CreateTestimonial(c.Request().Context(), sess, ports.TestimonialInput{
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, testimonial)
}

// MyTestimonials lists the logged-in user's own testimonials.
//
// @Summary      List my testimonials
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Testimonial
// @Failure      401  {object}  map[string]string
// @Router       /testimonials/mine [get]
func (h *CatalogHandler) MyTestimonials(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		return domain.ErrAuthRequired
	}

	testimonials, err := h.catalog.TestimonialsForUser(c.Request().Context(), sess, sess.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, testimonials)
}
