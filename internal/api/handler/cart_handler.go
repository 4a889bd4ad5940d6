package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// CartHandler exposes the session's cart. All reads serve the cached copy;
// mutations proxy upstream and re-cache the returned cart wholesale.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// --- Request / Response types ---

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type cartResponse struct {
	Cart      *domain.Cart `json:"cart"`
	ItemCount int          `json:"itemCount"`
	Total     float64      `json:"total"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	return cartResponse{Cart: cart, ItemCount: cart.ItemCount, Total: cart.Total}
}

// Get returns the session's cart.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  map[string]string
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.Cart(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Refresh re-fetches the cart from the salon API.
//
// @Summary      Refresh the cart from upstream
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  map[string]string
// @Router       /cart/refresh [post]
func (h *CartHandler) Refresh(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.Refresh(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Add puts a product into the cart.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /cart/items [post]
func (h *CartHandler) Add(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cart, err := h.cart.Add(c.Request().Context(), sess, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// UpdateItem sets the quantity of a cart line.
//
// @Summary      Update a cart item's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string                 true  "Product id"
// @Param        body       body      updateCartItemRequest  true  "New quantity"
// @Success      200        {object}  cartResponse
// @Failure      401        {object}  map[string]string
// @Router       /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cart, err := h.cart.UpdateItem(c.Request().Context(), sess, c.Param("productId"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Remove deletes a cart line.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  cartResponse
// @Failure      401        {object}  map[string]string
// @Router       /cart/items/{productId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.Remove(c.Request().Context(), sess, c.Param("productId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Clear empties the cart.
//
// @Summary      Clear the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.cart.Clear(c.Request().Context(), sess); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary returns the cached item count and total without touching upstream.
//
// @Summary      Cart badge summary
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /cart/summary [get]
func (h *CartHandler) Summary(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, map[string]any{
		"itemCount": h.cart.ItemCount(ctx, sess),
		"total":     h.cart.Total(ctx, sess),
	})
}
