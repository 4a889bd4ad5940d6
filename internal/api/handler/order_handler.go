package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// OrderHandler covers checkout: order creation from the cart and the payment
// pass-throughs. Every endpoint requires an authenticated session.
type OrderHandler struct {
	orders ports.OrderAPI
	cart   ports.CartService
}

func NewOrderHandler(orders ports.OrderAPI, cart ports.CartService) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart}
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

type initializePaymentRequest struct {
	OrderID       string `json:"orderId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	Gateway       string `json:"gateway"`
	CallbackURL   string `json:"callbackUrl"`
}

func requireAuth(c echo.Context) (*domain.Session, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	return sess, nil
}

// Checkout creates an order from the current cart, then refreshes the cached
// cart so the emptied state is visible immediately.
//
// @Summary      Create an order from the cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Payment method"
// @Success      201   {object}  domain.Order
// @Failure      401   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	order, err := h.orders.Create(ctx, sess, req.PaymentMethod)
	if err != nil {
		return err
	}

	// The salon API empties the cart as part of order creation.
	_, _ = h.cart.Refresh(ctx, sess)

	return c.JSON(http.StatusCreated, order)
}

// MyOrders lists the user's orders.
//
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /orders [get]
func (h *OrderHandler) MyOrders(c echo.Context) error {
	sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ForUser(c.Request().Context(), sess, sess.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Order fetches one order.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) Order(c echo.Context) error {
	sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// CancelOrder cancels one of the user's orders.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	order, err := h.orders.Cancel(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// InitializePayment starts a payment attempt for an order.
//
// @Summary      Initialize a payment
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      initializePaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      401   {object}  map[string]string
// @Router       /payments [post]
func (h *OrderHandler) InitializePayment(c echo.Context) error {
	sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	var req initializePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	payment, err := h.orders.InitializePayment(c.Request().Context(), sess, ports.PaymentInput{
		OrderID:       req.OrderID,
		UserID:        sess.User.ID,
		PaymentMethod: req.PaymentMethod,
		Gateway:       req.Gateway,
		CallbackURL:   req.CallbackURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// VerifyPayment checks a payment's status by its reference.
//
// @Summary      Verify a payment
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Payment reference"
// @Success      200        {object}  domain.Payment
// @Failure      401        {object}  map[string]string
// @Router       /payments/{reference}/verify [get]
func (h *OrderHandler) VerifyPayment(c echo.Context) error {
	sess, err := requireAuth(c)
	if err != nil {
		return err
	}

	payment, err := h.orders.VerifyPayment(c.Request().Context(), sess, c.Param("reference"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
