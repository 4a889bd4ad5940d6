package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/api/middleware"
	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware. A nil
// session means the middleware did not run on this route; treat it as an
// unauthenticated request rather than panicking downstream.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sess, nil
}
