package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/api/middleware"
	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// AuthHandler owns the session lifecycle endpoints. The gateway never exposes
// upstream tokens; clients hold only the gateway's own session token.
type AuthHandler struct {
	auth      ports.AuthService
	jwtSecret string
}

func NewAuthHandler(auth ports.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{auth: auth, jwtSecret: jwtSecret}
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type startSessionResponse struct {
	SessionToken string          `json:"sessionToken"`
	Session      sessionResponse `json:"session"`
}

type sessionResponse struct {
	ID            string       `json:"id"`
	User          *domain.User `json:"user,omitempty"`
	Authenticated bool         `json:"authenticated"`
}

func toSessionResponse(sess *domain.Session) sessionResponse {
	return sessionResponse{
		ID:            sess.ID,
		User:          sess.User,
		Authenticated: sess.Authenticated(),
	}
}

// StartSession creates an anonymous session and returns its token.
//
// @Summary      Start a browser session
// @Tags         session
// @Produce      json
// @Success      201  {object}  startSessionResponse
// @Failure      500  {object}  map[string]string
// @Router       /session [post]
func (h *AuthHandler) StartSession(c echo.Context) error {
	sess, err := h.auth.StartSession(c.Request().Context())
	if err != nil {
		return err
	}

	token, err := middleware.IssueSessionToken(h.jwtSecret, sess.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, startSessionResponse{
		SessionToken: token,
		Session:      toSessionResponse(sess),
	})
}

// Login authenticates the session against the salon API.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess, err = h.auth.Login(c.Request().Context(), sess, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// Register creates an account and logs the session in.
//
// @Summary      Register a new customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
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

	sess, err = h.auth.Register(c.Request().Context(), sess, ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toSessionResponse(sess))
}

// Logout clears the session's identity. Always succeeds for the client.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), sess); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me revalidates the cached identity against the salon API and returns it.
//
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	sess, err = h.auth.Revalidate(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// ForgotPassword requests a password reset email.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Success      202
// @Failure      422  {object}  map[string]string
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// ResetPassword completes a password reset.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Success      204
// @Failure      422  {object}  map[string]string
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile updates the logged-in user's profile.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sess, err = h.auth.UpdateProfile(c.Request().Context(), sess, ports.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// ChangePassword changes the logged-in user's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /profile/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), sess, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
