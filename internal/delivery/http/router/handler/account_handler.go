// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"usergate/internal/delivery/http/middleware"
	"usergate/internal/delivery/http/response"
	"usergate/internal/errors"
	"usergate/internal/usecase"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account creation request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "All fields are required")
	}

	output, err := h.uc.NewSession().Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account registered successfully")
}

// Login handles the authentication request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Login and password are required")
	}

	output, err := h.uc.NewSession().Authenticate(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// GetAccount returns the caller's identity snapshot as carried by its token.
func (h *AccountHandler) GetAccount(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	return response.Success(c, http.StatusOK, identity, "Account retrieved successfully")
}

// UpdateAccount handles the profile update request. The password field is
// optional; leaving it empty keeps the current password.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var input usecase.UpdateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "Login, email and names are required")
	}

	session := h.uc.ResumeSession(identity)

	updated, err := session.Update(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	// The caller must refresh its stored token: the identity inside the old
	// one no longer matches the persisted state.
	return response.Success(c, http.StatusOK, updated, "Account updated successfully")
}

// Logout drops the caller's session. Stateless tokens mean no store work:
// the state guard runs and the client discards the token.
func (h *AccountHandler) Logout(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.uc.ResumeSession(identity).Logout(); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// DeleteAccount removes the caller's account.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.uc.ResumeSession(identity).Delete(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Account deleted successfully")
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
