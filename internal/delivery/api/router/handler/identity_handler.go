package handler

import (
	"log/slog"
	"net/http"

	"minex/internal/delivery/api/middleware"
	"minex/internal/delivery/api/response"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// IdentityHandlerParams holds dependencies for IdentityHandler, injected by Fx.
type IdentityHandlerParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	Logger     *slog.Logger
}

// IdentityHandler serves registration and the session lifecycle.
type IdentityHandler struct {
	identityUC usecase.IdentityUsecase
	logger     *slog.Logger
}

// NewIdentityHandler is the constructor for IdentityHandler
func NewIdentityHandler(params IdentityHandlerParams) *IdentityHandler {
	return &IdentityHandler{
		identityUC: params.IdentityUC,
		logger:     params.Logger,
	}
}

// Register creates an account. It does not sign the new user in.
func (h *IdentityHandler) Register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}

	user, err := h.identityUC.Register(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, user)
}

// Login starts the session and returns its bearer token.
func (h *IdentityHandler) Login(c echo.Context) error {
	var req usecase.AuthenticateInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}

	out, err := h.identityUC.Authenticate(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

// Logout ends the active session.
func (h *IdentityHandler) Logout(c echo.Context) error {
	if err := h.identityUC.EndSession(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, message("Signed out"))
}

// Session returns the signed-in user.
func (h *IdentityHandler) Session(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	return response.Success(c, http.StatusOK, user)
}
