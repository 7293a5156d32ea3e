package handler

import (
	"net/http"

	"minex/internal/delivery/api/response"
	"minex/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
}

// AdminHandler serves moderation actions.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{adminUC: params.AdminUC}
}

func (h *AdminHandler) VerifyUser(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "user")
	}

	user, err := h.adminUC.VerifyUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *AdminHandler) SuspendUser(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "user")
	}

	user, err := h.adminUC.SuspendUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}
