package handler

import (
	"net/http"

	"minex/internal/delivery/api/middleware"
	"minex/internal/delivery/api/response"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
}

// NotificationHandler serves the inbox of the signed-in user.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{notificationUC: params.NotificationUC}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	notifications, err := h.notificationUC.ListNotifications(c.Request().Context(), user.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notifications)
}

// MarkAllRead clears the unread flag and reports how many notifications changed.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	updated, err := h.notificationUC.MarkAllRead(c.Request().Context(), user.ID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"updated": updated})
}
