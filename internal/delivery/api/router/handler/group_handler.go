package handler

import (
	"net/http"

	"minex/internal/delivery/api/response"
	"minex/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// GroupHandlerParams holds dependencies for GroupHandler, injected by Fx.
type GroupHandlerParams struct {
	fx.In

	GroupUC usecase.GroupUsecase
}

// GroupHandler serves community groups.
type GroupHandler struct {
	groupUC usecase.GroupUsecase
}

// NewGroupHandler is the constructor for GroupHandler
func NewGroupHandler(params GroupHandlerParams) *GroupHandler {
	return &GroupHandler{groupUC: params.GroupUC}
}

func (h *GroupHandler) ListGroups(c echo.Context) error {
	groups, err := h.groupUC.ListGroups(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, groups)
}

func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req usecase.CreateGroupInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid group input")
	}

	group, err := h.groupUC.CreateGroup(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, group)
}

func (h *GroupHandler) JoinGroup(c echo.Context) error {
	groupID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "group")
	}

	group, err := h.groupUC.JoinGroup(c.Request().Context(), groupID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, group)
}

func (h *GroupHandler) GroupFeed(c echo.Context) error {
	groupID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "group")
	}

	posts, err := h.groupUC.GroupFeed(c.Request().Context(), groupID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, posts)
}
