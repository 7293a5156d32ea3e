package handler

import (
	"net/http"

	"minex/internal/delivery/api/response"
	"minex/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SocialHandlerParams holds dependencies for SocialHandler, injected by Fx.
type SocialHandlerParams struct {
	fx.In

	SocialUC usecase.SocialUsecase
}

// SocialHandler serves member profiles and the follow graph.
type SocialHandler struct {
	socialUC usecase.SocialUsecase
}

// NewSocialHandler is the constructor for SocialHandler
func NewSocialHandler(params SocialHandlerParams) *SocialHandler {
	return &SocialHandler{socialUC: params.SocialUC}
}

// FollowByLinkRequest carries the text decoded from a follow QR code.
type FollowByLinkRequest struct {
	Link string `json:"link" validate:"required,max=2048"`
}

// ListUsers lists every member.
func (h *SocialHandler) ListUsers(c echo.Context) error {
	users, err := h.socialUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

// GetProfile returns a member with their posts and follower count.
func (h *SocialHandler) GetProfile(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "user")
	}

	profile, err := h.socialUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// ListStories returns the stories shown on a member's profile.
func (h *SocialHandler) ListStories(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "user")
	}

	stories, err := h.socialUC.ListStories(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stories)
}

// FollowQRCode renders the member's follow link as a PNG.
func (h *SocialHandler) FollowQRCode(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "user")
	}

	png, err := h.socialUC.FollowQRCode(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ToggleFollow follows or unfollows the member.
func (h *SocialHandler) ToggleFollow(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "user")
	}

	following, err := h.socialUC.ToggleFollow(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"following": following})
}

// FollowByLink follows the member encoded in a scanned QR link.
func (h *SocialHandler) FollowByLink(c echo.Context) error {
	var req FollowByLinkRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid follow link input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.socialUC.FollowByLink(c.Request().Context(), req.Link)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}
