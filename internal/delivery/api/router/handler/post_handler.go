package handler

import (
	"net/http"
	"strings"

	"minex/internal/delivery/api/response"
	"minex/internal/domain/entity"
	"minex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PostHandlerParams holds dependencies for PostHandler, injected by Fx.
type PostHandlerParams struct {
	fx.In

	PostUC usecase.PostUsecase
}

// PostHandler serves the feed, engagement and search.
type PostHandler struct {
	postUC usecase.PostUsecase
}

// NewPostHandler is the constructor for PostHandler
func NewPostHandler(params PostHandlerParams) *PostHandler {
	return &PostHandler{postUC: params.PostUC}
}

// CreatePostRequest accepts mineral line items as a list, as a "name|grade|tonnage; ..." string, or both.
type CreatePostRequest struct {
	Title       string                     `json:"title"`
	Body        string                     `json:"body"`
	Image       string                     `json:"image"`
	GroupID     *uuid.UUID                 `json:"group_id"`
	Minerals    []usecase.MineralItemInput `json:"minerals"`
	MineralSpec string                     `json:"mineral_spec"`
}

// CommentRequest is the body of a new comment.
type CommentRequest struct {
	Body string `json:"body"`
}

// ListPosts returns the feed, or the search results when q is set.
func (h *PostHandler) ListPosts(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		posts []*entity.Post
		err   error
	)
	if q := c.QueryParam("q"); strings.TrimSpace(q) != "" {
		posts, err = h.postUC.Search(ctx, q)
	} else {
		posts, err = h.postUC.ListPosts(ctx)
	}
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, posts)
}

// CreatePost publishes a post as the signed-in user.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid post input")
	}

	minerals := req.Minerals
	if strings.TrimSpace(req.MineralSpec) != "" {
		parsed, err := h.postUC.ParseMineralItems(req.MineralSpec)
		if err != nil {
			return response.HandleAppError(c, err)
		}
		minerals = append(minerals, parsed...)
	}

	post, err := h.postUC.CreatePost(c.Request().Context(), &usecase.CreatePostInput{
		Title:    req.Title,
		Body:     req.Body,
		Image:    req.Image,
		GroupID:  req.GroupID,
		Minerals: minerals,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, post)
}

// GetPost returns one post.
func (h *PostHandler) GetPost(c echo.Context) error {
	postID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "post")
	}

	post, err := h.postUC.GetPost(c.Request().Context(), postID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, post)
}

// DeletePost removes a post written by the signed-in user.
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "post")
	}

	if err := h.postUC.DeletePost(c.Request().Context(), postID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, message("Post deleted"))
}

// LikePost adds a like. Liking an unknown post succeeds without effect.
func (h *PostHandler) LikePost(c echo.Context) error {
	postID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "post")
	}

	if err := h.postUC.LikePost(c.Request().Context(), postID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, message("Post liked"))
}

// AddComment comments on a post and returns the updated post.
func (h *PostHandler) AddComment(c echo.Context) error {
	postID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "post")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid comment input")
	}

	post, err := h.postUC.AddComment(c.Request().Context(), postID, req.Body)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, post)
}

// ToggleBookmark saves or unsaves a post.
func (h *PostHandler) ToggleBookmark(c echo.Context) error {
	postID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "post")
	}

	bookmarked, err := h.postUC.ToggleBookmark(c.Request().Context(), postID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"bookmarked": bookmarked})
}

// ListBookmarks returns the posts saved by the signed-in user.
func (h *PostHandler) ListBookmarks(c echo.Context) error {
	posts, err := h.postUC.ListBookmarks(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, posts)
}
