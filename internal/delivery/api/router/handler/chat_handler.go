package handler

import (
	"net/http"

	"minex/internal/delivery/api/response"
	"minex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ChatUC usecase.ChatUsecase
}

// ChatHandler serves direct messaging.
type ChatHandler struct {
	chatUC usecase.ChatUsecase
}

// NewChatHandler is the constructor for ChatHandler
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{chatUC: params.ChatUC}
}

// OpenChatRequest names the other participant.
type OpenChatRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// SendMessageRequest is the body of a chat message.
type SendMessageRequest struct {
	Body string `json:"body"`
}

// ListChats returns the chats of the signed-in user.
func (h *ChatHandler) ListChats(c echo.Context) error {
	chats, err := h.chatUC.ListChats(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, chats)
}

// OpenChat returns the chat with another member, creating it on first contact.
func (h *ChatHandler) OpenChat(c echo.Context) error {
	var req OpenChatRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid chat input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	chat, err := h.chatUC.OpenOrCreateChat(c.Request().Context(), req.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, chat)
}

// GetChat returns one chat of the signed-in user.
func (h *ChatHandler) GetChat(c echo.Context) error {
	chatID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "chat")
	}

	chat, err := h.chatUC.GetChat(c.Request().Context(), chatID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, chat)
}

// SendMessage posts a message and returns the updated chat.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	chatID, ok := pathID(c)
	if !ok {
		return response.InvalidID(c, "chat")
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid message input")
	}

	chat, err := h.chatUC.SendMessage(c.Request().Context(), chatID, req.Body)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, chat)
}
