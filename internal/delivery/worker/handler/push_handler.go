// Package handler contains the push endpoint of the notification relay.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"minex/config"
	deliverycontext "minex/internal/delivery/context"
	"minex/internal/domain/constants"
	"minex/internal/domain/entity"
	"minex/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// EventRecorder counts relayed events by kind.
type EventRecorder interface {
	RecordRelayEvent(kind string)
}

// PushHandler receives notification events pushed by Pub/Sub or the local publisher.
type PushHandler struct {
	verifyPushAuth bool
	verifyToken    func(*http.Request) error
	recorder       EventRecorder
	logger         *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Recorder EventRecorder `optional:"true"`
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google signs push requests; the local publisher posts unauthenticated.
	verifyPushAuth := params.Config.PubSub != nil &&
		strings.EqualFold(params.Config.PubSub.Provider, constants.PubSubProviderGoogle) &&
		params.Config.Env.Env != constants.EnvLocal

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		verifyToken:    verifyPubSubToken,
		recorder:       params.Recorder,
		logger:         params.Logger,
	}
}

// HandlePush acknowledges one notification event. Envelopes that cannot be decoded answer 400
// so Pub/Sub dead-letters them; events with unusable fields are acknowledged and dropped.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if h.verifyPushAuth {
		if err := h.verifyToken(c.Request()); err != nil {
			logger.Warn("[Relay] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		logger.Warn("[Relay] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		logger.Warn("[Relay] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.NotificationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		logger.Warn("[Relay] Failed to parse notification event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	_, reqLogger := deliverycontext.WithRequestScope(ctx, extractRequestID(ctx, &pushMsg, &event), h.logger)

	if err := validateEvent(&event); err != nil {
		reqLogger.Warn("[Relay] Dropping unusable notification event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Relay] Notification event received",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("notification_id", event.NotificationID),
		slog.String("user_id", event.UserID),
		slog.String("kind", event.Kind),
		slog.String("title", event.Title),
	)
	if h.recorder != nil {
		h.recorder.RecordRelayEvent(event.Kind)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the payload, then the inbound request.
func extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.NotificationEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

func validateEvent(event *service.NotificationEvent) error {
	if _, err := uuid.Parse(event.NotificationID); err != nil {
		return errors.Wrap(err, "notification_id")
	}
	if _, err := uuid.Parse(event.UserID); err != nil {
		return errors.Wrap(err, "user_id")
	}
	if !entity.NotificationKind(event.Kind).IsValid() {
		return errors.Errorf("unknown kind %q", event.Kind)
	}

	return nil
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	token, found := strings.CutPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !found || token == "" {
		return errors.New("missing bearer token")
	}

	// The audience is the URL of this endpoint.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
