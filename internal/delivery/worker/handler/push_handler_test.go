package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"minex/config"
	deliverycontext "minex/internal/delivery/context"
	"minex/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recorderMock struct {
	mock.Mock
}

func (m *recorderMock) RecordRelayEvent(kind string) {
	m.Called(kind)
}

func newTestHandler(t *testing.T, cfg *config.Config) (*PushHandler, *recorderMock) {
	t.Helper()

	recorder := &recorderMock{}
	t.Cleanup(func() { recorder.AssertExpectations(t) })

	h := NewPushHandler(PushHandlerParams{
		Config:   cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Recorder: recorder,
	})

	return h, recorder
}

func localConfig() *config.Config {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "local"}}
	cfg.Env.Env = "local"

	return cfg
}

func envelope(t *testing.T, event *service.NotificationEvent, attributes map[string]string) string {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Message.Data = base64.StdEncoding.EncodeToString(payload)
	msg.Message.Attributes = attributes
	msg.Message.MessageID = "msg-1"

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func validEvent() *service.NotificationEvent {
	return &service.NotificationEvent{
		RequestID:      "payload-request",
		NotificationID: uuid.New().String(),
		UserID:         uuid.New().String(),
		Kind:           "comment",
		Title:          "New comment",
		Body:           "Mina commented on your post",
	}
}

func push(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func TestPushHandler_AcknowledgesEvent(t *testing.T) {
	h, recorder := newTestHandler(t, localConfig())
	recorder.On("RecordRelayEvent", "comment").Once()

	rec := push(h, envelope(t, validEvent(), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_RejectsMalformedEnvelopes(t *testing.T) {
	h, _ := newTestHandler(t, localConfig())

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "data not base64", body: `{"message":{"data":"%%%"}}`},
		{name: "payload not json", body: `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("nope")) + `"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := push(h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPushHandler_DropsUnusableEvent(t *testing.T) {
	h, _ := newTestHandler(t, localConfig())

	event := validEvent()
	event.Kind = "broadcast"

	rec := push(h, envelope(t, event, nil))

	// Acknowledged so Pub/Sub stops redelivering, but never counted.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_VerifiesGoogleTokens(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}
	cfg.Env.Env = "production"

	h, recorder := newTestHandler(t, cfg)
	require.True(t, h.verifyPushAuth)

	h.verifyToken = func(*http.Request) error { return errors.New("bad audience") }
	rec := push(h, envelope(t, validEvent(), nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	recorder.On("RecordRelayEvent", "comment").Once()
	h.verifyToken = func(*http.Request) error { return nil }
	rec = push(h, envelope(t, validEvent(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewPushHandler_SkipsVerificationLocally(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "google"}}
	cfg.Env.Env = "local"

	h, _ := newTestHandler(t, cfg)

	assert.False(t, h.verifyPushAuth)
}

func TestVerifyPubSubToken_RequiresBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/push", nil)

	err := verifyPubSubToken(req)

	assert.ErrorContains(t, err, "missing bearer token")
}

func TestExtractRequestID_Priority(t *testing.T) {
	event := validEvent()
	var msg PubSubMessage
	msg.Message.Attributes = map[string]string{"request_id": "attribute-request"}
	ctx := deliverycontext.WithRequestID(t.Context(), "header-request")

	assert.Equal(t, "attribute-request", extractRequestID(ctx, &msg, event))

	msg.Message.Attributes = nil
	assert.Equal(t, "payload-request", extractRequestID(ctx, &msg, event))

	event.RequestID = ""
	assert.Equal(t, "header-request", extractRequestID(ctx, &msg, event))

	_, err := uuid.Parse(extractRequestID(t.Context(), &msg, event))
	assert.NoError(t, err)
}
