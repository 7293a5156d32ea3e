package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minex/config"
	"minex/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.NotificationEvent {
	return &service.NotificationEvent{
		RequestID:      "req-1",
		NotificationID: "n-1",
		UserID:         "u-1",
		Kind:           "welcome",
		Title:          "Welcome",
		Body:           "Welcome back, Mina",
		CreatedAt:      "2026-01-01T00:00:00Z",
	}
}

func TestLocalHTTPPublisher_PushesEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := newLocalHTTPPublisher(server.URL, server.Client(), discardLogger())
	require.NoError(t, publisher.PublishNotificationEvent(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.Equal(t, "n-1", received.Message.MessageID)
	assert.Equal(t, "u-1", received.Message.Attributes["user_id"])
	assert.Equal(t, "welcome", received.Message.Attributes["kind"])

	payload, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.NotificationEvent
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, *testEvent(), decoded)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := newLocalHTTPPublisher(server.URL, server.Client(), discardLogger())
	err := publisher.PublishNotificationEvent(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestEncodePushMessage_OmitsEmptyRequestID(t *testing.T) {
	event := testEvent()
	event.RequestID = ""

	body, err := encodePushMessage(event, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	var msg PushMessage
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "2026-01-02T03:04:05Z", msg.Message.PublishTime)
	_, ok := msg.Message.Attributes["request_id"]
	assert.False(t, ok)
}

func TestNewPublisher_SelectsProvider(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	p, err := newPublisher(ctx, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, p)

	p, err = newPublisher(ctx, &config.PubSubConfig{Provider: "noop"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, p)
	assert.NoError(t, p.PublishNotificationEvent(ctx, testEvent()))

	p, err = newPublisher(ctx, &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:1"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, p)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: "local"}, logger)
	assert.Error(t, err)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: "google", TopicID: "t"}, logger)
	assert.Error(t, err)

	_, err = newPublisher(ctx, &config.PubSubConfig{Provider: "kafka"}, logger)
	assert.Error(t, err)
}
