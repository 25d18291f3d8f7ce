package pubsub

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bridge/config"
	"bridge/internal/domain/constants"
	"bridge/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent() *service.ReviewEvent {
	return &service.ReviewEvent{
		RequestID:  "req-1",
		Kind:       constants.ReviewEventSubmitted,
		ReviewID:   uuid.NewString(),
		ProductID:  uuid.NewString(),
		UserID:     uuid.NewString(),
		Rating:     4,
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PublishReviewEvent(t *testing.T) {
	event := sampleEvent()

	var received *service.ReviewEvent
	var attrs map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		msg, decoded, err := DecodePushMessage(body)
		require.NoError(t, err)
		received = decoded
		attrs = msg.Message.Attributes
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.PublishReviewEvent(context.Background(), event))

	require.NotNil(t, received)
	assert.Equal(t, *event, *received)
	assert.Equal(t, constants.ReviewEventSubmitted, attrs["event"])
	assert.Equal(t, event.ProductID, attrs["product_id"])
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	err := publisher.PublishReviewEvent(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "non-success status: 503")
}

func TestDecodePushMessage_Invalid(t *testing.T) {
	_, _, err := DecodePushMessage([]byte("{"))
	assert.ErrorContains(t, err, "invalid push message")

	_, _, err = DecodePushMessage([]byte(`{"message":{"data":"***"}}`))
	assert.ErrorContains(t, err, "invalid base64")

	_, _, err = DecodePushMessage([]byte(`{"message":{"data":"bm90IGpzb24="}}`))
	assert.ErrorContains(t, err, "invalid review event payload")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
		local   bool
	}{
		{name: "not configured", cfg: nil},
		{name: "local", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderLocal, LocalEndpoint: "http://localhost:8081/pubsub/push"}, local: true},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderLocal}, wantErr: "local endpoint is required"},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}, wantErr: "project ID is required"},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: discardLogger(),
			})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)

			if tt.local {
				assert.IsType(t, &localHTTPPublisher{}, publisher)
			} else {
				assert.IsType(t, &noopPublisher{}, publisher)
				assert.NoError(t, publisher.PublishReviewEvent(context.Background(), sampleEvent()))
			}

			lc.RequireStart().RequireStop()
		})
	}
}
