// Package handler holds the worker's Pub/Sub push endpoints.
package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"bridge/config"
	deliverycontext "bridge/internal/delivery/context"
	"bridge/internal/domain/constants"
	"bridge/internal/infra/pubsub"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PushHandler refreshes cached rating summaries from review events.
type PushHandler struct {
	verifyPushAuth bool
	verifyToken    func(*http.Request) error
	logger         *slog.Logger
	reviewUC       usecase.ReviewUsecase
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	ReviewUC usecase.ReviewUsecase
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		verifyToken:    verifyPubSubToken,
		logger:         params.Logger,
		reviewUC:       params.ReviewUC,
	}
}

// HandlePush acknowledges malformed messages with 200 so Pub/Sub drops them,
// and answers 503 when the refresh itself fails so the message is redelivered.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("[Worker] Failed to read push body", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	msg, event, err := pubsub.DecodePushMessage(body)
	if err != nil {
		h.logger.Error("[Worker] Dropping undecodable push message", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	requestID := extractRequestID(ctx, msg.Message.Attributes, event.RequestID)
	ctx, reqLogger := deliverycontext.WithRequestScope(ctx, h.logger, requestID)

	productID, err := uuid.Parse(event.ProductID)
	if err != nil {
		reqLogger.Error("[Worker] Dropping review event with invalid product id",
			slog.String("product_id", event.ProductID),
			slog.String("message_id", msg.Message.MessageID),
		)

		return c.NoContent(http.StatusOK)
	}

	summary, err := h.reviewUC.RefreshRatingSummary(ctx, productID)
	if err != nil {
		reqLogger.Error("[Worker] Failed to refresh rating summary",
			slog.String("product_id", productID.String()),
			slog.String("kind", event.Kind),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusServiceUnavailable)
	}

	reqLogger.Info("[Worker] Rating summary refreshed",
		slog.String("product_id", productID.String()),
		slog.String("kind", event.Kind),
		slog.Float64("average", summary.Average),
		slog.Int64("count", summary.Count),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the event payload, then
// the X-Request-Id already on the context, and generates one as a last resort.
func extractRequestID(ctx context.Context, attributes map[string]string, eventRequestID string) string {
	if requestID := attributes["request_id"]; requestID != "" {
		return deliverycontext.NormalizeRequestID(requestID)
	}
	if eventRequestID != "" {
		return deliverycontext.NormalizeRequestID(eventRequestID)
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

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
