package handler

import (
	"log/slog"
	"net/http"

	"bridge/internal/delivery/api/response"
	"bridge/internal/domain/entity"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Logger   *slog.Logger
}

// ReviewHandler serves /api/reviews.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		logger:   params.Logger,
	}
}

// SubmitReviewRequest is a rating of one product by one user. Submitting
// again for the same pair replaces the earlier rating and comment.
type SubmitReviewRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment" validate:"max=2000"`
}

// UpdateReviewRequest carries the optional review fields.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	var req SubmitReviewRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.SubmitRating(c.Request().Context(), &usecase.SubmitRatingInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review)
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.GetReview(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review)
}

func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	reviews, err := h.reviewUC.ListReviewsByProduct(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, reviews)
}

func (h *ReviewHandler) ListByUser(c echo.Context) error {
	userID, err := pathUUID(c, "userId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	reviews, err := h.reviewUC.ListReviewsByUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.List(c, reviews)
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateReviewRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), id, entity.ReviewPatch{Rating: req.Rating, Comment: req.Comment})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ProductRating returns the average rating and review count of a product.
func (h *ReviewHandler) ProductRating(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	summary, err := h.reviewUC.RatingSummary(c.Request().Context(), productID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary)
}
