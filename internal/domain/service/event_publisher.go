// Package service defines interfaces for side-effecting collaborators the use
// cases depend on but do not implement: event publishing, caching, QR codes.
package service

import (
	"context"
	"time"
)

// ReviewEvent tells the rating worker that a product's ratings changed.
type ReviewEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Kind       string    `json:"kind"`
	ReviewID   string    `json:"review_id"`
	ProductID  string    `json:"product_id"`
	UserID     string    `json:"user_id"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishReviewEvent publishes a review event for async processing
	PublishReviewEvent(ctx context.Context, event *ReviewEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
