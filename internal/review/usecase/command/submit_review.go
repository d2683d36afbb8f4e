package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
)

// EventPublisher is the notification boundary for review events. A nil
// publisher disables events; a publish failure never fails the command.
type EventPublisher interface {
	PublishReviewSubmitted(ctx context.Context, event kafka.ReviewSubmittedEvent) error
}

// SubmitReviewCommand represents the command to append a review to a
// product's log
type SubmitReviewCommand struct {
	ProductID int
	Author    string
	Rating    int
	Comment   string
}

// SubmitReviewHandler handles review submission commands
type SubmitReviewHandler struct {
	repo   domain.ReviewRepository
	events EventPublisher
}

// NewSubmitReviewHandler creates a new submit review handler
func NewSubmitReviewHandler(repo domain.ReviewRepository, events EventPublisher) *SubmitReviewHandler {
	return &SubmitReviewHandler{repo: repo, events: events}
}

// Handle validates and appends the review. A blank comment or an
// out-of-range rating is rejected without touching the log.
func (h *SubmitReviewHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) (*domain.Review, error) {
	if cmd.ProductID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	if strings.TrimSpace(cmd.Comment) == "" {
		return nil, domain.ErrEmptyComment
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}

	author := strings.TrimSpace(cmd.Author)
	if author == "" {
		author = "Anonymous"
	}

	review := h.repo.Append(cmd.ProductID, domain.Review{
		Author:  author,
		Rating:  cmd.Rating,
		Comment: cmd.Comment,
		Date:    time.Now().UTC(),
	})

	if h.events != nil {
		event := kafka.ReviewSubmittedEvent{
			ProductID: cmd.ProductID,
			ReviewID:  review.ID,
			Author:    review.Author,
			Rating:    review.Rating,
		}
		if err := h.events.PublishReviewSubmitted(ctx, event); err != nil {
			logger.Warn(ctx).Err(err).Int("product_id", cmd.ProductID).Msg("Failed to publish review event")
		}
	}

	return &review, nil
}
