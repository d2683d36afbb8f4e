package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/review/domain"
	"github.com/tair/storefront/internal/review/repository"
	"github.com/tair/storefront/kafka"
)

type stubPublisher struct {
	events []kafka.ReviewSubmittedEvent
}

func (p *stubPublisher) PublishReviewSubmitted(_ context.Context, event kafka.ReviewSubmittedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func newHandler(repo domain.ReviewRepository) *SubmitReviewHandler {
	return NewSubmitReviewHandler(repo, nil)
}

func TestSubmitReviewAppends(t *testing.T) {
	repo := repository.NewInMemoryReviewLog(nil)
	h := newHandler(repo)

	review, err := h.Handle(context.Background(), SubmitReviewCommand{
		ProductID: 3,
		Author:    "Dana",
		Rating:    4,
		Comment:   "Solid.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, review.ID)
	assert.Equal(t, "Dana", review.Author)
	assert.False(t, review.Date.IsZero())

	reviews := repo.ListByProduct(3)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Solid.", reviews[0].Comment)
}

func TestSubmitReviewValidation(t *testing.T) {
	cases := []struct {
		name    string
		cmd     SubmitReviewCommand
		wantErr error
	}{
		{"zero rating", SubmitReviewCommand{ProductID: 1, Rating: 0, Comment: "x"}, domain.ErrInvalidRating},
		{"rating above five", SubmitReviewCommand{ProductID: 1, Rating: 6, Comment: "x"}, domain.ErrInvalidRating},
		{"empty comment", SubmitReviewCommand{ProductID: 1, Rating: 3, Comment: ""}, domain.ErrEmptyComment},
		{"whitespace comment", SubmitReviewCommand{ProductID: 1, Rating: 3, Comment: "   \t"}, domain.ErrEmptyComment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := repository.NewInMemoryReviewLog(nil)
			_, err := newHandler(repo).Handle(context.Background(), tc.cmd)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, repo.ListByProduct(1), "a rejected review must not touch the log")
		})
	}
}

func TestReviewIDsAreScopedPerProduct(t *testing.T) {
	repo := repository.NewInMemoryReviewLog(nil)
	h := newHandler(repo)
	ctx := context.Background()

	first, err := h.Handle(ctx, SubmitReviewCommand{ProductID: 1, Rating: 5, Comment: "a"})
	require.NoError(t, err)
	second, err := h.Handle(ctx, SubmitReviewCommand{ProductID: 1, Rating: 4, Comment: "b"})
	require.NoError(t, err)
	other, err := h.Handle(ctx, SubmitReviewCommand{ProductID: 2, Rating: 3, Comment: "c"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 1, other.ID, "ids restart per product; they are not global")
}

func TestSubmitReviewContinuesSeededSequence(t *testing.T) {
	repo := repository.NewInMemoryReviewLog(repository.SeedReviews())
	h := newHandler(repo)

	review, err := h.Handle(context.Background(), SubmitReviewCommand{ProductID: 1, Rating: 5, Comment: "Great!"})
	require.NoError(t, err)
	assert.Equal(t, 3, review.ID, "seeded product 1 already has two reviews")

	reviews := repo.ListByProduct(1)
	require.Len(t, reviews, 3)
	assert.Equal(t, "Alice", reviews[0].Author, "append order is preserved")
}

func TestSubmitReviewDefaultsAnonymousAuthor(t *testing.T) {
	repo := repository.NewInMemoryReviewLog(nil)
	review, err := newHandler(repo).Handle(context.Background(), SubmitReviewCommand{
		ProductID: 1, Rating: 4, Comment: "ok", Author: "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", review.Author)
}

func TestSubmitReviewPublishesEvent(t *testing.T) {
	pub := &stubPublisher{}
	repo := repository.NewInMemoryReviewLog(nil)
	h := NewSubmitReviewHandler(repo, pub)

	review, err := h.Handle(context.Background(), SubmitReviewCommand{ProductID: 9, Rating: 5, Comment: "x"})
	require.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, 9, pub.events[0].ProductID)
	assert.Equal(t, review.ID, pub.events[0].ReviewID)
}
