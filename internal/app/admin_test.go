package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/app"
	"portfolio/internal/domain"
)

func TestAdminSummary(t *testing.T) {
	repo := &fakeRepo{}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = repo.InsertReview(ctx, domain.Review{Name: "r", Rating: 5, Text: "t"})
	}
	_, _ = repo.InsertBooking(ctx, domain.Booking{Name: "b"})

	s := app.NewAdminService(repo, repo)
	sum, err := s.Summary(ctx, 2)
	require.NoError(t, err)

	assert.EqualValues(t, 3, sum.ReviewCount)
	assert.EqualValues(t, 1, sum.BookingCount)
	assert.Len(t, sum.LatestReviews, 2)
	assert.Len(t, sum.LatestBookings, 1)
}
