package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/app"
	"portfolio/internal/domain"
)

func TestReviewSubmit_RejectsIncomplete(t *testing.T) {
	repo := &fakeRepo{}
	s := app.NewReviewService(repo, &fakeCache{}, time.Minute)

	_, err := s.Submit(context.Background(), domain.Review{Name: "Ana", Text: "  "})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, repo.inserts, "invalid review must not reach storage")
}

func TestReviewSubmit_StoresAndInvalidates(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	s := app.NewReviewService(repo, cache, time.Minute)
	ctx := context.Background()

	// warm the cache
	_, err := s.List(ctx, domain.ListQuery{})
	require.NoError(t, err)
	require.Contains(t, cache.store, "reviews:latest")

	got, err := s.Submit(ctx, domain.Review{Name: " Ana ", Company: "Acme", Rating: 5, Text: "Great work"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
	assert.NotContains(t, cache.store, "reviews:latest")

	list, err := s.List(ctx, domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Name)
}

func TestReviewList_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{reviews: []domain.Review{{ID: 1, Name: "Ana", Rating: 5, Text: "Great"}}, nextID: 1}
	s := app.NewReviewService(repo, &fakeCache{}, time.Minute)
	ctx := context.Background()

	out, err := s.List(ctx, domain.ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, out, 1)

	// Change repo behind the service; the second read must come from cache.
	repo.reviews[0].Name = "Changed"
	out[0].Name = "Mutated by caller"

	out2, err := s.List(ctx, domain.ListQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Ana", out2[0].Name)
}

func TestReviewList_LimitSlicesCachedPage(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 5; i++ {
		_, _ = repo.InsertReview(context.Background(), domain.Review{Name: "n", Rating: 3, Text: "t"})
	}
	s := app.NewReviewService(repo, &fakeCache{}, time.Minute)

	out, err := s.List(context.Background(), domain.ListQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.EqualValues(t, 5, out[0].ID)

	out, err = s.List(context.Background(), domain.ListQuery{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestReviewDelete(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	s := app.NewReviewService(repo, cache, time.Minute)
	ctx := context.Background()

	r, err := s.Submit(ctx, domain.Review{Name: "Ana", Rating: 4, Text: "Nice"})
	require.NoError(t, err)
	_, _ = s.List(ctx, domain.ListQuery{})

	require.NoError(t, s.Delete(ctx, r.ID))
	assert.NotContains(t, cache.store, "reviews:latest")

	err = s.Delete(ctx, r.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReviewService_NilCache(t *testing.T) {
	s := app.NewReviewService(&fakeRepo{}, nil, time.Minute)
	_, err := s.Submit(context.Background(), domain.Review{Name: "Ana", Rating: 4, Text: "Nice"})
	require.NoError(t, err)
	out, err := s.List(context.Background(), domain.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestReviewList_FillRacingSubmitIsDropped(t *testing.T) {
	repo := &gatedRepo{fakeRepo: &fakeRepo{}, read: make(chan struct{}), release: make(chan struct{})}
	cache := &fakeCache{}
	s := app.NewReviewService(repo, cache, time.Minute)
	ctx := context.Background()

	done := make(chan []domain.Review)
	go func() {
		out, err := s.List(ctx, domain.ListQuery{})
		assert.NoError(t, err)
		done <- out
	}()

	// the read has its (empty) rows; a submit lands before it can fill the cache
	<-repo.read
	_, err := s.Submit(ctx, domain.Review{Name: "Ana", Rating: 5, Text: "Great"})
	require.NoError(t, err)
	close(repo.release)
	assert.Empty(t, <-done)

	out, err := s.List(ctx, domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, out, 1, "stale page was cached")
	assert.Equal(t, "Ana", out[0].Name)
}

func TestReviewList_CacheErrorIsAMiss(t *testing.T) {
	repo := &fakeRepo{reviews: []domain.Review{{ID: 1, Name: "Ana", Rating: 5, Text: "Great"}}, nextID: 1}
	s := app.NewReviewService(repo, &corruptCache{}, time.Minute)

	out, err := s.List(context.Background(), domain.ListQuery{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ana", out[0].Name)
}
