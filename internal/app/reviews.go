package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"portfolio/internal/domain"
)

// The newest MaxLimit reviews are cached under one key; smaller pages are
// sliced from it so a write only has one key to invalidate.
const reviewsKey = "reviews:latest"

type ReviewService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time

	// gen counts invalidations; a fill started before one must not be stored.
	mu  sync.Mutex
	gen uint64
}

func NewReviewService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *ReviewService {
	return &ReviewService{repo: r, cache: c, cacheTTL: ttl, now: time.Now}
}

func (s *ReviewService) Submit(ctx context.Context, r domain.Review) (domain.Review, error) {
	r.Normalize()
	r.ID = 0
	if err := domain.Validate(r); err != nil {
		return domain.Review{}, err
	}
	r.CreatedAt = s.now().UTC()

	id, err := s.repo.InsertReview(ctx, r)
	if err != nil {
		return domain.Review{}, fmt.Errorf("submit review: %w", err)
	}
	r.ID = id
	s.invalidate(ctx)
	return r, nil
}

func (s *ReviewService) List(ctx context.Context, q domain.ListQuery) ([]domain.Review, error) {
	q = q.Normalized()

	var all []domain.Review
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, reviewsKey, &all)
		if err != nil {
			log.Warn().Err(err).Msg("read reviews cache failed")
		} else if ok {
			return head(all, q.Limit), nil
		}
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	all, err := s.repo.ListReviews(ctx, domain.ListQuery{Limit: domain.MaxLimit})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if s.cache != nil {
		s.fill(ctx, gen, all)
	}
	return head(all, q.Limit), nil
}

// fill stores rows read at generation gen unless a write invalidated them since.
func (s *ReviewService) fill(ctx context.Context, gen uint64, rows []domain.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	if err := s.cache.Set(ctx, reviewsKey, rows, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Msg("cache reviews failed")
	}
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ReviewService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if err := s.cache.Del(ctx, reviewsKey); err != nil {
		log.Warn().Err(err).Msg("invalidate reviews cache failed")
	}
}

// head copies at most n items so callers never alias the cached slice.
func head(in []domain.Review, n int) []domain.Review {
	if n > len(in) {
		n = len(in)
	}
	out := make([]domain.Review, n)
	copy(out, in[:n])
	return out
}
