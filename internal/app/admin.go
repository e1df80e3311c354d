package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"portfolio/internal/domain"
)

type AdminService struct {
	reviews  domain.ReviewRepository
	bookings domain.BookingRepository
}

func NewAdminService(r domain.ReviewRepository, b domain.BookingRepository) *AdminService {
	return &AdminService{reviews: r, bookings: b}
}

// Summary reads counts and the latest items straight from storage, bypassing caches.
func (s *AdminService) Summary(ctx context.Context, latest int) (domain.Summary, error) {
	q := domain.ListQuery{Limit: latest}.Normalized()

	var out domain.Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ReviewCount, err = s.reviews.CountReviews(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.BookingCount, err = s.bookings.CountBookings(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.LatestReviews, err = s.reviews.ListReviews(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		out.LatestBookings, err = s.bookings.ListBookings(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Summary{}, err
	}
	return out, nil
}
