package domain

import (
	"context"
	"time"
)

type ReviewRepository interface {
	InsertReview(ctx context.Context, r Review) (int64, error)
	ListReviews(ctx context.Context, q ListQuery) ([]Review, error)
	DeleteReview(ctx context.Context, id int64) error
	CountReviews(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	InsertBooking(ctx context.Context, b Booking) (int64, error)
	ListBookings(ctx context.Context, q ListQuery) ([]Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	PurgeBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, keys ...string) error
}

// Mailer delivers an Email through one provider.
type Mailer interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, e Email) error
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type ListQuery struct {
	Limit int
}

// Normalized clamps Limit into [1, MaxLimit], defaulting to DefaultLimit.
func (q ListQuery) Normalized() ListQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Summary is the admin dashboard view.
type Summary struct {
	ReviewCount    int64     `json:"review_count"`
	BookingCount   int64     `json:"booking_count"`
	LatestReviews  []Review  `json:"latest_reviews"`
	LatestBookings []Booking `json:"latest_bookings"`
}
