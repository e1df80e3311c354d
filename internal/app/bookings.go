package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"portfolio/internal/domain"
)

type BookingService struct {
	repo   domain.BookingRepository
	notify *Notifier
	now    func() time.Time
}

// NewBookingService wires the repository; notify may be nil to skip owner emails.
func NewBookingService(r domain.BookingRepository, notify *Notifier) *BookingService {
	return &BookingService{repo: r, notify: notify, now: time.Now}
}

func (s *BookingService) Submit(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	b.Normalize()
	b.ID = 0
	if err := domain.Validate(b); err != nil {
		return domain.Booking{}, err
	}
	b.Reference = uuid.NewString()
	b.CreatedAt = s.now().UTC()

	id, err := s.repo.InsertBooking(ctx, b)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("submit booking: %w", err)
	}
	b.ID = id

	// the booking is stored; a failed notification must not fail it
	if s.notify != nil && !s.notify.Enqueue(bookingEmail(b)) {
		log.Warn().Str("reference", b.Reference).Msg("booking notification dropped")
	}
	return b, nil
}

func (s *BookingService) List(ctx context.Context, q domain.ListQuery) ([]domain.Booking, error) {
	out, err := s.repo.ListBookings(ctx, q.Normalized())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteBooking(ctx, id)
}

// Purge drops bookings created more than retention ago.
func (s *BookingService) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	n, err := s.repo.PurgeBookingsBefore(ctx, s.now().UTC().Add(-retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("removed", n).Dur("retention", retention).Msg("booking retention purge")
	}
	return n, nil
}

func bookingEmail(b domain.Booking) domain.Email {
	var sb strings.Builder
	fmt.Fprintf(&sb, "New booking request from your portfolio:\n\n")
	fmt.Fprintf(&sb, "Reference: %s\n", b.Reference)
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Email: %s\n", b.Email)
	optional := []struct{ label, v string }{
		{"Phone", b.Phone},
		{"Company", b.Company},
		{"Preferred date", b.PreferredDate},
		{"Budget", b.Budget},
	}
	for _, o := range optional {
		if o.v != "" {
			fmt.Fprintf(&sb, "%s: %s\n", o.label, o.v)
		}
	}
	fmt.Fprintf(&sb, "Service: %s\n\nMessage:\n%s\n", b.Service, b.Message)

	return domain.Email{
		FromName: b.Name,
		ReplyTo:  b.Email,
		Subject:  fmt.Sprintf("Booking request: %s (%s)", b.Service, b.Name),
		Body:     sb.String(),
		Fields: map[string]string{
			"reference": b.Reference,
			"service":   b.Service,
		},
	}
}
