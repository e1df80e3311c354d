package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.Name,
		valStr(rv.Role),
		valStr(rv.Company),
		rv.Rating,
		rv.Text,
		rv.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ListQuery) ([]domain.Review, error) {
	q = q.Normalized()
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Review, 0, q.Limit)
	for rows.Next() {
		var rv domain.Review
		var role, company sql.NullString
		if err := rows.Scan(&rv.ID, &rv.Name, &role, &company, &rv.Rating, &rv.Text, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rv.Role = role.String
		rv.Company = company.String
		rv.CreatedAt = rv.CreatedAt.UTC()
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, deleteReviewSQL, id)
}

func (r *Repo) CountReviews(ctx context.Context) (int64, error) {
	return r.count(ctx, countReviewsSQL)
}

func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.Reference,
		b.Name,
		b.Email,
		valStr(b.Phone),
		valStr(b.Company),
		b.Service,
		valStr(b.PreferredDate),
		valStr(b.Budget),
		b.Message,
		b.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repo) ListBookings(ctx context.Context, q domain.ListQuery) ([]domain.Booking, error) {
	q = q.Normalized()
	rows, err := r.db.QueryContext(ctx, listBookingsSQL, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Booking, 0, q.Limit)
	for rows.Next() {
		var b domain.Booking
		var phone, company, preferred, budget sql.NullString
		if err := rows.Scan(
			&b.ID,
			&b.Reference,
			&b.Name,
			&b.Email,
			&phone,
			&company,
			&b.Service,
			&preferred,
			&budget,
			&b.Message,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Phone = phone.String
		b.Company = company.String
		b.PreferredDate = preferred.String
		b.Budget = budget.String
		b.CreatedAt = b.CreatedAt.UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) DeleteBooking(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, deleteBookingSQL, id)
}

func (r *Repo) CountBookings(ctx context.Context) (int64, error) {
	return r.count(ctx, countBookingsSQL)
}

// PurgeBookingsBefore removes bookings older than cutoff and reports how many went.
func (r *Repo) PurgeBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, purgeBookingsSQL, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge bookings: %w", err)
	}
	return res.RowsAffected()
}

func (r *Repo) deleteByID(ctx context.Context, stmt string, id int64) error {
	res, err := r.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) count(ctx context.Context, stmt string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, stmt).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
