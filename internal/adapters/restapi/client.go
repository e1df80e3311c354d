// Package restapi is the caller side of the portfolio REST API: visitor
// submissions that resolve to a domain.Outcome, and the admin operations
// used by the moderation page and folioctl.
package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"portfolio/internal/adapters/outbound"
	"portfolio/internal/app"
	"portfolio/internal/domain"
)

const adminKeyHeader = "X-Admin-Key"

type Options struct {
	AdminKey string
	// FallbackEmail is appended to failure copy so visitors can write directly.
	FallbackEmail string
	Timeout       time.Duration
	MaxAttempts   int
}

type Client struct {
	base     string
	adminKey string
	fallback string
	out      *outbound.Client
}

func New(baseURL string, o Options) *Client {
	return &Client{
		base:     strings.TrimRight(baseURL, "/"),
		adminKey: o.AdminKey,
		fallback: o.FallbackEmail,
		out: outbound.New("folio-api", outbound.Options{
			RPS:         10,
			MaxAttempts: o.MaxAttempts,
			Timeout:     o.Timeout,
			UserAgent:   "folioctl/1.0",
		}),
	}
}

// SubmitReview validates locally and, when complete, posts the review once.
func (c *Client) SubmitReview(ctx context.Context, r domain.Review) (domain.Review, domain.Outcome) {
	r.Normalize()
	var out domain.Review
	err := domain.Validate(r)
	if err == nil {
		err = c.call(ctx, http.MethodPost, "/api/reviews/", "reviews.submit", r, &out, false)
	}
	return out, app.Classify(app.KindReview, err, c.fallback)
}

// SubmitBooking returns the stored booking, including its reference, on success.
func (c *Client) SubmitBooking(ctx context.Context, b domain.Booking) (domain.Booking, domain.Outcome) {
	b.Normalize()
	var out domain.Booking
	err := domain.Validate(b)
	if err == nil {
		err = c.call(ctx, http.MethodPost, "/api/bookings/", "bookings.submit", b, &out, false)
	}
	return out, app.Classify(app.KindBooking, err, c.fallback)
}

func (c *Client) SendContact(ctx context.Context, m domain.ContactMessage) domain.Outcome {
	m.Normalize()
	err := domain.Validate(m)
	if err == nil {
		err = c.call(ctx, http.MethodPost, "/api/contact/", "contact.send", m, nil, false)
	}
	return app.Classify(app.KindContact, err, c.fallback)
}

func (c *Client) ListReviews(ctx context.Context, limit int) ([]domain.Review, error) {
	var out []domain.Review
	if err := c.call(ctx, http.MethodGet, "/api/reviews"+limitQuery("limit", limit), "reviews.list", nil, &out, false); err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	return out, nil
}

func (c *Client) ListBookings(ctx context.Context, limit int) ([]domain.Booking, error) {
	var out []domain.Booking
	if err := c.call(ctx, http.MethodGet, "/api/bookings"+limitQuery("limit", limit), "bookings.list", nil, &out, true); err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	return out, nil
}

func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	err := c.call(ctx, http.MethodDelete, "/api/reviews/"+strconv.FormatInt(id, 10), "reviews.delete", nil, nil, true)
	return errors.Wrapf(err, "delete review %d", id)
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	err := c.call(ctx, http.MethodDelete, "/api/bookings/"+strconv.FormatInt(id, 10), "bookings.delete", nil, nil, true)
	return errors.Wrapf(err, "delete booking %d", id)
}

func (c *Client) Summary(ctx context.Context, latest int) (domain.Summary, error) {
	var out domain.Summary
	if err := c.call(ctx, http.MethodGet, "/api/admin/summary"+limitQuery("latest", latest), "admin.summary", nil, &out, true); err != nil {
		return domain.Summary{}, errors.Wrap(err, "admin summary")
	}
	return out, nil
}

func limitQuery(name string, n int) string {
	if n <= 0 {
		return ""
	}
	return "?" + url.Values{name: {strconv.Itoa(n)}}.Encode()
}

type problem struct {
	Title  string            `json:"title"`
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors"`
}

func (c *Client) call(ctx context.Context, method, path, endpoint string, body, dst any, admin bool) error {
	var hdr http.Header
	if admin {
		hdr = http.Header{adminKeyHeader: {c.adminKey}}
	}
	res, err := c.out.Do(ctx, method, c.base+path, endpoint, body, hdr)
	if err != nil {
		return translate(err)
	}
	if dst == nil || len(res.Body) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(res.Body, dst), "decode response")
}

// translate turns problem documents into their domain meaning: field errors
// become a ValidationError and other problems keep only the server's detail.
func translate(err error) error {
	var se *domain.StatusError
	if !errors.As(err, &se) {
		return err
	}
	raw := se.Raw
	if raw == nil {
		raw = []byte(se.Body)
	}
	var p problem
	if json.Unmarshal(raw, &p) != nil {
		return err
	}
	switch {
	case len(p.Errors) > 0:
		return &domain.ValidationError{Fields: p.Errors}
	case se.Code == http.StatusNotFound:
		return errors.Wrap(domain.ErrNotFound, p.Detail)
	case se.Code == http.StatusUnauthorized:
		return errors.Wrap(domain.ErrUnauthorized, p.Detail)
	case p.Detail != "":
		return &domain.StatusError{Code: se.Code, Body: p.Detail}
	}
	return err
}
