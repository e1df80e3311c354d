package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"portfolio/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu       sync.Mutex
	nextID   int64
	reviews  []domain.Review
	bookings []domain.Booking
	inserts  int
	failWith error
}

func (f *fakeRepo) InsertReview(ctx context.Context, r domain.Review) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.nextID++
	r.ID = f.nextID
	f.reviews = append(f.reviews, r)
	f.inserts++
	return r.ID, nil
}

func (f *fakeRepo) ListReviews(ctx context.Context, q domain.ListQuery) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.Review(nil), f.reviews...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeRepo) DeleteReview(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) CountReviews(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.reviews)), nil
}

func (f *fakeRepo) InsertBooking(ctx context.Context, b domain.Booking) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, b)
	f.inserts++
	return b.ID, nil
}

func (f *fakeRepo) ListBookings(ctx context.Context, q domain.ListQuery) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]domain.Booking(nil), f.bookings...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeRepo) DeleteBooking(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeRepo) PurgeBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.bookings[:0]
	var n int64
	for _, b := range f.bookings {
		if b.CreatedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, b)
	}
	f.bookings = kept
	return n, nil
}

func (f *fakeRepo) CountBookings(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.bookings)), nil
}

// fakeCache round-trips through JSON like the real one does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
	}
	c.dels++
	return nil
}

type fakeMailer struct {
	name    string
	enabled bool
	err     error

	mu   sync.Mutex
	sent []domain.Email
}

func (m *fakeMailer) Name() string  { return m.name }
func (m *fakeMailer) Enabled() bool { return m.enabled }
func (m *fakeMailer) Send(ctx context.Context, e domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// gatedRepo parks ListReviews after it has read its rows until release is closed.
type gatedRepo struct {
	*fakeRepo
	read    chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedRepo) ListReviews(ctx context.Context, q domain.ListQuery) ([]domain.Review, error) {
	out, err := g.fakeRepo.ListReviews(ctx, q)
	gate := false
	g.once.Do(func() { gate = true })
	if gate {
		close(g.read)
		<-g.release
	}
	return out, err
}

// corruptCache reports a hit together with a decode error.
type corruptCache struct{ fakeCache }

func (c *corruptCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	return true, errors.New("invalid character")
}
