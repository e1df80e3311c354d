package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"portfolio/internal/domain"
)

type deliverer interface {
	Deliver(ctx context.Context, e domain.Email) error
}

// Notifier sends owner emails in the background with at most `workers`
// deliveries in flight.
type Notifier struct {
	d       deliverer
	sem     *semaphore.Weighted
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewNotifier(d deliverer, workers int, timeout time.Duration) *Notifier {
	if workers <= 0 {
		workers = 4
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Notifier{d: d, sem: semaphore.NewWeighted(int64(workers)), timeout: timeout}
}

// Enqueue schedules e for delivery. It reports false once the notifier is closed.
func (n *Notifier) Enqueue(e domain.Email) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return false
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		// queued sends wait for a slot; the timeout covers delivery only
		if err := n.sem.Acquire(context.Background(), 1); err != nil {
			log.Warn().Err(err).Str("subject", e.Subject).Msg("notification slot unavailable")
			return
		}
		defer n.sem.Release(1)

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.d.Deliver(ctx, e); err != nil {
			log.Error().Err(err).Str("subject", e.Subject).Msg("notification failed")
			return
		}
		log.Info().Str("subject", e.Subject).Msg("notification sent")
	}()
	return true
}

// Close stops accepting work and waits for in-flight deliveries.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	n.wg.Wait()
}
