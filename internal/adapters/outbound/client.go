// Package outbound is the shared JSON-over-HTTP caller for third-party APIs:
// client-side rate limiting, bounded retries on 429/5xx, and error
// classification into domain.ErrUnreachable and *domain.StatusError.
package outbound

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"portfolio/internal/adapters/observability"
	"portfolio/internal/domain"
)

const (
	maxBody    = 1 << 20
	maxSnippet = 512
)

type Options struct {
	RPS         int
	MaxAttempts int
	Timeout     time.Duration
	UserAgent   string
}

type Client struct {
	service  string
	hc       *http.Client
	rl       *rate.Limiter
	attempts int
	ua       string
}

func New(service string, o Options) *Client {
	if o.RPS <= 0 {
		o.RPS = 5
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 1
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.UserAgent == "" {
		o.UserAgent = "folio/1.0"
	}
	return &Client{
		service:  service,
		hc:       &http.Client{Timeout: o.Timeout},
		rl:       rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		attempts: o.MaxAttempts,
		ua:       o.UserAgent,
	}
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do sends body (JSON-encoded when non-nil) and returns the 2xx response.
// endpoint is a low-cardinality label for metrics.
func (c *Client) Do(ctx context.Context, method, url, endpoint string, body any, hdr http.Header) (Response, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Response{}, fmt.Errorf("%s: encode request: %w", c.service, err)
		}
		payload = b
	}

	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return Response{}, err
	}

	var lastErr error
	for i := 0; i < c.attempts; i++ {
		last := i == c.attempts-1

		// build a fresh request each attempt
		var rdr io.Reader
		if payload != nil {
			rdr = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rdr)
		if err != nil {
			return Response{}, err
		}
		for k, vs := range hdr {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.ua)

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(c.service, endpoint, 0, time.Since(start))
			// context canceled by the caller is not a network failure
			if ctx.Err() != nil {
				return Response{}, ctx.Err()
			}
			lastErr = fmt.Errorf("%s: %w: %v", c.service, domain.ErrUnreachable, err)
			if !last && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return Response{}, ctx.Err()
			}
			return Response{}, lastErr
		}

		b, rerr := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		resp.Body.Close()
		observability.ObserveExternal(c.service, endpoint, resp.StatusCode, time.Since(start))
		if rerr != nil {
			return Response{}, fmt.Errorf("%s: %w: read body: %v", c.service, domain.ErrUnreachable, rerr)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return Response{Status: resp.StatusCode, Header: resp.Header, Body: b}, nil

		case retryable(resp.StatusCode):
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			lastErr = &domain.StatusError{Code: resp.StatusCode, Body: snippet(b), Raw: b}
			wait := retryAfter(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			if !last && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return Response{}, ctx.Err()
			}
			return Response{}, lastErr

		default:
			return Response{}, &domain.StatusError{Code: resp.StatusCode, Body: snippet(b), Raw: b}
		}
	}
	return Response{}, lastErr
}

func retryable(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// snippet keeps error messages short without splitting a UTF-8 sequence.
func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxSnippet {
		cut := maxSnippet
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
