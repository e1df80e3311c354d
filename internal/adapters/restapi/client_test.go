package restapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/adapters/restapi"
	"portfolio/internal/app"
	"portfolio/internal/domain"
)

func newAPI(t *testing.T, h http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func problem(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestSubmitBooking_Success(t *testing.T) {
	srv, hits := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings/", r.URL.Path)
		assert.Empty(t, r.Header.Get("X-Admin-Key"))

		var b domain.Booking
		require.NoError(t, json.NewDecoder(r.Body).Decode(&b))
		assert.Equal(t, "Bob", b.Name)
		b.ID, b.Reference = 7, "ref-123"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(b)
	})

	c := restapi.New(srv.URL+"/", restapi.Options{FallbackEmail: "me@example.com"})
	b, out := c.SubmitBooking(context.Background(), domain.Booking{
		Name: " Bob ", Email: "bob@example.com", Service: "Web", Message: "Hi",
	})
	assert.True(t, out.OK())
	assert.Equal(t, app.Classify(app.KindBooking, nil, "").Message, out.Message)
	assert.Equal(t, "ref-123", b.Reference)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestSubmitReview_InvalidMakesNoCall(t *testing.T) {
	srv, hits := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	c := restapi.New(srv.URL, restapi.Options{})
	_, out := c.SubmitReview(context.Background(), domain.Review{Name: "  ", Rating: 5})
	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Equal(t, app.MsgMissingFields, out.Message)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestSubmitReview_ServerErrorCopy(t *testing.T) {
	srv, hits := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		problem(w, http.StatusInternalServerError, `{"title":"Internal Error","status":500,"detail":"db down"}`)
	})

	c := restapi.New(srv.URL, restapi.Options{FallbackEmail: "me@example.com"})
	_, out := c.SubmitReview(context.Background(), domain.Review{Name: "Ana", Rating: 5, Text: "Great"})
	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Contains(t, out.Message, "Something went wrong")
	assert.Contains(t, out.Message, "me@example.com")
	// single attempt by default
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestSubmitReview_ServerValidationProblem(t *testing.T) {
	srv, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		problem(w, http.StatusBadRequest, `{"title":"Validation Failed","status":400,"errors":{"text":"is required"}}`)
	})

	c := restapi.New(srv.URL, restapi.Options{})
	_, out := c.SubmitReview(context.Background(), domain.Review{Name: "Ana", Rating: 5, Text: "Great"})
	assert.Equal(t, app.MsgMissingFields, out.Message)
}

func TestAdmin_LargeProblemKeepsFieldErrors(t *testing.T) {
	long := strings.Repeat("x", 2000)
	srv, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		problem(w, http.StatusBadRequest, `{"title":"Validation Failed","status":400,"detail":"`+long+`","errors":{"text":"is required"}}`)
	})

	err := restapi.New(srv.URL, restapi.Options{AdminKey: "k"}).DeleteReview(context.Background(), 1)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "is required", ve.Fields["text"])
}

func TestSendContact_NetworkErrorCopy(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := restapi.New(base, restapi.Options{FallbackEmail: "me@example.com"})
	out := c.SendContact(context.Background(), domain.ContactMessage{Name: "Cara", Email: "cara@example.com", Message: "Hi"})
	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Contains(t, out.Message, "couldn't reach the server")
	assert.Contains(t, out.Message, "me@example.com")
}

func TestAdmin_SendsKeyAndDecodes(t *testing.T) {
	srv, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Admin-Key") != "k" {
			problem(w, http.StatusUnauthorized, `{"title":"Unauthorized","status":401,"detail":"missing or invalid admin key"}`)
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/bookings":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode([]domain.Booking{{ID: 1, Name: "Bob"}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/admin/summary":
			_ = json.NewEncoder(w).Encode(domain.Summary{ReviewCount: 3, BookingCount: 1})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/reviews/5":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			problem(w, http.StatusNotFound, `{"title":"Not Found","status":404,"detail":"booking not found"}`)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	})
	ctx := context.Background()

	c := restapi.New(srv.URL, restapi.Options{AdminKey: "k"})
	list, err := c.ListBookings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Name)

	sum, err := c.Summary(ctx, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, sum.ReviewCount)

	require.NoError(t, c.DeleteReview(ctx, 5))

	err = c.DeleteBooking(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "delete booking 9")

	_, err = restapi.New(srv.URL, restapi.Options{AdminKey: "bad"}).ListBookings(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdmin_StatusErrorKeepsDetail(t *testing.T) {
	srv, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		problem(w, http.StatusServiceUnavailable, `{"title":"Admin Disabled","status":503,"detail":"no admin key is configured"}`)
	})

	_, err := restapi.New(srv.URL, restapi.Options{}).ListReviews(context.Background(), 0)
	var se *domain.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "no admin key is configured", se.Body)
}
