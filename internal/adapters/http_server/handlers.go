package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"portfolio/internal/adapters/observability"
	"portfolio/internal/app"
	"portfolio/internal/content"
	"portfolio/internal/domain"
)

const maxBodyBytes = 64 << 10

type Handlers struct {
	Reviews  *app.ReviewService
	Bookings *app.BookingService
	Contact  *app.ContactService
	Admin    *app.AdminService
	Site     content.Site
	// OwnerEmail is offered to visitors as the manual fallback in error copy.
	OwnerEmail string
}

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.index)

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/site", h.site)
		r.Get("/reviews", h.listReviews)
		r.With(s.limitSubmissions).Post("/reviews", h.createReview)
		r.With(s.limitSubmissions).Post("/bookings", h.createBooking)
		r.With(s.limitSubmissions).Post("/contact", h.sendContact)

		r.Group(func(r chi.Router) {
			r.Use(AdminKey(s.opts.AdminKey))
			r.Get("/bookings", h.listBookings)
			r.Delete("/reviews/{id}", h.deleteReview)
			r.Delete("/bookings/{id}", h.deleteBooking)
			r.Get("/admin/summary", h.summary)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemDoc(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemDoc(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable serves v with a weak ETag and answers 304 when the client has it.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeProblem(w, http.StatusRequestEntityTooLarge, "Body Too Large",
				"request body must be at most "+strconv.FormatInt(tooBig.Limit, 10)+" bytes")
			return false
		}
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be a JSON object")
		return false
	}
	return true
}

func parseLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	ls := r.URL.Query().Get("limit")
	if ls == "" {
		return def, true
	}
	l, err := strconv.Atoi(ls)
	if err != nil || l <= 0 || l > domain.MaxLimit {
		writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
		return 0, false
	}
	return l, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

// fail renders a service error. Visitor-facing detail comes from app.Classify.
func (h *Handlers) fail(w http.ResponseWriter, kind app.Kind, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblemDoc(w, problem{
			Type: "about:blank", Title: "Validation Failed", Status: http.StatusBadRequest,
			Detail: app.MsgMissingFields, Errors: ve.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", string(kind)+" not found")
	case errors.Is(err, app.ErrNoMailer):
		log.Error().Err(err).Str("kind", string(kind)).Msg("submission failed")
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", app.Classify(kind, err, h.OwnerEmail).Message)
	case kind == app.KindContact:
		// the relay failed upstream of us
		log.Error().Err(err).Str("kind", string(kind)).Msg("submission failed")
		writeProblem(w, http.StatusBadGateway, "Delivery Failed", app.Classify(kind, err, h.OwnerEmail).Message)
	default:
		log.Error().Err(err).Str("kind", string(kind)).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", app.Classify(kind, err, h.OwnerEmail).Message)
	}
}

func (h *Handlers) site(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, h.Site)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, domain.DefaultLimit)
	if !ok {
		return
	}
	out, err := h.Reviews.List(r.Context(), domain.ListQuery{Limit: limit})
	if err != nil {
		h.fail(w, app.KindReview, err)
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in domain.Review
	if !decodeBody(w, r, &in) {
		return
	}
	rv, err := h.Reviews.Submit(r.Context(), in)
	observability.ObserveSubmission(string(app.KindReview), err)
	if err != nil {
		h.fail(w, app.KindReview, err)
		return
	}
	log.Info().Int64("id", rv.ID).Int("rating", rv.Rating).Msg("review submitted")
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var in domain.Booking
	if !decodeBody(w, r, &in) {
		return
	}
	b, err := h.Bookings.Submit(r.Context(), in)
	observability.ObserveSubmission(string(app.KindBooking), err)
	if err != nil {
		h.fail(w, app.KindBooking, err)
		return
	}
	log.Info().Int64("id", b.ID).Str("reference", b.Reference).Msg("booking submitted")
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) sendContact(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactMessage
	if !decodeBody(w, r, &in) {
		return
	}
	err := h.Contact.Send(r.Context(), in)
	observability.ObserveSubmission(string(app.KindContact), err)
	if err != nil {
		h.fail(w, app.KindContact, err)
		return
	}
	writeJSON(w, http.StatusOK, app.Classify(app.KindContact, nil, h.OwnerEmail))
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r, domain.DefaultLimit)
	if !ok {
		return
	}
	out, err := h.Bookings.List(r.Context(), domain.ListQuery{Limit: limit})
	if err != nil {
		h.fail(w, app.KindBooking, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Reviews.Delete(r.Context(), id); err != nil {
		h.fail(w, app.KindReview, err)
		return
	}
	log.Info().Int64("id", id).Str("remote", remoteIP(r)).Msg("review deleted by admin")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(r.Context(), id); err != nil {
		h.fail(w, app.KindBooking, err)
		return
	}
	log.Info().Int64("id", id).Str("remote", remoteIP(r)).Msg("booking deleted by admin")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	latest := 5
	if ls := r.URL.Query().Get("latest"); ls != "" {
		n, err := strconv.Atoi(ls)
		if err != nil || n <= 0 || n > domain.MaxLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid latest", "latest must be an integer between 1 and 200")
			return
		}
		latest = n
	}
	out, err := h.Admin.Summary(r.Context(), latest)
	if err != nil {
		h.fail(w, "summary", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
