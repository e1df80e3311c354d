package httpserver

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"portfolio/internal/app"
	"portfolio/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const indexReviews = 20

// formCopy is the outcome text a form shows when the server gives none.
type formCopy struct {
	Success string
	Failure string
}

func (h *Handlers) formCopy(kind app.Kind) formCopy {
	return formCopy{
		Success: app.Classify(kind, nil, h.OwnerEmail).Message,
		Failure: app.Classify(kind, errors.New("request failed"), h.OwnerEmail).Message,
	}
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.List(r.Context(), domain.ListQuery{Limit: indexReviews})
	if err != nil {
		// the page still renders; the script retries the list
		log.Error().Err(err).Msg("load reviews for index failed")
	}

	var buf bytes.Buffer
	err = pages.ExecuteTemplate(&buf, "index.html", map[string]any{
		"Site":       h.Site,
		"Categories": h.Site.Categories(),
		"Services":   h.Site.ServiceNames(),
		"OwnerEmail": h.OwnerEmail,
		"Reviews":    reviews,
		"ReviewCopy": h.formCopy(app.KindReview),
		"BookCopy":   h.formCopy(app.KindBooking),
		"MailCopy":   h.formCopy(app.KindContact),
		"Network":    app.Classify(app.KindContact, domain.ErrUnreachable, h.OwnerEmail).Message,
	})
	if err != nil {
		log.Error().Err(err).Msg("render index failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
