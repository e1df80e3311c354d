package domain

import (
	"strings"
	"time"
)

// Review is a client testimonial shown on the site.
type Review struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,max=120"`
	Role      string    `json:"role,omitempty" validate:"max=120"`
	Company   string    `json:"company,omitempty" validate:"max=120"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Text      string    `json:"text" validate:"required,max=4000"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize trims every free-text field in place.
func (r *Review) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	r.Company = strings.TrimSpace(r.Company)
	r.Text = strings.TrimSpace(r.Text)
}
