package domain

import (
	"strings"
	"time"
)

// Booking is a consultation request left through the booking form.
type Booking struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	Name          string    `json:"name" validate:"required,max=120"`
	Email         string    `json:"email" validate:"required,email,max=254"`
	Phone         string    `json:"phone,omitempty" validate:"max=40"`
	Company       string    `json:"company,omitempty" validate:"max=120"`
	Service       string    `json:"service" validate:"required,max=120"`
	PreferredDate string    `json:"preferred_date,omitempty" validate:"max=40"`
	Budget        string    `json:"budget,omitempty" validate:"max=60"`
	Message       string    `json:"message" validate:"required,max=4000"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Booking) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Company = strings.TrimSpace(b.Company)
	b.Service = strings.TrimSpace(b.Service)
	b.PreferredDate = strings.TrimSpace(b.PreferredDate)
	b.Budget = strings.TrimSpace(b.Budget)
	b.Message = strings.TrimSpace(b.Message)
}
