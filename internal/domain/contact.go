package domain

import "strings"

// ContactMessage is never stored; it is relayed by email only.
type ContactMessage struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject,omitempty" validate:"max=200"`
	Message string `json:"message" validate:"required,max=4000"`
}

func (m *ContactMessage) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
}

// Email is what a Mailer delivers.
type Email struct {
	FromName string
	ReplyTo  string
	Subject  string
	Body     string
	// Fields are passed through to template-based providers.
	Fields map[string]string
}
