package app

import (
	"context"
	"fmt"

	"portfolio/internal/domain"
)

type ContactService struct {
	mail *MailChain
}

func NewContactService(m *MailChain) *ContactService { return &ContactService{mail: m} }

func (s *ContactService) Send(ctx context.Context, m domain.ContactMessage) error {
	m.Normalize()
	if err := domain.Validate(m); err != nil {
		return err
	}
	return s.mail.Deliver(ctx, contactEmail(m))
}

func contactEmail(m domain.ContactMessage) domain.Email {
	subject := m.Subject
	if subject == "" {
		subject = m.Name
	}
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Message)

	return domain.Email{
		FromName: m.Name,
		ReplyTo:  m.Email,
		Subject:  "Portfolio contact: " + subject,
		Body:     body,
	}
}
