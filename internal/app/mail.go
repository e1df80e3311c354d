package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"portfolio/internal/domain"
)

var ErrNoMailer = errors.New("no mail provider configured")

// MailChain tries each enabled mailer in order until one accepts the email.
type MailChain struct {
	mailers []domain.Mailer
}

func NewMailChain(m ...domain.Mailer) *MailChain { return &MailChain{mailers: m} }

func (c *MailChain) Enabled() bool {
	for _, m := range c.mailers {
		if m.Enabled() {
			return true
		}
	}
	return false
}

func (c *MailChain) Deliver(ctx context.Context, e domain.Email) error {
	var last error
	for _, m := range c.mailers {
		if !m.Enabled() {
			continue
		}
		err := m.Send(ctx, e)
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Str("mailer", m.Name()).Msg("mail delivery failed")
		last = err
		if ctx.Err() != nil {
			break
		}
	}
	if last == nil {
		return ErrNoMailer
	}
	return last
}
