package emailjs

import (
	"context"
	"net/http"

	"portfolio/internal/adapters/outbound"
	"portfolio/internal/domain"
)

const DefaultURL = "https://api.emailjs.com/api/v1.0/email/send"

type Config struct {
	URL        string
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is required when the EmailJS account forbids non-browser calls.
	PrivateKey string
}

type Client struct {
	cfg Config
	out *outbound.Client
}

func New(cfg Config, out *outbound.Client) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	return &Client{cfg: cfg, out: out}
}

func (c *Client) Name() string { return "emailjs" }

func (c *Client) Enabled() bool {
	return c.cfg.ServiceID != "" && c.cfg.TemplateID != "" && c.cfg.PublicKey != ""
}

type request struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send renders through the configured template; EmailJS answers 200 "OK" on success.
func (c *Client) Send(ctx context.Context, e domain.Email) error {
	params := map[string]string{}
	for k, v := range e.Fields {
		params[k] = v
	}
	params["from_name"] = e.FromName
	params["reply_to"] = e.ReplyTo
	params["subject"] = e.Subject
	params["message"] = e.Body

	_, err := c.out.Do(ctx, http.MethodPost, c.cfg.URL, "send", request{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	}, nil)
	return err
}
