package web3forms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"portfolio/internal/adapters/outbound"
	"portfolio/internal/domain"
)

const DefaultURL = "https://api.web3forms.com/submit"

type Client struct {
	url       string
	accessKey string
	out       *outbound.Client
}

func New(url, accessKey string, out *outbound.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{url: url, accessKey: accessKey, out: out}
}

func (c *Client) Name() string { return "web3forms" }

func (c *Client) Enabled() bool { return c.accessKey != "" }

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send submits the email as a Web3Forms form post. Extra fields are forwarded
// verbatim and show up in the delivered message.
func (c *Client) Send(ctx context.Context, e domain.Email) error {
	payload := map[string]string{}
	for k, v := range e.Fields {
		payload[k] = v
	}
	payload["access_key"] = c.accessKey
	payload["subject"] = e.Subject
	payload["from_name"] = e.FromName
	payload["name"] = e.FromName
	payload["email"] = e.ReplyTo
	payload["message"] = e.Body

	resp, err := c.out.Do(ctx, http.MethodPost, c.url, "submit", payload, nil)
	if err != nil {
		return err
	}
	var res result
	if err := json.Unmarshal(resp.Body, &res); err != nil {
		return fmt.Errorf("web3forms: decode response: %w", err)
	}
	if !res.Success {
		return &domain.StatusError{Code: resp.Status, Body: res.Message}
	}
	return nil
}
