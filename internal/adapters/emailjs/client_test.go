package emailjs_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/adapters/emailjs"
	"portfolio/internal/adapters/outbound"
	"portfolio/internal/domain"
)

func TestSend_TemplateParams(t *testing.T) {
	var got struct {
		ServiceID      string            `json:"service_id"`
		TemplateID     string            `json:"template_id"`
		UserID         string            `json:"user_id"`
		AccessToken    string            `json:"accessToken"`
		TemplateParams map[string]string `json:"template_params"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("OK"))
	}))
	defer ts.Close()

	c := emailjs.New(emailjs.Config{
		URL: ts.URL, ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub", PrivateKey: "priv",
	}, outbound.New("emailjs", outbound.Options{RPS: 100}))
	require.True(t, c.Enabled())

	err := c.Send(context.Background(), domain.Email{FromName: "Ana", ReplyTo: "ana@example.com", Subject: "Hi", Body: "Body"})
	require.NoError(t, err)
	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pub", got.UserID)
	assert.Equal(t, "priv", got.AccessToken)
	assert.Equal(t, "Ana", got.TemplateParams["from_name"])
	assert.Equal(t, "ana@example.com", got.TemplateParams["reply_to"])
	assert.Equal(t, "Body", got.TemplateParams["message"])
}

func TestSend_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The template ID is invalid"))
	}))
	defer ts.Close()

	c := emailjs.New(emailjs.Config{URL: ts.URL, ServiceID: "s", TemplateID: "t", PublicKey: "p"},
		outbound.New("emailjs", outbound.Options{RPS: 100}))

	err := c.Send(context.Background(), domain.Email{})
	var se *domain.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Contains(t, se.Body, "template ID")
}

func TestEnabled_PartialConfig(t *testing.T) {
	c := emailjs.New(emailjs.Config{ServiceID: "s"}, outbound.New("emailjs", outbound.Options{}))
	assert.False(t, c.Enabled())
}
