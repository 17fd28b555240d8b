// Package mailer sends transactional email through Resend.
package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-booking-api/core/config"

	"github.com/resend/resend-go/v2"
)

type Attachment struct {
	Filename string
	Content  []byte
}

func NewAttachment(filename string, content []byte) Attachment {
	return Attachment{Filename: filename, Content: content}
}

type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type Sender interface {
	// Enabled is false when no provider key is configured.
	Enabled() bool
	Send(ctx context.Context, msg Message) error
}

// DeliveryError carries the provider's response for a rejected message.
// Status is zero when the request never got a response.
type DeliveryError struct {
	Status int
	Body   string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email provider returned %d: %s", e.Status, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type ResendClient struct {
	apiKey string
	from   string
	client *resend.Client
}

func NewResendClient(cfg config.EmailConfig) *ResendClient {
	from := cfg.From
	if from == "" {
		from = "noreply@example.com"
	}

	httpClient := &http.Client{
		Timeout:   15 * time.Second,
		Transport: statusRecorder{next: http.DefaultTransport},
	}
	client := resend.NewCustomClient(httpClient, cfg.ResendAPIKey)
	if cfg.BaseURL != "" {
		if u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/"); err == nil {
			client.BaseURL = u
		}
	}

	return &ResendClient{
		apiKey: cfg.ResendAPIKey,
		from:   from,
		client: client,
	}
}

func (c *ResendClient) Enabled() bool {
	return c.apiKey != ""
}

func (c *ResendClient) From() string {
	return c.from
}

func (c *ResendClient) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = c.from
	}

	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	status := &responseStatus{}
	if _, err := c.client.Emails.SendWithContext(context.WithValue(ctx, responseStatusKey{}, status), req); err != nil {
		return &DeliveryError{Status: status.code, Body: err.Error(), Err: err}
	}
	return nil
}

type responseStatusKey struct{}

type responseStatus struct {
	code int
}

// statusRecorder copies the HTTP status into the request's responseStatus so a
// rejected send can report it.
type statusRecorder struct {
	next http.RoundTripper
}

func (t statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if resp != nil {
		if st, ok := req.Context().Value(responseStatusKey{}).(*responseStatus); ok {
			st.code = resp.StatusCode
		}
	}
	return resp, err
}
