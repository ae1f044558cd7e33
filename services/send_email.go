package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/westley-wess/portfolio/config"
	"github.com/westley-wess/portfolio/errs"
)

const defaultResendURL = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Email is one outgoing message
type Email struct {
	To      []string
	Subject string
	Html    string
	ReplyTo string
}

// Mailer sends email through the Resend API
type Mailer struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

// NewMailer builds a Mailer from configuration.
//
// Requires:
//   - RESEND_API_KEY: Your Resend API key
//   - RESEND_FROM_EMAIL: The sender address (e.g., "Portfolio <[email protected]>")
//
// Optional:
//   - RESEND_API_URL: Overrides the Resend endpoint
//
// A missing key is not an error here; Send reports it so the server can
// start without email configured.
func NewMailer(cfg map[string]string) *Mailer {
	return &Mailer{
		apiKey:     config.GetString(cfg, "RESEND_API_KEY", ""),
		from:       config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
		endpoint:   config.GetString(cfg, "RESEND_API_URL", defaultResendURL),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Send sends an email using the Resend API
func (m *Mailer) Send(ctx context.Context, email Email) error {
	err := m.send(ctx, email)
	if err != nil {
		notificationsSent.WithLabelValues("email", "failed").Inc()
		return err
	}
	notificationsSent.WithLabelValues("email", "sent").Inc()
	return nil
}

func (m *Mailer) send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if m.apiKey == "" {
		return errs.NewConfigMissingError("RESEND_API_KEY")
	}
	if m.from == "" {
		return errs.NewConfigMissingError("RESEND_FROM_EMAIL")
	}

	payload := ResendEmailRequest{
		From:    m.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.Html,
		ReplyTo: email.ReplyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
