// Package client talks to the portfolio REST API.
//
// Credentials are looked up per request through the function passed to
// WithCredentials, so callers decide where tokens live.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/westley-wess/portfolio/catalog"
)

// CredentialFunc returns the bearer token for the next request. An empty
// token sends no Authorization header.
type CredentialFunc func(ctx context.Context) (string, error)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithCredentials(fn CredentialFunc) Option {
	return func(c *Client) { c.credentials = fn }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialFunc
	logger      zerolog.Logger
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.With().Str("component", "apiClient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error is a non-2xx API response
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type ContactSubmission struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	SubmissionType string `json:"submission_type,omitempty"`
}

type HireRequest struct {
	ApplicantName  string  `json:"applicant_name"`
	ApplicantEmail string  `json:"applicant_email"`
	ApplicantPhone string  `json:"applicant_phone"`
	CompanyName    string  `json:"company_name"`
	Role           string  `json:"role"`
	OfferedSalary  float64 `json:"offered_salary"`
	Message        string  `json:"message,omitempty"`
}

type QuickLink struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	IconClass  string `json:"icon_class"`
	Color      string `json:"color"`
	IsDownload bool   `json:"is_download"`
	Order      uint   `json:"order"`
}

// ListProjects fetches the curated projects
func (c *Client) ListProjects(ctx context.Context) ([]catalog.Project, error) {
	var projects []catalog.Project
	if err := c.do(ctx, http.MethodGet, "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// SyncGitHub asks the API for username's repositories. Elements are left raw;
// see catalog.NormalizeSynced.
func (c *Client) SyncGitHub(ctx context.Context, username string) ([]json.RawMessage, error) {
	var resp struct {
		Projects []json.RawMessage `json:"projects"`
	}
	body := map[string]string{"username": username}
	if err := c.do(ctx, http.MethodPost, "/projects/sync-github/", body, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *Client) SubmitContact(ctx context.Context, submission ContactSubmission) error {
	return c.do(ctx, http.MethodPost, "/contact/", submission, nil)
}

// SubmitHire sends a hire request and returns the server's acknowledgement
func (c *Client) SubmitHire(ctx context.Context, req HireRequest) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/hire/", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) ProfilePicture(ctx context.Context) (string, error) {
	var resp struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile/picture/", nil, &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

func (c *Client) ProfileCV(ctx context.Context) (string, error) {
	var resp struct {
		CVURL string `json:"cvUrl"`
	}
	if err := c.do(ctx, http.MethodGet, "/profile/cv/", nil, &resp); err != nil {
		return "", err
	}
	return resp.CVURL, nil
}

func (c *Client) QuickLinks(ctx context.Context) ([]QuickLink, error) {
	var links []QuickLink
	if err := c.do(ctx, http.MethodGet, "/quicklinks/", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.credentials != nil {
		token, err := c.credentials(ctx)
		if err != nil {
			return fmt.Errorf("look up credentials: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// newError takes the message from the first of error, detail or message
// present in the body, else the status text.
func newError(resp *http.Response) *Error {
	e := &Error{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return e
	}
	var payload struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) != nil {
		return e
	}
	for _, msg := range []string{payload.Error, payload.Detail, payload.Message} {
		if msg != "" {
			e.Message = msg
			break
		}
	}
	return e
}
