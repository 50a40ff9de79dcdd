package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// DefaultResendURL is the Resend API base URL.
const DefaultResendURL = "https://api.resend.com"

// ResendConfig configures a [ResendSender].
type ResendConfig struct {
	APIKey            string
	From              string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	// Transport is the base round tripper under the bearer-token transport. Nil uses [http.DefaultTransport].
	Transport http.RoundTripper
}

// ResendSender delivers email through the Resend HTTP API.
type ResendSender struct {
	baseURL string
	from    string
	client  *http.Client
	limiter *rate.Limiter
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Name    string `json:"name"`
}

// NewResendSender creates a [ResendSender] that authenticates with the API key as a bearer token and
// paces requests to RequestsPerSecond.
func NewResendSender(cfg ResendConfig) *ResendSender {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Transport: base})
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey, TokenType: "Bearer"}))
	client.Timeout = cfg.Timeout

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultResendURL
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &ResendSender{
		baseURL: baseURL,
		from:    cfg.From,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Name implements [Sender].
func (s *ResendSender) Name() string { return "resend" }

// Send implements [Sender] and returns the Resend email id.
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait failed: %w", err)
	}

	data, err := json.Marshal(resendRequest{From: s.from, To: []string{msg.To}, Subject: msg.Subject, HTML: msg.HTML})
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed resendResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := parsed.Message
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("resend returned status %d: %s", resp.StatusCode, detail)
	}

	if parsed.ID == "" {
		return "", fmt.Errorf("resend response missing id")
	}
	return parsed.ID, nil
}
