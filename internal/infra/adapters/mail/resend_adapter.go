package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skrbl-automation-platform/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.Mailer = (*ResendAdapter)(nil)

// ResendAdapter sends transactional email through the Resend HTTP API.
type ResendAdapter struct {
	apiKey string
	from   string
	base   string
	client *http.Client
}

func NewResendAdapter(apiKey, from string) *ResendAdapter {
	return &ResendAdapter{
		apiKey: apiKey,
		from:   from,
		base:   "https://api.resend.com",
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *ResendAdapter) Configured() bool {
	return r.apiKey != "" && r.from != ""
}

func (r *ResendAdapter) Send(ctx context.Context, to, subject, body string) (string, error) {
	payload := map[string]any{
		"from":    r.from,
		"to":      []string{to},
		"subject": subject,
		"html":    body,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/emails", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("resend: status %d", resp.StatusCode)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.ID, nil
}
