package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skrbl-automation-platform/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.SMSSender = (*TwilioAdapter)(nil)

// TwilioAdapter sends SMS through the Twilio Messages API.
type TwilioAdapter struct {
	accountSID string
	authToken  string
	from       string
	base       string
	client     *http.Client
}

func NewTwilioAdapter(accountSID, authToken, from string) *TwilioAdapter {
	return &TwilioAdapter{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		base:       "https://api.twilio.com",
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *TwilioAdapter) Configured() bool {
	return t.accountSID != "" && t.authToken != "" && t.from != ""
}

func (t *TwilioAdapter) Send(ctx context.Context, to, body string) (string, error) {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.base, t.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("twilio: status %d", resp.StatusCode)
	}

	var out struct {
		Sid string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Sid, nil
}
