package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"skrbl-automation-platform/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.WorkflowTrigger = (*N8NAdapter)(nil)

// N8NAdapter fires webhook-triggered workflows on an n8n instance. Delivery is
// at-most-once; callers do not retry.
type N8NAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewN8NAdapter(baseURL, apiKey string) *N8NAdapter {
	return &N8NAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *N8NAdapter) Configured() bool { return n.baseURL != "" }

func (n *N8NAdapter) Trigger(ctx context.Context, event string, payload map[string]any) error {
	if !n.Configured() {
		return fmt.Errorf("n8n base url not configured")
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/webhook/%s", n.baseURL, event)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("X-N8N-API-KEY", n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("n8n webhook: status %d", resp.StatusCode)
	}
	return nil
}
