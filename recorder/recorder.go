// Package recorder posts prompt-audit entries to the persistence service.
// Recording is best-effort: callers log failures and move on.
package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"website_content_orchestrator/generator"
)

// HTTPRecorder implements generator.PromptRecorder against a JSON endpoint.
type HTTPRecorder struct {
	endpoint string
	client   *http.Client
}

// New creates a recorder posting to endpoint with the given timeout.
func New(endpoint string, timeout time.Duration) *HTTPRecorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRecorder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Record posts one audit entry.
func (r *HTTPRecorder) Record(ctx context.Context, entry generator.PromptEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("record prompt: %s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return nil
}
