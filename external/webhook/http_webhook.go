package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/foxseedlab/ytsummary/internal/webhook"
)

// DefaultTimeout bounds a webhook call when no HTTP timeout is configured.
const DefaultTimeout = 30 * time.Second

type HTTPSender struct {
	webhookURL string
	client     *http.Client
}

// NewHTTPSender posts summary payloads to webhookURL. A non-positive timeout
// selects DefaultTimeout.
func NewHTTPSender(webhookURL string, timeout time.Duration) webhook.Sender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSender) SendSummary(ctx context.Context, payload webhook.SummaryWebhookPayload) error {
	if s.webhookURL == "" {
		return nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode summary webhook: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post summary webhook: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		return fmt.Errorf("summary webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
