package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookSink posts notices to the platform connector, which renders them as
// DM-style messages.
type WebhookSink struct {
	url    string
	client *http.Client
}

// NewWebhookSink returns a sink posting to the given connector URL.
func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type webhookPayload struct {
	UserID string `json:"user_id"`
	Notice Notice `json:"notice"`
}

// Notify posts the notice as JSON.
func (s *WebhookSink) Notify(ctx context.Context, userID string, notice Notice) error {
	body, err := json.Marshal(webhookPayload{UserID: userID, Notice: notice})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", res.Status)
	}

	return nil
}
