// Package webhook forwards appointment notifications to the shop's configured
// automation endpoint (typically an n8n or Zapier flow).
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Sender struct {
	token string
	http  *http.Client
}

func NewSender(token string) *Sender {
	return &Sender{
		token: strings.TrimSpace(token),
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Send posts the payload as JSON to url. Any non-2xx response is an error;
// the caller decides whether to record the failure.
func (s *Sender) Send(ctx context.Context, url string, payload map[string]any) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("webhook url not configured")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
