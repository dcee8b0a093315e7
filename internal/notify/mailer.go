package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mailer sends HTML mail through the provider's JSON API.
type Mailer struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

func NewMailer(apiURL, apiKey, from string) *Mailer {
	return &Mailer{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *Mailer) Name() string { return "mail" }

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if len(msg.Emails) == 0 {
		return nil
	}

	body := map[string]interface{}{
		"from":    m.from,
		"to":      msg.Emails,
		"subject": msg.Subject,
		"html":    msg.HTML,
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal mail request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", m.apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("create mail request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail provider status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
