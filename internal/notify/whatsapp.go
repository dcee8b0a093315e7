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

// WhatsApp sends plain-text messages through the provider's JSON API, one
// request per recipient number.
type WhatsApp struct {
	apiURL string
	token  string
	client *http.Client
}

func NewWhatsApp(apiURL, token string) *WhatsApp {
	return &WhatsApp{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WhatsApp) Name() string { return "whatsapp" }

func (w *WhatsApp) Send(ctx context.Context, msg Message) error {
	for _, number := range msg.Numbers {
		if number == "" {
			continue
		}
		if err := w.sendOne(ctx, number, msg.Text); err != nil {
			return err
		}
	}
	return nil
}

func (w *WhatsApp) sendOne(ctx context.Context, number, text string) error {
	reqBody, err := json.Marshal(map[string]string{
		"to":      number,
		"message": text,
	})
	if err != nil {
		return fmt.Errorf("marshal whatsapp request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", w.apiURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("create whatsapp request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp provider status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
