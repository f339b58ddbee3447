package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// expoTokenPrefix marks tokens issued by the Expo push service.
const expoTokenPrefix = "ExponentPushToken["

// ExpoProvider delivers notifications through the Expo push service.
type ExpoProvider struct {
	endpoint string
	client   *http.Client
}

// NewExpoProvider creates an Expo channel provider.
func NewExpoProvider(endpoint string) *ExpoProvider {
	return &ExpoProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultRequestTimeout},
	}
}

// Supports reports whether the token is an Expo push token.
func (p *ExpoProvider) Supports(token string) bool {
	return strings.HasPrefix(token, expoTokenPrefix) && strings.HasSuffix(token, "]")
}

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Send delivers the notification over Expo.
func (p *ExpoProvider) Send(ctx context.Context, token string, title string, body string, data map[string]string) error {
	payload, err := json.Marshal(expoMessage{To: token, Title: title, Body: body, Data: data})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expo send: unexpected status %d", resp.StatusCode)
	}

	return nil
}
