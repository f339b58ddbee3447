// Package push contains the outbound push channel providers. Each
// provider speaks one vendor's HTTP API and reports via Supports which
// tokens it can address, so the notification dispatcher can route a
// token without knowing channel formats.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 5 * time.Second

// FCMProvider delivers notifications through Firebase Cloud Messaging.
type FCMProvider struct {
	endpoint  string
	serverKey string
	client    *http.Client
}

// NewFCMProvider creates an FCM channel provider. The endpoint is
// configurable so tests can point it at a local server.
func NewFCMProvider(endpoint string, serverKey string) *FCMProvider {
	return &FCMProvider{
		endpoint:  endpoint,
		serverKey: serverKey,
		client:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// Supports reports whether the token is addressable over FCM. Expo
// tokens have their own provider; everything else non-empty is treated
// as a device registration token.
func (p *FCMProvider) Supports(token string) bool {
	return token != "" && !strings.HasPrefix(token, expoTokenPrefix)
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmMessage struct {
	To           string            `json:"to"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

// Send delivers the notification over FCM.
func (p *FCMProvider) Send(ctx context.Context, token string, title string, body string, data map[string]string) error {
	payload, err := json.Marshal(fcmMessage{
		To:           token,
		Notification: fcmNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+p.serverKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fcm send: unexpected status %d", resp.StatusCode)
	}

	return nil
}
