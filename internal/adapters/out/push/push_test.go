package push_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dispatch/internal/adapters/out/push"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpoProvider_Supports(t *testing.T) {
	p := push.NewExpoProvider("http://localhost")

	assert.True(t, p.Supports("ExponentPushToken[abc123]"))
	assert.False(t, p.Supports("fcm-registration-token"))
	assert.False(t, p.Supports("ExponentPushToken[unterminated"))
	assert.False(t, p.Supports(""))
}

func TestFCMProvider_Supports(t *testing.T) {
	p := push.NewFCMProvider("http://localhost", "key")

	assert.True(t, p.Supports("fcm-registration-token"))
	assert.False(t, p.Supports("ExponentPushToken[abc123]"))
	assert.False(t, p.Supports(""))
}

func TestFCMProvider_Send(t *testing.T) {
	var received map[string]any
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := push.NewFCMProvider(srv.URL, "secret")

	err := p.Send(t.Context(), "device-token", "Order update", "Your order is ready",
		map[string]string{"orderId": "42"})

	require.NoError(t, err)
	assert.Equal(t, "key=secret", auth)
	assert.Equal(t, "device-token", received["to"])

	notification, ok := received["notification"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Order update", notification["title"])
}

func TestExpoProvider_Send(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := push.NewExpoProvider(srv.URL)

	err := p.Send(t.Context(), "ExponentPushToken[abc]", "Order update", "On the way", nil)

	require.NoError(t, err)
	assert.Equal(t, "ExponentPushToken[abc]", received["to"])
	assert.Equal(t, "On the way", received["body"])
}

func TestProviders_SendErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	fcm := push.NewFCMProvider(srv.URL, "key")
	require.Error(t, fcm.Send(t.Context(), "token", "t", "b", nil))

	expo := push.NewExpoProvider(srv.URL)
	require.Error(t, expo.Send(t.Context(), "ExponentPushToken[abc]", "t", "b", nil))
}
