package sms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyOwnerPostsPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewSmsService(srv.URL, "key-1", "+1555000")
	require.NoError(t, svc.NotifyOwner(context.Background(), "hiring_signal_detected", "short detail"))

	assert.Equal(t, "+1555000", got["to"])
	assert.Contains(t, got["body"], "hiring_signal_detected: short detail")
}

func TestNotifyOwnerTruncatesOnRunes(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(raw, &payload))
		body = payload["body"]
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewSmsService(srv.URL, "", "+1555000")
	detail := strings.Repeat("é", 200)
	require.NoError(t, svc.NotifyOwner(context.Background(), "resource_requested", detail))

	assert.True(t, utf8.ValidString(body), "truncation must never split a rune")
	assert.Contains(t, body, strings.Repeat("é", 120)+"...")
	assert.NotContains(t, body, strings.Repeat("é", 121))
}

func TestNotifyOwnerGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewSmsService(srv.URL, "", "+1555000")
	err := svc.NotifyOwner(context.Background(), "resource_requested", "detail")
	assert.ErrorContains(t, err, "502")
}
