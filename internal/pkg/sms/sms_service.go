package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type ISmsService interface {
	NotifyOwner(ctx context.Context, reason, detail string) error
}

// smsService pushes owner alerts through a generic SMS webhook gateway
// (Twilio-compatible relays, ntfy bridges and the like all take this shape).
type smsService struct {
	client     *http.Client
	webhookURL string
	apiKey     string
	ownerPhone string
}

func NewSmsService(webhookURL, apiKey, ownerPhone string) ISmsService {
	return &smsService{
		client:     &http.Client{Timeout: 10 * time.Second},
		webhookURL: webhookURL,
		apiKey:     apiKey,
		ownerPhone: ownerPhone,
	}
}

func (s *smsService) NotifyOwner(ctx context.Context, reason, detail string) error {
	if runes := []rune(detail); len(runes) > 120 {
		detail = string(runes[:120]) + "..."
	}
	payload := map[string]string{
		"to":   s.ownerPhone,
		"body": fmt.Sprintf("[chatbot] %s: %s", reason, detail),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
