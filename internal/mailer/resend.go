package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Message is one composed email handed to the transport.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Transport delivers one composed message through the provider and
// returns the provider-assigned message ID.
type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ProviderError is a structured rejection reported by the provider.
// StatusCode is the HTTP status; Name and Message come from Resend's
// error body.
type ProviderError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *ProviderError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Message
}

// resendTransport talks to the Resend REST API with bearer auth.
type resendTransport struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func newResendTransport(apiKey string) Transport {
	return &resendTransport{
		apiKey:   apiKey,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *resendTransport) Send(ctx context.Context, msg Message) (string, error) {
	payload := map[string]any{
		"from":    msg.From,
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var ok struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &ok); err != nil {
			return "", fmt.Errorf("decode provider response: %w", err)
		}
		return ok.ID, nil
	}

	pe := &ProviderError{}
	if err := json.Unmarshal(raw, pe); err != nil || pe.Message == "" {
		pe.Message = fmt.Sprintf("provider returned status %d", resp.StatusCode)
	}
	pe.StatusCode = resp.StatusCode
	return "", pe
}
