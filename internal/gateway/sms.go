package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type SMSConfig struct {
	URL      string
	Token    string
	Username string
	Sender   string
	Timeout  time.Duration
}

// SMSClient posts messages to an HTTP SMS gateway. The credential is sent as
// a bearer token, or as basic auth when a username is configured.
type SMSClient struct {
	cfg    SMSConfig
	client *http.Client
}

type smsRequest struct {
	Sender     string   `json:"sender"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

type smsResponse struct {
	Status      int    `json:"status"`
	Description string `json:"description"`
	MessageID   string `json:"messageId"`
}

func NewSMSClient(cfg SMSConfig, client *http.Client) *SMSClient {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &SMSClient{cfg: cfg, client: client}
}

func (c *SMSClient) SendSMS(ctx context.Context, phone, message string) (string, error) {
	if c.cfg.URL == "" {
		return "", errors.New("sms gateway url not configured")
	}

	body, err := json.Marshal(smsRequest{
		Sender:     c.cfg.Sender,
		Message:    message,
		Recipients: []string{phone},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Token)
	} else if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read sms gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, snippet(raw))
	}

	var out smsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode sms gateway response: %w", err)
	}
	if out.Status != 0 {
		return "", &Error{Code: out.Status, Description: out.Description}
	}

	log.Debug().Str("message_id", out.MessageID).Msg("sms accepted by gateway")
	return out.MessageID, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 256 {
		s = s[:256] + "..."
	}
	return s
}
