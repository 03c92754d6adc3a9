package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Config struct {
	GatewayURL string
	APIKey     string
	Sender     string
}

// GatewayProvider posts messages to an HTTP SMS gateway.
type GatewayProvider struct {
	cfg    Config
	client *http.Client
}

func NewGateway(cfg Config) *GatewayProvider {
	return &GatewayProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type gatewayPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

func (p *GatewayProvider) Send(ctx context.Context, to string, message string) error {
	if to == "" {
		return fmt.Errorf("sms: no recipient")
	}

	body, err := json.Marshal(gatewayPayload{
		From:    p.cfg.Sender,
		To:      to,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sms: gateway returned %d", resp.StatusCode)
	}
	return nil
}
