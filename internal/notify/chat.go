package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"coparent/internal/config"
)

// ChatClient announces new group conversations to the chat provider.
type ChatClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewChatClient returns a client whose calls return ErrDisabled when no base URL is set.
func NewChatClient(cfg config.ChatConfig) *ChatClient {
	return &ChatClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *ChatClient) RegisterGroup(ctx context.Context, g ChatGroup) error {
	if c.baseURL == "" {
		return ErrDisabled
	}

	body, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode chat group: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/groups", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("chat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("chat api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
