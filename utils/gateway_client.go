// utils/gateway_client.go
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

// GatewayClient calls back into the bot Gateway, which owns the actual
// Telegram connection. The card service never talks to Telegram directly.
type GatewayClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewGatewayClient() *GatewayClient {
	baseURL := os.Getenv("GATEWAY_URL")
	if baseURL == "" {
		log.Fatal("GATEWAY_URL environment variable is required")
	}
	token := os.Getenv("CARD_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("CARD_SERVICE_TOKEN environment variable is required for gateway calls")
	}

	return &GatewayClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: HTTPClient,
	}
}

func (c *GatewayClient) post(path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway payload: %w", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(snippet))
	}
	return nil
}

// DeleteMessages asks the Gateway to delete messages in a chat. Satisfies
// services.MessageCleaner.
func (c *GatewayClient) DeleteMessages(chatID int64, messageIDs []int) error {
	return c.post("/api/v1/internal/messages/delete", map[string]any{
		"chat_id":     chatID,
		"message_ids": messageIDs,
	})
}

// NotifyUser asks the Gateway to deliver a private message to a user, used
// for join-request notifications to clan creators.
func (c *GatewayClient) NotifyUser(userID int64, text string) error {
	return c.post("/api/v1/internal/messages/send", map[string]any{
		"user_id": userID,
		"text":    text,
	})
}
