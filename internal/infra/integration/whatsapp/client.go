package whatsapp

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
)

var ErrNotConfigured = errors.New("whatsapp não configurado")

type Client struct {
	accessToken string
	phoneID     string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(accessToken, phoneID, baseURL string) *Client {
	return &Client{
		accessToken: accessToken,
		phoneID:     phoneID,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SendText sends a plain-text message through the WhatsApp Cloud API.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	if c.accessToken == "" || c.phoneID == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(textMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             textPayload{Body: body},
	})
	if err != nil {
		return fmt.Errorf("whatsapp marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("whatsapp create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	var result SendMessageResponse
	_ = json.Unmarshal(respBody, &result)

	if result.Error != nil {
		return fmt.Errorf("whatsapp: %s (code %d)", result.Error.Message, result.Error.Code)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("whatsapp api error: %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if len(result.Messages) == 0 {
		return errors.New("whatsapp response missing message id")
	}

	return nil
}
