package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SMSClient posts messages to an Africa's Talking style form endpoint.
type SMSClient struct {
	username   string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewSMSClient(username, apiKey, baseURL string, log *zap.Logger) *SMSClient {
	return &SMSClient{
		username:   username,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.Named("sms"),
	}
}

func (c *SMSClient) SendSMS(ctx context.Context, to, message string) error {
	if c.username == "" || c.apiKey == "" {
		// Without gateway credentials messages are only logged.
		c.log.Warn("sms gateway not configured, message not sent", zap.String("to", to))
		return nil
	}

	// Prepare the form data
	data := url.Values{}
	data.Set("username", c.username)
	data.Set("to", to)
	data.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send SMS: status code %d", resp.StatusCode)
	}

	c.log.Info("sms sent", zap.String("to", to))
	return nil
}
