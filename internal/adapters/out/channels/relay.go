// Package channels delivers notifications to the external email and
// messaging relays over HTTP. Delivery is best effort: an unconfigured or
// unreachable relay produces a non-accepted delivery, never an error, so the
// in-app notification record stays the source of truth.
package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

const relayTimeout = 10 * time.Second

// RelayClient posts notifications to the email and messaging relay services.
// Either base URL may be empty, in which case that channel is disabled and
// every attempt on it is reported as not accepted.
type RelayClient struct {
	emailBaseURL     string
	messagingBaseURL string
	apiKey           string
	httpClient       *http.Client
	logger           *slog.Logger
}

// NewRelayClient creates a relay client for the configured channel endpoints.
func NewRelayClient(emailBaseURL, messagingBaseURL, apiKey string, logger *slog.Logger) *RelayClient {
	if emailBaseURL == "" {
		logger.Warn("email relay is not configured, email delivery disabled")
	}
	if messagingBaseURL == "" {
		logger.Warn("messaging relay is not configured, messaging delivery disabled")
	}

	return &RelayClient{
		emailBaseURL:     emailBaseURL,
		messagingBaseURL: messagingBaseURL,
		apiKey:           apiKey,
		httpClient: &http.Client{
			Timeout: relayTimeout,
		},
		logger: logger,
	}
}

// SendEmail attempts delivery of a notification to the user's mailbox.
func (c *RelayClient) SendEmail(ctx context.Context, userID kernel.UUID, subject, body string) ports.ChannelDelivery {
	if c.emailBaseURL == "" {
		return ports.ChannelDelivery{Detail: "email relay not configured"}
	}

	payload := map[string]any{
		"user_id": userID.String(),
		"subject": subject,
		"body":    body,
	}
	return c.post(ctx, "email", c.emailBaseURL+"/v1/emails", payload)
}

// SendMessage attempts delivery of a notification to the user's messaging account.
func (c *RelayClient) SendMessage(ctx context.Context, userID kernel.UUID, text string) ports.ChannelDelivery {
	if c.messagingBaseURL == "" {
		return ports.ChannelDelivery{Detail: "messaging relay not configured"}
	}

	payload := map[string]any{
		"user_id": userID.String(),
		"text":    text,
	}
	return c.post(ctx, "messaging", c.messagingBaseURL+"/v1/messages", payload)
}

// post sends one delivery request and folds every failure mode into a
// non-accepted ChannelDelivery.
func (c *RelayClient) post(ctx context.Context, channel, url string, payload map[string]any) ports.ChannelDelivery {
	log := c.logger.With("channel", channel)

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		log.Error("failed to marshal relay request", "error", err)
		return ports.ChannelDelivery{Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed to build relay request", "error", err)
		return ports.ChannelDelivery{Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("relay request failed", "error", err)
		return ports.ChannelDelivery{Detail: err.Error()}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read relay response", "error", err)
		return ports.ChannelDelivery{Detail: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn("relay rejected delivery",
			"status", resp.StatusCode,
			"response", string(bodyBytes),
		)
		return ports.ChannelDelivery{Detail: fmt.Sprintf("relay returned %d", resp.StatusCode)}
	}

	return ports.ChannelDelivery{Accepted: true, Detail: "delivered"}
}
