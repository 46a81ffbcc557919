package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/pkg/config"
)

// Message is the payload accepted by the mail relay.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// RelayClient posts messages to an HTTP mail-relay endpoint. Delivery is
// best-effort: callers log and swallow errors, nothing is surfaced to end
// users.
type RelayClient struct {
	relayURL string
	from     string
	client   *http.Client
	logger   *zap.Logger
}

// NewRelayClient builds a relay client from configuration.
func NewRelayClient(cfg config.MailerConfig, logger *zap.Logger) *RelayClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelayClient{
		relayURL: cfg.RelayURL,
		from:     cfg.From,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

// Send posts a single message to the relay. A missing relay URL is treated as
// a configured no-op rather than an error.
func (c *RelayClient) Send(ctx context.Context, msg Message) error {
	if c.relayURL == "" {
		c.logger.Debug("mail relay not configured, dropping message", zap.String("to", msg.To))
		return nil
	}
	if msg.To == "" || msg.Subject == "" {
		return fmt.Errorf("mail message requires to and subject")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.from != "" {
		req.Header.Set("X-Mail-From", c.from)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post mail relay: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay responded %d", resp.StatusCode)
	}
	return nil
}
