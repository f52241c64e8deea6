package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/barbearia-digital/booking-ledger/internal/config"
)

// Sender delivers one text message to a WhatsApp number
type Sender interface {
	Send(ctx context.Context, number string, text string) error
}

// FormatNumber strips formatting characters and prefixes the dial code when
// the number looks local (10 or 11 digits, Brazilian landline or mobile).
// Example: "(11) 99999-9999" with code "55" becomes "5511999999999".
func FormatNumber(number string, countryCode string) string {
	var digits strings.Builder
	for _, r := range number {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()
	if len(cleaned) == 10 || len(cleaned) == 11 {
		return countryCode + cleaned
	}
	return cleaned
}

// HTTPSender sends messages through an Evolution-API-compatible endpoint
type HTTPSender struct {
	apiURL string
	apiKey string
	client *http.Client
	logger *slog.Logger
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// NewSender returns an HTTP sender for the configured provider, or a
// NoopSender when no provider is configured so development environments
// keep working without an account.
func NewSender(logger *slog.Logger, cfg *config.WhatsAppConfig) Sender {
	if cfg.APIURL == "" || cfg.APIKey == "" {
		logger.Warn("WhatsApp provider not configured, outbound messages will be simulated")
		return &NoopSender{logger: logger}
	}
	return &HTTPSender{
		apiURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Send posts the message to the provider's sendText endpoint
func (s *HTTPSender) Send(ctx context.Context, number string, text string) error {
	body, err := json.Marshal(sendTextRequest{Number: number, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal sendText request: %w", err)
	}

	url := fmt.Sprintf("%s/message/sendText/%s", s.apiURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sendText request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call WhatsApp provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var providerErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := "unknown provider error"
		if json.Unmarshal(raw, &providerErr) == nil && providerErr.Error != "" {
			detail = providerErr.Error
		}
		return fmt.Errorf("WhatsApp provider returned status %d: %s", resp.StatusCode, detail)
	}

	s.logger.Debug("WhatsApp message delivered to provider", "number", number)
	return nil
}

// NoopSender logs the message instead of sending it
type NoopSender struct {
	logger *slog.Logger
}

// Send records a simulated delivery and always succeeds
func (s *NoopSender) Send(ctx context.Context, number string, text string) error {
	s.logger.Info("Simulated WhatsApp send", "number", number, "text_length", len(text))
	return nil
}
