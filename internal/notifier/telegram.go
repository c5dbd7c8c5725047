package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultAPIBase is the Telegram Bot API endpoint.
const DefaultAPIBase = "https://api.telegram.org"

// Notifier delivers a text alert.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// NopNotifier drops every message; used when Telegram is not configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) error { return nil }

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	APIBase  string
	Client   *http.Client
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
	Logger  *zap.Logger
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string, logger *zap.Logger) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		APIBase:  DefaultAPIBase,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Backoff: time.Second,
		Logger:  logger.Named("telegram"),
	}
}

func (t *TelegramNotifier) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.APIBase, t.BotToken, method)
}

// Send sends a message to the configured chat.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(ctx, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == maxRetries {
			break
		}
		backoff := t.Backoff * time.Duration(1<<uint(i))
		t.Logger.Warn("telegram send failed",
			zap.Int("attempt", i+1), zap.Int("of", maxRetries+1),
			zap.Duration("retry_in", backoff), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// Notify implements Notifier with three retries.
func (t *TelegramNotifier) Notify(ctx context.Context, text string) error {
	return t.SendWithRetry(ctx, text, 3)
}
