package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramNotifier implements Notifier via the Telegram Bot API
// sendMessage call.
type TelegramNotifier struct {
	token   string
	chatID  string
	apiBase string
	client  *http.Client
	limiter *RateLimiter
}

// TelegramOption configures a TelegramNotifier.
type TelegramOption func(*TelegramNotifier)

// WithAPIBase overrides the default Bot API base URL (used in tests).
func WithAPIBase(base string) TelegramOption {
	return func(t *TelegramNotifier) {
		t.apiBase = base
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) TelegramOption {
	return func(t *TelegramNotifier) {
		t.client = c
	}
}

// WithRateLimiter injects an outbound message rate limiter. When set,
// every Send() call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) TelegramOption {
	return func(t *TelegramNotifier) {
		t.limiter = r
	}
}

// NewTelegramNotifier creates a notifier posting to the given bot token
// and chat.
func NewTelegramNotifier(token, chatID string, opts ...TelegramOption) *TelegramNotifier {
	t := &TelegramNotifier{
		token:   token,
		chatID:  chatID,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// sendMessageRequest is the Bot API sendMessage JSON body.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
}

// sendPhotoRequest is the Bot API sendPhoto JSON body; the listing text
// rides along as the photo caption.
type sendPhotoRequest struct {
	ChatID  string `json:"chat_id"`
	Photo   string `json:"photo"`
	Caption string `json:"caption"`
}

// apiResponse is the Bot API envelope; Description explains failures.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Send delivers the message and reports an error unless the API confirmed
// delivery. Messages carrying an image URL go out as a photo with the
// rendered text as caption; everything else as a plain text message.
func (t *TelegramNotifier) Send(ctx context.Context, msg Message) error {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("notify rate limit: %w", err)
		}
	}

	method := "sendMessage"
	var payload any = sendMessageRequest{
		ChatID:                t.chatID,
		Text:                  msg.Render(),
		DisableWebPagePreview: true,
	}
	if msg.ImageURL != "" {
		method = "sendPhoto"
		payload = sendPhotoRequest{
			ChatID:  t.chatID,
			Photo:   msg.ImageURL,
			Caption: msg.Render(),
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", t.apiBase, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return errors.New("telegram rate limited (429)")
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			return fmt.Errorf("telegram returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("telegram returned %d: %s", resp.StatusCode, respBody)
	}

	var apiResp apiResponse
	if readErr == nil && json.Unmarshal(respBody, &apiResp) == nil && !apiResp.OK {
		return fmt.Errorf("telegram rejected message: %s", apiResp.Description)
	}

	return nil
}
