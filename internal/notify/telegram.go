package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fixmate/repair-backend/internal/config"
	"github.com/fixmate/repair-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotLinked     = errors.New("user has no linked telegram chat")
	ErrNotConfigured = errors.New("telegram bot token not configured")
)

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// TelegramNotifier sends messages through the Telegram Bot API.
type TelegramNotifier struct {
	db       *gorm.DB
	apiURL   string
	botToken string
	client   *http.Client
}

func NewTelegramNotifier(db *gorm.DB, cfg *config.Config) *TelegramNotifier {
	return &TelegramNotifier{
		db:       db,
		apiURL:   cfg.TelegramAPIURL,
		botToken: cfg.TelegramBotToken,
		client:   &http.Client{Timeout: cfg.TelegramTimeout},
	}
}

// Notify resolves the user's chat id and posts a sendMessage call.
// Every failure mode (unmapped user, transport error, not-ok answer)
// comes back as an error for the caller to downgrade.
func (n *TelegramNotifier) Notify(ctx context.Context, userID uuid.UUID, text string) error {
	if n.botToken == "" {
		return ErrNotConfigured
	}

	var link models.TelegramLink
	if err := n.db.Where("user_id = ?", userID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotLinked
		}
		return fmt.Errorf("telegram link lookup: %w", err)
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: link.ChatID, Text: text})
	if err != nil {
		return fmt.Errorf("marshal sendMessage: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram api call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read telegram response: %w", err)
	}

	var result sendMessageResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode telegram response (status %d): %w", resp.StatusCode, err)
	}
	if !result.OK {
		return fmt.Errorf("telegram rejected message: %s", result.Description)
	}
	return nil
}
