package telegram

// Delivery of rendered charts to a Telegram chat
// Every send goes through a rate limiter and a circuit breaker,
// Telegram 429/5xx answers are retried with backoff

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"chart-render/internal/config"
	"chart-render/internal/infra/log"
	"chart-render/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxCaptionLength is the Telegram limit for photo captions.
const maxCaptionLength = 1024

// Sender is the part of tgbotapi.BotAPI used for delivery.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Client struct {
	sender         Sender
	chatID         int64
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retry          retry.Options
}

// NewBot authorizes the bot token against the API endpoint.
func NewBot(cfg config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, cfg.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	log.LogDebug("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return bot, nil
}

// NewClient wraps sender for the configured chat.
func NewClient(sender Sender, cfg config.TelegramConfig) (*Client, error) {
	chatID, err := parseChatID(cfg.ChatID)
	if err != nil {
		return nil, err
	}

	// Telegram allows about one message per second to the same chat
	rateLimiter := rate.NewLimiter(rate.Limit(1), 1)

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TelegramAPI",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		sender:         sender,
		chatID:         chatID,
		rateLimiter:    rateLimiter,
		circuitBreaker: circuitBreaker,
		retry: retry.Options{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
		},
	}, nil
}

func parseChatID(raw string) (int64, error) {
	chatID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", raw, err)
	}
	return chatID, nil
}

// SendChart uploads the PNG at path as a photo with the given caption.
func (c *Client) SendChart(ctx context.Context, path, caption string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("chart file is not readable: %w", err)
	}

	photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FilePath(path))
	photo.Caption = truncateCaption(caption)

	start := time.Now()
	attempts := 0
	err := retry.Do(ctx, c.retry, func() error {
		attempts++
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			msg, err := c.sender.Send(photo)
			if err != nil {
				return nil, toAPIError(err)
			}
			return msg, nil
		})
		if err != nil {
			log.LogDebug("Telegram send attempt failed", zap.Int("attempt", attempts), zap.Error(err))
		}
		return err
	})
	if err != nil {
		log.LogError("Failed to send chart to Telegram",
			zap.Int64("chat_id", c.chatID),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return fmt.Errorf("failed to send chart to telegram: %w", err)
	}

	log.LogSuccess("Chart sent to Telegram",
		zap.Int64("chat_id", c.chatID),
		zap.Int("attempts", attempts),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// toAPIError maps Telegram API failures onto retry.APIError so 429/5xx get retried.
func toAPIError(err error) error {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return apiError(*tgErr)
	}
	var tgVal tgbotapi.Error
	if errors.As(err, &tgVal) {
		return apiError(tgVal)
	}
	return err
}

func apiError(e tgbotapi.Error) error {
	return &retry.APIError{
		StatusCode: e.Code,
		Message:    e.Message,
		RetryAfter: time.Duration(e.RetryAfter) * time.Second,
	}
}

func truncateCaption(caption string) string {
	runes := []rune(caption)
	if len(runes) <= maxCaptionLength {
		return caption
	}
	return string(runes[:maxCaptionLength-1]) + "…"
}
