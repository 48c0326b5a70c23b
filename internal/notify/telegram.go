package notify

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ictdetect/internal/model"
)

// Telegram pushes confluence alerts to a single chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a notifier bound to one chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// SendConfluenceAlert reports a scored index whose bucket cleared the
// alerting threshold.
func (t *Telegram) SendConfluenceAlert(symbol string, index int, timestamp int64, score model.ConfluenceScore, bucket model.ConfluenceBucket) error {
	when := time.Unix(timestamp, 0).UTC().Format("2006-01-02 15:04")
	text := fmt.Sprintf(
		"%s confluence %s\nCandle #%d (%s UTC)\nLong: %d | Short: %d",
		symbol, bucket, index, when, score.LongScore, score.ShortScore,
	)

	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error().Err(err).Msg("Telegram send failed")
		return fmt.Errorf("send alert: %w", err)
	}
	t.logger.Debug().Str("symbol", symbol).Int("index", index).Msg("Alert sent")
	return nil
}
