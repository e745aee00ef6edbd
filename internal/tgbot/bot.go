package tgbot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/goserg/storeserver/internal/config"
	"github.com/goserg/storeserver/internal/service"
)

// Bot forwards store events to a Telegram chat. It only announces, it does
// not take commands.
type Bot struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	events <-chan service.Notification
	log    *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc
}

func New(cfg config.Config, events <-chan service.Notification, log *logrus.Logger) (Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TgBot.TelegramApiToken)
	if err != nil {
		return Bot{}, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}

	bot.Debug = cfg.Server.Debug
	_, err = bot.GetMe()
	if err != nil {
		return Bot{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return Bot{
		bot:    bot,
		chatID: cfg.TgBot.ChatID,
		events: events,
		log:    log.WithField("name", "tg_bot"),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Run consumes notifications until Stop is called. Delivery failures are
// logged and the loop keeps going.
func (b *Bot) Run() {
	for {
		select {
		case <-b.ctx.Done():
			return
		case event := <-b.events:
			b.announce(event)
		}
	}
}

func (b *Bot) announce(event service.Notification) {
	msg := tgbotapi.NewMessage(b.chatID, event.Text)
	_, err := b.bot.Send(msg)
	if err != nil {
		b.log.WithError(err).WithField("event", event.Event).Error("can't send notification")
		return
	}
	b.log.WithField("event", event.Event).WithField("store", event.StoreName).Info("notification sent")
}

func (b *Bot) Stop() {
	b.cancel()
}
