package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jobscraper/internal/errors"
	"jobscraper/internal/models"
)

// sender is the part of *tgbotapi.BotAPI the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    sender
	chatID int64
	// pause between postings keeps a burst under Telegram's rate limit
	pause time.Duration
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init telegram bot")
	}
	return &Bot{
		api:    api,
		chatID: chatID,
		pause:  time.Second,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// escapeURL escapes the two characters MarkdownV2 reserves inside link targets.
func escapeURL(u string) string {
	return strings.NewReplacer(`\`, `\\`, ")", `\)`).Replace(u)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// FormatPosting renders one posting as a MarkdownV2 message.
func FormatPosting(p models.JobPosting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 *%s*\n", escapeMarkdown(p.Title))
	fmt.Fprintf(&b, "🏢 %s\n", escapeMarkdown(p.Company))
	fmt.Fprintf(&b, "📍 %s\n", escapeMarkdown(orNA(p.Location)))
	fmt.Fprintf(&b, "💰 %s\n", escapeMarkdown(orNA(p.Salary)))
	fmt.Fprintf(&b, "📅 %s\n", escapeMarkdown(p.PostedDate))
	fmt.Fprintf(&b, "🔖 Source: %s\n", escapeMarkdown(p.Source))
	if p.URL != "" {
		fmt.Fprintf(&b, "🔗 [View Job](%s)\n", escapeURL(p.URL))
	}
	return b.String()
}

func (b *Bot) SendPosting(p models.JobPosting) error {
	msg := tgbotapi.NewMessage(b.chatID, FormatPosting(p))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	if p.URL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", p.URL)),
		)
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}

// Name identifies the bot as a pipeline sink.
func (b *Bot) Name() string { return "telegram" }

// Publish sends one message per posting followed by a summary line. It stops
// at the first failed send.
func (b *Bot) Publish(ctx context.Context, postings []models.JobPosting) error {
	for _, p := range postings {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.SendPosting(p); err != nil {
			return errors.Wrapf(err, "send %q", p.Title)
		}
		if b.pause > 0 {
			select {
			case <-time.After(b.pause):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return b.SendStatus(fmt.Sprintf("%d new jobs admitted", len(postings)))
}
