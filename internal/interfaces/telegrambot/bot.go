package telegrambot

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
	crerr "github.com/cockroachdb/errors"
	tele "gopkg.in/telebot.v4"
)

const commandTimeout = 15 * time.Second

type Config struct {
	Token       string
	PollTimeout time.Duration
}

// Bot long-polls Telegram and answers commands through a Dispatcher.
type Bot struct {
	bot        *tele.Bot
	dispatcher *Dispatcher
	logger     *logging.Logger

	mu     sync.RWMutex
	runCtx context.Context
}

func New(cfg Config, dispatcher *Dispatcher, logger *logging.Logger) (*Bot, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, crerr.New("telegram token is empty")
	}
	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	b := &Bot{dispatcher: dispatcher, logger: logger, runCtx: context.Background()}
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: timeout},
		OnError: func(err error, c tele.Context) {
			logger.Error("telegram update failed", "error", err)
		},
	})
	if err != nil {
		return nil, crerr.Wrap(err, "create telegram bot")
	}
	b.bot = bot
	b.bot.Handle(tele.OnText, b.onText)
	return b, nil
}

// Run polls until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.mu.Lock()
	b.runCtx = ctx
	b.mu.Unlock()

	if err := b.bot.SetCommands(commandMenu()); err != nil {
		b.logger.WarnContext(ctx, "set telegram command menu failed", "error", err)
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		b.bot.Stop()
	}()

	b.logger.InfoContext(ctx, "telegram polling started", "bot", b.bot.Me.Username)
	b.bot.Start()
	<-stopped
	b.logger.Info("telegram polling stopped")
	return nil
}

// SendText posts text to a chat. It satisfies Sender for announcements.
func (b *Bot) SendText(_ context.Context, chatID int64, text string) error {
	if _, err := b.bot.Send(tele.ChatID(chatID), text); err != nil {
		return crerr.Wrapf(err, "send to chat %d", chatID)
	}
	return nil
}

func (b *Bot) onText(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	b.mu.RLock()
	parent := b.runCtx
	b.mu.RUnlock()
	ctx, cancel := context.WithTimeout(parent, commandTimeout)
	defer cancel()

	reply, ok := b.dispatcher.Handle(ctx, Message{
		UserID:   strconv.FormatInt(sender.ID, 10),
		Username: senderName(sender),
		Text:     c.Text(),
	})
	if !ok {
		return nil
	}
	return c.Reply(reply)
}

func senderName(u *tele.User) string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func commandMenu() []tele.Command {
	items := usecase.Commands(0)
	out := make([]tele.Command, 0, len(items))
	for _, item := range items {
		out = append(out, tele.Command{Text: item.Name, Description: item.Description})
	}
	return out
}
