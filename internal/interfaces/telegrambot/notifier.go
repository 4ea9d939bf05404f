package telegrambot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

// Sender posts a message to one chat.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// ChatNotifier fans an announcement out to every configured chat.
type ChatNotifier struct {
	sender  Sender
	chatIDs []int64
	workers int
	logger  *logging.Logger
}

func NewChatNotifier(sender Sender, chatIDs []int64, workers int, logger *logging.Logger) *ChatNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &ChatNotifier{
		sender:  sender,
		chatIDs: append([]int64(nil), chatIDs...),
		workers: workers,
		logger:  logger,
	}
}

// Notify fails only when no chat received the message, so a retry does
// not repeat the post in chats that already have it.
func (n *ChatNotifier) Notify(ctx context.Context, message string) error {
	if len(n.chatIDs) == 0 {
		return nil
	}

	workerCount := min(n.workers, len(n.chatIDs))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return fmt.Errorf("create notify pool: %w", err)
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, chatID := range n.chatIDs {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := n.sender.SendText(ctx, chatID, message); err != nil {
				record(fmt.Errorf("chat %d: %w", chatID, err))
			}
		}); err != nil {
			wg.Done()
			record(fmt.Errorf("chat %d: submit: %w", chatID, err))
		}
	}
	wg.Wait()

	if len(errs) == 0 {
		return nil
	}
	joined := errors.Join(errs...)
	if len(errs) == len(n.chatIDs) {
		return joined
	}
	n.logger.WarnContext(ctx, "announcement partially delivered",
		"failed", len(errs),
		"total", len(n.chatIDs),
		"error", joined,
	)
	return nil
}

// LogNotifier writes announcements to the log when no chat transport is
// configured.
type LogNotifier struct {
	logger *logging.Logger
}

func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, message string) error {
	n.logger.InfoContext(ctx, "announcement", "message", message)
	return nil
}
