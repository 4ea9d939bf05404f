// Package telegrambot exposes the roulette commands over Telegram.
package telegrambot

import (
	"context"
	"errors"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/cooldown"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/user"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
)

const rateLimitedReply = "Slow down a little, then try again."

// Message is an incoming chat command stripped of transport details.
type Message struct {
	UserID   string
	Username string
	Text     string
}

// Dispatcher routes command text to the usecase services and renders the
// reply. It holds no transport state so it can be driven from tests.
type Dispatcher struct {
	phases  *usecase.PhaseService
	rosters *usecase.RosterService
	scores  *usecase.ScoreService
	limiter *userLimiter
	logger  *logging.Logger
}

func NewDispatcher(
	phases *usecase.PhaseService,
	rosters *usecase.RosterService,
	scores *usecase.ScoreService,
	commandRate float64,
	commandBurst int,
	logger *logging.Logger,
) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		phases:  phases,
		rosters: rosters,
		scores:  scores,
		limiter: newUserLimiter(commandRate, commandBurst),
		logger:  logger,
	}
}

// Handle returns the reply for msg. ok is false when the text is not a
// command this bot knows.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) (reply string, ok bool) {
	name, args, isCommand := parseCommand(msg.Text)
	if !isCommand || !d.knows(name) {
		return "", false
	}
	if !d.limiter.Allow(msg.UserID) {
		return rateLimitedReply, true
	}

	actor := user.Principal{ID: msg.UserID, Username: msg.Username}
	reply, err := d.dispatch(ctx, actor, name, args)
	if err != nil {
		d.logFailure(ctx, actor, name, err)
		return renderError(err), true
	}
	return reply, true
}

func (d *Dispatcher) knows(name string) bool {
	if _, ok := rollSlot(name); ok {
		return true
	}
	switch name {
	case "myteam", "phases", "week", "setphases", "submit", "submit1", "submit2",
		"myscore", "leaderboard", "help", "gqhelp", "start":
		return true
	default:
		return false
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, actor user.Principal, name, args string) (string, error) {
	if slot, ok := rollSlot(name); ok {
		item, err := d.rosters.Roll(ctx, actor, args, slot)
		if err != nil {
			return "", err
		}
		return renderRoster("Your team", item), nil
	}

	switch name {
	case "myteam":
		item, exists, err := d.rosters.Current(ctx, actor, args)
		if err != nil {
			return "", err
		}
		if !exists {
			return "You have no team for " + item.Phase + " yet. Try /rerollteam " + item.Phase + ".", nil
		}
		return renderRoster("Your team", item), nil

	case "phases":
		return renderPhases(d.phases.ListPhases(ctx)), nil

	case "week":
		status, err := d.phases.Current(ctx)
		if err != nil {
			return "", err
		}
		return renderWeek(status), nil

	case "setphases":
		p1, p2, week, err := parseSetPhases(args)
		if err != nil {
			return "", err
		}
		item, err := d.phases.SetWeekPhases(ctx, actor, week, p1, p2)
		if err != nil {
			return "", err
		}
		return "Week " + item.WeekID + " set: Phase 1 " + item.Phase1 + ", Phase 2 " + item.Phase2 + ".", nil

	case "submit", "submit1", "submit2":
		input, err := parseSubmit(name, args)
		if err != nil {
			return "", err
		}
		item, err := d.scores.Submit(ctx, actor, input)
		if err != nil {
			return "", err
		}
		return "Saved.\n" + renderScore(item, true), nil

	case "myscore":
		item, exists, err := d.scores.MyScore(ctx, actor)
		if err != nil {
			return "", err
		}
		return renderScore(item, exists), nil

	case "leaderboard":
		board, err := d.scores.Leaderboard(ctx)
		if err != nil {
			return "", err
		}
		return renderLeaderboard(board), nil

	default:
		return renderHelp(usecase.Commands(d.rosters.CooldownPeriod(cooldown.BucketTeam)), d.phases.IsAdmin(actor.ID)), nil
	}
}

func (d *Dispatcher) logFailure(ctx context.Context, actor user.Principal, command string, err error) {
	if isUserError(err) {
		d.logger.DebugContext(ctx, "telegram command rejected", "user_id", actor.ID, "command", command, "error", err)
		return
	}
	d.logger.ErrorContext(ctx, "telegram command failed", "user_id", actor.ID, "command", command, "error", err)
}

func isUserError(err error) bool {
	for _, target := range []error{
		usecase.ErrInvalidInput,
		usecase.ErrInvalidScoreFormat,
		usecase.ErrUnknownPhase,
		usecase.ErrNoActiveWindow,
		usecase.ErrPoolExhausted,
		usecase.ErrCooldownActive,
		usecase.ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
