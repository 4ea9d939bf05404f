package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/score"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/user"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
)

const defaultLeaderboardLimit = 10

// SubmitScoreInput holds raw score text; blank fields are left unchanged.
type SubmitScoreInput struct {
	Phase1 string
	Phase2 string
}

type Leaderboard struct {
	WeekID  string
	Entries []score.Entry
}

type ScoreService struct {
	scores    score.Repository
	calc      *schedule.Calculator
	minDigits int
	limit     int
	logger    *logging.Logger
	now       func() time.Time
}

func NewScoreService(
	scores score.Repository,
	calc *schedule.Calculator,
	minDigits int,
	leaderboardLimit int,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	if minDigits <= 0 {
		minDigits = score.DefaultMinDigits
	}
	if leaderboardLimit <= 0 {
		leaderboardLimit = defaultLeaderboardLimit
	}
	return &ScoreService{
		scores:    scores,
		calc:      calc,
		minDigits: minDigits,
		limit:     leaderboardLimit,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ScoreService) MinDigits() int {
	return s.minDigits
}

func (s *ScoreService) CurrentWeekID() string {
	return s.calc.Resolve(s.now()).WeekID
}

// Submit records a full or partial score for the current week. The stored
// total is recomputed from both phases on every write.
func (s *ScoreService) Submit(ctx context.Context, actor user.Principal, input SubmitScoreInput) (score.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Submit")
	defer span.End()

	if err := actor.Validate(); err != nil {
		return score.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	update, err := s.parseUpdate(input)
	if err != nil {
		return score.Entry{}, err
	}

	weekID := s.CurrentWeekID()
	var applyErr error
	stored, err := s.scores.Mutate(ctx, actor.ID, weekID, func(current score.Entry, _ bool) (score.Entry, error) {
		next, err := update.Apply(current)
		if err != nil {
			applyErr = fmt.Errorf("%w: %v", ErrInvalidScoreFormat, err)
			return score.Entry{}, applyErr
		}
		next.UserID = actor.ID
		next.Username = actor.DisplayName()
		next.WeekID = weekID
		next.UpdatedAt = s.now().UTC()
		return next, nil
	})
	if err != nil {
		if applyErr != nil {
			return score.Entry{}, applyErr
		}
		return score.Entry{}, storageError("save score", err)
	}

	s.logger.InfoContext(ctx, "score submitted",
		"user_id", actor.ID,
		"week_id", weekID,
		"phase1", stored.Phase1,
		"phase2", stored.Phase2,
		"total", stored.Total,
	)
	return stored, nil
}

func (s *ScoreService) MyScore(ctx context.Context, actor user.Principal) (score.Entry, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.MyScore")
	defer span.End()

	if err := actor.Validate(); err != nil {
		return score.Entry{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	weekID := s.CurrentWeekID()
	item, exists, err := s.scores.Get(ctx, actor.ID, weekID)
	if err != nil {
		return score.Entry{}, false, storageError("get score", err)
	}
	if !exists {
		return score.Entry{UserID: actor.ID, Username: actor.DisplayName(), WeekID: weekID}, false, nil
	}
	return item, true, nil
}

// Leaderboard lists the current week's top totals.
func (s *ScoreService) Leaderboard(ctx context.Context) (Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Leaderboard")
	defer span.End()

	weekID := s.CurrentWeekID()
	items, err := s.scores.ListByWeek(ctx, weekID, s.limit)
	if err != nil {
		return Leaderboard{}, storageError("list scores", err)
	}

	items = append([]score.Entry(nil), items...)
	score.SortLeaderboard(items)
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	return Leaderboard{WeekID: weekID, Entries: items}, nil
}

func (s *ScoreService) parseUpdate(input SubmitScoreInput) (score.Update, error) {
	var update score.Update
	if raw := strings.TrimSpace(input.Phase1); raw != "" {
		v, err := s.parse("phase1", raw)
		if err != nil {
			return score.Update{}, err
		}
		update.Phase1 = &v
	}
	if raw := strings.TrimSpace(input.Phase2); raw != "" {
		v, err := s.parse("phase2", raw)
		if err != nil {
			return score.Update{}, err
		}
		update.Phase2 = &v
	}
	if update.IsEmpty() {
		return score.Update{}, fmt.Errorf("%w: at least one phase score is required", ErrInvalidInput)
	}
	return update, nil
}

func (s *ScoreService) parse(field, raw string) (int64, error) {
	v, err := score.ParseScore(raw, s.minDigits)
	if err != nil {
		if errors.Is(err, score.ErrInvalidFormat) {
			return 0, fmt.Errorf("%w: %s must be numeric with at least %d digits", ErrInvalidScoreFormat, field, s.minDigits)
		}
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return v, nil
}
