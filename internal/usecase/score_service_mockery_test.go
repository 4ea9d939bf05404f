package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/score"
	scoremock "github.com/MachuPishtuu/gq-roulette-bot/internal/mocks/domain/score"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestScoreService_Submit_MergesStoredEntryUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := scoremock.NewRepository(t)
	service := NewScoreService(repo, testCalculator(t), 9, 10, logging.NewNop())
	service.now = func() time.Time { return testAnchor.Add(time.Hour) }

	stored := score.Entry{UserID: testActor.ID, WeekID: "2026-03-02", Phase1: 500000000, Phase2: 200000000, Total: 700000000}
	var written score.Entry
	repo.
		On("Mutate", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), testActor.ID, "2026-03-02", mock.Anything).
		Return(func(_ context.Context, _ string, _ string, fn score.MutateFunc) (score.Entry, error) {
			next, err := fn(stored, true)
			written = next
			return next, err
		}).
		Once()

	got, err := service.Submit(ctx, testActor, SubmitScoreInput{Phase2: "300000000"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if written.Phase1 != 500000000 || written.Phase2 != 300000000 || written.Total != 800000000 {
		t.Fatalf("unexpected written entry: %+v", written)
	}
	if got.Username != "ana" {
		t.Fatalf("expected username to be refreshed, got %q", got.Username)
	}
}

func TestScoreService_Leaderboard_StorageFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := scoremock.NewRepository(t)
	service := NewScoreService(repo, testCalculator(t), 9, 10, logging.NewNop())
	service.now = func() time.Time { return testAnchor.Add(time.Hour) }

	repo.
		On("ListByWeek", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "2026-03-02", 10).
		Return(nil, errors.New("timeout")).
		Once()

	if _, err := service.Leaderboard(ctx); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
