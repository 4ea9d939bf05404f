package httpapi

import (
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/score"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
)

type commandDTO struct {
	Name        string `json:"name"`
	Usage       string `json:"usage"`
	Description string `json:"description"`
	AdminOnly   bool   `json:"admin_only"`
}

type weekPhasesDTO struct {
	WeekID    string     `json:"week_id"`
	Phase1    string     `json:"phase1,omitempty"`
	Phase2    string     `json:"phase2,omitempty"`
	Assigned  bool       `json:"assigned"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type scheduleDTO struct {
	WeekID      string        `json:"week_id"`
	Window      string        `json:"window"`
	WindowStart time.Time     `json:"window_start"`
	WindowEnd   time.Time     `json:"window_end"`
	NextAnchor  time.Time     `json:"next_anchor"`
	ActivePhase string        `json:"active_phase,omitempty"`
	Phases      weekPhasesDTO `json:"phases"`
}

type rosterDTO struct {
	UserID    string     `json:"user_id"`
	Username  string     `json:"username,omitempty"`
	Phase     string     `json:"phase"`
	Lead      string     `json:"lead,omitempty"`
	Side1     string     `json:"side1,omitempty"`
	Side2     string     `json:"side2,omitempty"`
	Saved     bool       `json:"saved"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type scoreDTO struct {
	UserID    string     `json:"user_id"`
	Username  string     `json:"username,omitempty"`
	WeekID    string     `json:"week_id"`
	Phase1    int64      `json:"phase1"`
	Phase2    int64      `json:"phase2"`
	Total     int64      `json:"total"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type leaderboardEntryDTO struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Total    int64  `json:"total"`
}

type leaderboardDTO struct {
	WeekID  string                `json:"week_id"`
	Entries []leaderboardEntryDTO `json:"entries"`
}

type setWeekPhasesRequest struct {
	Phase1 string `json:"phase1" validate:"required"`
	Phase2 string `json:"phase2" validate:"required"`
}

type rollRosterRequest struct {
	Phase string `json:"phase"`
	Slot  string `json:"slot" validate:"required,oneof=team lead side1 side2"`
}

type submitScoreRequest struct {
	Phase1 string `json:"phase1" validate:"omitempty,max=32"`
	Phase2 string `json:"phase2" validate:"omitempty,max=32"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func scheduleToDTO(status usecase.WeekStatus) scheduleDTO {
	return scheduleDTO{
		WeekID:      status.WeekID,
		Window:      status.Window.String(),
		WindowStart: status.Start,
		WindowEnd:   status.End,
		NextAnchor:  status.NextAnchor(),
		ActivePhase: status.ActivePhase,
		Phases: weekPhasesDTO{
			WeekID:    status.WeekID,
			Phase1:    status.Assignment.Phase1,
			Phase2:    status.Assignment.Phase2,
			Assigned:  status.Assigned,
			UpdatedAt: optionalTime(status.Assignment.UpdatedAt),
		},
	}
}

func rosterToDTO(item roster.Roster, saved bool) rosterDTO {
	return rosterDTO{
		UserID:    item.UserID,
		Username:  item.Username,
		Phase:     item.Phase,
		Lead:      item.Lead,
		Side1:     item.Side1,
		Side2:     item.Side2,
		Saved:     saved,
		UpdatedAt: optionalTime(item.UpdatedAt),
	}
}

func scoreToDTO(item score.Entry) scoreDTO {
	return scoreDTO{
		UserID:    item.UserID,
		Username:  item.Username,
		WeekID:    item.WeekID,
		Phase1:    item.Phase1,
		Phase2:    item.Phase2,
		Total:     item.Total,
		UpdatedAt: optionalTime(item.UpdatedAt),
	}
}

func leaderboardToDTO(board usecase.Leaderboard) leaderboardDTO {
	entries := make([]leaderboardEntryDTO, 0, len(board.Entries))
	for i, item := range board.Entries {
		entries = append(entries, leaderboardEntryDTO{
			Rank:     i + 1,
			UserID:   item.UserID,
			Username: item.Username,
			Total:    item.Total,
		})
	}
	return leaderboardDTO{WeekID: board.WeekID, Entries: entries}
}
