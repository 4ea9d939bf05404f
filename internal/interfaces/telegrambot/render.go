package telegrambot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/roster"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/schedule"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/domain/score"
	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const timeLayout = "Mon 02 Jan 15:04 MST"

func renderRoster(title string, item roster.Roster) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = fmt.Fprintf(buf, "%s (%s)\n", title, item.Phase)
	writeSlot(buf, "Lead", item.Lead)
	writeSlot(buf, "Side 1", item.Side1)
	writeSlot(buf, "Side 2", item.Side2)
	return strings.TrimRight(buf.String(), "\n")
}

func writeSlot(buf *bytebufferpool.ByteBuffer, label, unit string) {
	if unit == "" {
		unit = "-"
	}
	_, _ = buf.WriteString(label)
	_, _ = buf.WriteString(": ")
	_, _ = buf.WriteString(unit)
	_ = buf.WriteByte('\n')
}

func renderPhases(names []string) string {
	if len(names) == 0 {
		return "No phases are loaded."
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Phases:\n")
	for _, name := range names {
		_, _ = buf.WriteString("- ")
		_, _ = buf.WriteString(name)
		_ = buf.WriteByte('\n')
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderWeek(status usecase.WeekStatus) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = fmt.Fprintf(buf, "Week %s\n", status.WeekID)
	if status.Assigned {
		_, _ = fmt.Fprintf(buf, "Phase 1: %s\nPhase 2: %s\n", status.Assignment.Phase1, status.Assignment.Phase2)
	} else {
		_, _ = buf.WriteString("Phases are not assigned yet.\n")
	}

	switch status.Window {
	case schedule.WindowPhase1, schedule.WindowPhase2:
		label := "Phase 1"
		if status.Window == schedule.WindowPhase2 {
			label = "Phase 2"
		}
		_, _ = fmt.Fprintf(buf, "Now: %s until %s", label, status.End.Format(timeLayout))
	default:
		_, _ = fmt.Fprintf(buf, "Now: between phases until %s", status.End.Format(timeLayout))
	}
	return buf.String()
}

func renderScore(item score.Entry, saved bool) string {
	if !saved {
		return fmt.Sprintf("No scores submitted for week %s yet.", item.WeekID)
	}
	return fmt.Sprintf("Week %s\nPhase 1: %d\nPhase 2: %d\nTotal: %d", item.WeekID, item.Phase1, item.Phase2, item.Total)
}

func renderLeaderboard(board usecase.Leaderboard) string {
	if len(board.Entries) == 0 {
		return fmt.Sprintf("No scores submitted for week %s yet.", board.WeekID)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = fmt.Fprintf(buf, "Leaderboard, week %s\n", board.WeekID)
	for i, item := range board.Entries {
		_, _ = buf.WriteString(strconv.Itoa(i + 1))
		_, _ = buf.WriteString(". ")
		_, _ = buf.WriteString(item.Username)
		_, _ = buf.WriteString(": ")
		_, _ = buf.WriteString(strconv.FormatInt(item.Total, 10))
		_ = buf.WriteByte('\n')
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderHelp(commands []usecase.CommandInfo, admin bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("GQ roulette commands:\n")
	for _, c := range commands {
		if c.AdminOnly && !admin {
			continue
		}
		_, _ = buf.WriteString(c.Usage)
		_, _ = buf.WriteString(" - ")
		_, _ = buf.WriteString(c.Description)
		_ = buf.WriteByte('\n')
	}
	return strings.TrimRight(buf.String(), "\n")
}

// renderError turns a usecase error into a user-facing reply. Unknown
// errors get a generic message; the caller logs the detail.
func renderError(err error) string {
	var cooldownErr *usecase.CooldownError
	switch {
	case errors.As(err, &cooldownErr):
		return fmt.Sprintf("Cooldown active for %s. Try again in %s.", cooldownErr.Bucket, formatRemaining(cooldownErr.Remaining))
	case errors.Is(err, usecase.ErrUnknownPhase):
		return "Unknown phase. Use /phases to see the list."
	case errors.Is(err, usecase.ErrNoActiveWindow):
		return "No phase is active right now. Name a phase explicitly, e.g. /rerollteam <phase>."
	case errors.Is(err, usecase.ErrPoolExhausted):
		return "Not enough unique options in this phase to roll that."
	case errors.Is(err, usecase.ErrInvalidScoreFormat):
		return "Invalid score: " + userDetail(err, usecase.ErrInvalidScoreFormat)
	case errors.Is(err, usecase.ErrUnauthorized):
		return "Only admins can do that."
	case errors.Is(err, usecase.ErrInvalidInput):
		return "Invalid input: " + userDetail(err, usecase.ErrInvalidInput)
	case errors.Is(err, usecase.ErrStorageUnavailable), errors.Is(err, usecase.ErrDependencyUnavailable):
		return "Storage is unavailable right now. Please try again shortly."
	default:
		return "Something went wrong. Please try again."
	}
}

// userDetail drops everything up to the sentinel text of a wrapped error.
func userDetail(err, sentinel error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, sentinel.Error()+": "); ok {
		return detail
	}
	return msg
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return d.String()
	}
	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
