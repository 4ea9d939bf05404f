package telegrambot

import (
	"fmt"
	"strings"

	"github.com/MachuPishtuu/gq-roulette-bot/internal/usecase"
)

// parseCommand splits "/name@bot args" into a lower-case name and the
// trimmed argument text. ok is false for non-command text.
func parseCommand(text string) (name, args string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text[1:], " ")
	head, _, _ = strings.Cut(head, "@")
	head = strings.ToLower(strings.TrimSpace(head))
	if head == "" {
		return "", "", false
	}
	return head, strings.TrimSpace(rest), true
}

// parseSetPhases accepts "p1 | p2 [| week]". Without separators it falls
// back to whitespace fields, which only works for single-word names.
func parseSetPhases(args string) (phase1, phase2, week string, err error) {
	var parts []string
	if strings.Contains(args, "|") {
		for _, part := range strings.Split(args, "|") {
			parts = append(parts, strings.TrimSpace(part))
		}
	} else {
		parts = strings.Fields(args)
	}

	if len(parts) < 2 || len(parts) > 3 {
		return "", "", "", fmt.Errorf("%w: usage /setphases <phase1> | <phase2> [| YYYY-MM-DD]", usecase.ErrInvalidInput)
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("%w: both phase names are required", usecase.ErrInvalidInput)
	}
	if len(parts) == 3 {
		week = parts[2]
	}
	return parts[0], parts[1], week, nil
}

// parseSubmit maps the submit command family onto score input.
func parseSubmit(name, args string) (usecase.SubmitScoreInput, error) {
	fields := strings.Fields(args)
	switch name {
	case "submit":
		if len(fields) != 2 {
			return usecase.SubmitScoreInput{}, fmt.Errorf("%w: usage /submit <phase1> <phase2>", usecase.ErrInvalidInput)
		}
		return usecase.SubmitScoreInput{Phase1: fields[0], Phase2: fields[1]}, nil
	case "submit1":
		if len(fields) != 1 {
			return usecase.SubmitScoreInput{}, fmt.Errorf("%w: usage /submit1 <phase1>", usecase.ErrInvalidInput)
		}
		return usecase.SubmitScoreInput{Phase1: fields[0]}, nil
	case "submit2":
		if len(fields) != 1 {
			return usecase.SubmitScoreInput{}, fmt.Errorf("%w: usage /submit2 <phase2>", usecase.ErrInvalidInput)
		}
		return usecase.SubmitScoreInput{Phase2: fields[0]}, nil
	default:
		return usecase.SubmitScoreInput{}, fmt.Errorf("%w: unknown submit command %q", usecase.ErrInvalidInput, name)
	}
}

// rollSlot maps reroll commands to RosterService slot names.
func rollSlot(name string) (string, bool) {
	switch name {
	case "rerollteam":
		return usecase.SlotTeam, true
	case "rerolllead":
		return "lead", true
	case "rerollside1":
		return "side1", true
	case "rerollside2":
		return "side2", true
	default:
		return "", false
	}
}
