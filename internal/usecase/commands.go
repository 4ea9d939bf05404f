package usecase

import (
	"fmt"
	"time"
)

// CommandInfo describes one chat command for help output.
type CommandInfo struct {
	Name        string
	Usage       string
	Description string
	AdminOnly   bool
}

// Commands lists the chat command surface. teamCooldown is quoted in the
// rerollteam description when positive.
func Commands(teamCooldown time.Duration) []CommandInfo {
	teamDesc := "Roll a full team (lead, side1, side2) for the phase."
	if teamCooldown > 0 {
		teamDesc = fmt.Sprintf("Roll a full team (lead, side1, side2) for the phase. Cooldown %s.", formatCooldown(teamCooldown))
	}

	return []CommandInfo{
		{Name: "rerollteam", Usage: "/rerollteam [phase]", Description: teamDesc},
		{Name: "rerolllead", Usage: "/rerolllead [phase]", Description: "Reroll only the lead."},
		{Name: "rerollside1", Usage: "/rerollside1 [phase]", Description: "Reroll only side 1."},
		{Name: "rerollside2", Usage: "/rerollside2 [phase]", Description: "Reroll only side 2."},
		{Name: "myteam", Usage: "/myteam [phase]", Description: "Show your saved team for the phase."},
		{Name: "phases", Usage: "/phases", Description: "List every phase in the catalog."},
		{Name: "week", Usage: "/week", Description: "Show this week's schedule and assigned phases."},
		{Name: "setphases", Usage: "/setphases <phase1> | <phase2> [| YYYY-MM-DD]", Description: "Assign the week's phases.", AdminOnly: true},
		{Name: "submit", Usage: "/submit <phase1> <phase2>", Description: "Submit both phase scores for this week."},
		{Name: "submit1", Usage: "/submit1 <phase1>", Description: "Submit only the phase 1 score."},
		{Name: "submit2", Usage: "/submit2 <phase2>", Description: "Submit only the phase 2 score."},
		{Name: "myscore", Usage: "/myscore", Description: "Show your scores for this week."},
		{Name: "leaderboard", Usage: "/leaderboard", Description: "Show this week's top totals."},
		{Name: "help", Usage: "/help", Description: "Show this message."},
	}
}

// formatCooldown renders whole hours as "4 hours" and anything else as a
// rounded duration.
func formatCooldown(d time.Duration) string {
	if d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.Round(time.Second).String()
}
