package usecase

import (
	"strings"
	"testing"
	"time"
)

func TestCommands_QuotesTeamCooldown(t *testing.T) {
	items := Commands(4 * time.Hour)
	if items[0].Name != "rerollteam" {
		t.Fatalf("expected rerollteam first, got %s", items[0].Name)
	}
	if !strings.Contains(items[0].Description, "4 hours") {
		t.Fatalf("expected cooldown in description, got %q", items[0].Description)
	}

	items = Commands(0)
	if strings.Contains(items[0].Description, "Cooldown") {
		t.Fatalf("did not expect cooldown text, got %q", items[0].Description)
	}
}

func TestCommands_OnlySetPhasesIsAdmin(t *testing.T) {
	for _, item := range Commands(time.Hour) {
		if item.AdminOnly != (item.Name == "setphases") {
			t.Fatalf("unexpected admin flag for %s", item.Name)
		}
	}
}

func TestFormatCooldown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: time.Hour, want: "1 hour"},
		{in: 4 * time.Hour, want: "4 hours"},
		{in: 90 * time.Minute, want: "1h30m0s"},
	}
	for _, tt := range tests {
		if got := formatCooldown(tt.in); got != tt.want {
			t.Fatalf("formatCooldown(%s)=%q want=%q", tt.in, got, tt.want)
		}
	}
}
