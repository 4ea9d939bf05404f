package user

import (
	"fmt"
	"strings"
)

// Principal identifies the caller of a command.
type Principal struct {
	ID       string
	Username string
}

func (p Principal) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}

// DisplayName falls back to the id when no username is known.
func (p Principal) DisplayName() string {
	if name := strings.TrimSpace(p.Username); name != "" {
		return name
	}
	return p.ID
}
