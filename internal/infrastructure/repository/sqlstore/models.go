package sqlstore

import "time"

type rosterTableModel struct {
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	PhaseKey  string    `db:"phase_key"`
	Phase     string    `db:"phase"`
	Lead      string    `db:"lead"`
	Side1     string    `db:"side1"`
	Side2     string    `db:"side2"`
	UpdatedAt time.Time `db:"updated_at"`
}

type cooldownTableModel struct {
	UserID     string    `db:"user_id"`
	Bucket     string    `db:"bucket"`
	LastUsedAt time.Time `db:"last_used_at"`
}

type assignmentTableModel struct {
	WeekID    string    `db:"week_id"`
	Phase1    string    `db:"phase1"`
	Phase2    string    `db:"phase2"`
	UpdatedAt time.Time `db:"updated_at"`
}

type scoreTableModel struct {
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	WeekID    string    `db:"week_id"`
	Phase1    int64     `db:"phase1"`
	Phase2    int64     `db:"phase2"`
	Total     int64     `db:"total"`
	UpdatedAt time.Time `db:"updated_at"`
}
