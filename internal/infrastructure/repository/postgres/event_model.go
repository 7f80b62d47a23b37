package postgres

import "database/sql"

type matchEventTableModel struct {
	ID          string          `db:"id"`
	MatchID     string          `db:"match_id"`
	Category    string          `db:"category"`
	Subcategory string          `db:"subcategory"`
	ActionType  string          `db:"action_type"`
	StartX      sql.NullFloat64 `db:"start_x"`
	StartY      sql.NullFloat64 `db:"start_y"`
	EndX        sql.NullFloat64 `db:"end_x"`
	EndY        sql.NullFloat64 `db:"end_y"`
	TimestampMS int64           `db:"timestamp_ms"`
	Side        sql.NullString  `db:"side"`
	PlayerID    sql.NullString  `db:"player_id"`
}
