package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type matchTableModel struct {
	ID           string    `db:"id"`
	HomeTeamID   string    `db:"home_team_id"`
	HomeTeamName string    `db:"home_team_name"`
	AwayTeamID   string    `db:"away_team_id"`
	AwayTeamName string    `db:"away_team_name"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// lineupSlotTableModel is one row of match_lineup_slots joined with players.
type lineupSlotTableModel struct {
	MatchID            string          `db:"match_id"`
	Side               string          `db:"side"`
	Pool               string          `db:"pool"`
	X                  sql.NullFloat64 `db:"x"`
	Y                  sql.NullFloat64 `db:"y"`
	BenchIndex         int             `db:"bench_index"`
	Captain            bool            `db:"captain"`
	PlayerID           string          `db:"player_id"`
	SquadNumber        int             `db:"squad_number"`
	Name               string          `db:"name"`
	Position           string          `db:"position"`
	Goals              int             `db:"goals"`
	Assists            int             `db:"assists"`
	Minutes            int             `db:"minutes"`
	PreferredPositions pq.StringArray  `db:"preferred_positions"`
}
