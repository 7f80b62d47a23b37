package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/lineup"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"github.com/riskibarqy/tactical-board/internal/infrastructure/repository/memory"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	upsertMatchSQL = `
INSERT INTO matches (id, home_team_id, home_team_name, away_team_id, away_team_name, updated_at)
VALUES (:id, :home_team_id, :home_team_name, :away_team_id, :away_team_name, :updated_at)
ON CONFLICT (id) DO UPDATE
SET home_team_name = EXCLUDED.home_team_name, away_team_name = EXCLUDED.away_team_name, updated_at = EXCLUDED.updated_at`

	upsertPlayerSQL = `
INSERT INTO players (id, team_id, squad_number, name, position, goals, assists, minutes, preferred_positions)
VALUES (:id, :team_id, :squad_number, :name, :position, :goals, :assists, :minutes, :preferred_positions)
ON CONFLICT (id) DO UPDATE
SET squad_number = EXCLUDED.squad_number, name = EXCLUDED.name, position = EXCLUDED.position,
    goals = EXCLUDED.goals, assists = EXCLUDED.assists, minutes = EXCLUDED.minutes, updated_at = NOW()`

	insertSlotSQL = `
INSERT INTO match_lineup_slots (match_id, player_id, side, pool, slot_order, x, y, bench_index, captain)
VALUES (:match_id, :player_id, :side, :pool, :slot_order, :x, :y, :bench_index, :captain)`

	insertEventSQL = `
INSERT INTO match_events (id, match_id, category, subcategory, action_type, start_x, start_y, end_x, end_y, timestamp_ms, side, player_id)
VALUES (:id, :match_id, :category, :subcategory, :action_type, :start_x, :start_y, :end_x, :end_y, :timestamp_ms, :side, :player_id)
ON CONFLICT (match_id, id) DO NOTHING`
)

type seedMatchRow struct {
	ID           string    `db:"id"`
	HomeTeamID   string    `db:"home_team_id"`
	HomeTeamName string    `db:"home_team_name"`
	AwayTeamID   string    `db:"away_team_id"`
	AwayTeamName string    `db:"away_team_name"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type seedPlayerRow struct {
	ID                 string         `db:"id"`
	TeamID             string         `db:"team_id"`
	SquadNumber        int            `db:"squad_number"`
	Name               string         `db:"name"`
	Position           string         `db:"position"`
	Goals              int            `db:"goals"`
	Assists            int            `db:"assists"`
	Minutes            int            `db:"minutes"`
	PreferredPositions pq.StringArray `db:"preferred_positions"`
}

type seedSlotRow struct {
	MatchID    string          `db:"match_id"`
	PlayerID   string          `db:"player_id"`
	Side       string          `db:"side"`
	Pool       string          `db:"pool"`
	SlotOrder  int             `db:"slot_order"`
	X          sql.NullFloat64 `db:"x"`
	Y          sql.NullFloat64 `db:"y"`
	BenchIndex int             `db:"bench_index"`
	Captain    bool            `db:"captain"`
}

type seedEventRow struct {
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
	Side        string          `db:"side"`
	PlayerID    string          `db:"player_id"`
}

// seedDatabase writes the built-in derby fixture so the postgres data source
// serves the same match as the memory one.
func seedDatabase(ctx context.Context, dbURL string) (int, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		return 0, fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	lineups := memory.SeedMatchLineups()
	events := memory.SeedMatchEvents()
	for _, item := range lineups {
		if err := seedLineup(ctx, tx, item); err != nil {
			return 0, err
		}
		for _, e := range events[item.MatchID] {
			if _, err := tx.NamedExecContext(ctx, insertEventSQL, eventRow(item.MatchID, e)); err != nil {
				return 0, fmt.Errorf("insert event %s: %w", e.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}
	return len(lineups), nil
}

func seedLineup(ctx context.Context, tx *sqlx.Tx, item lineup.MatchLineup) error {
	if _, err := tx.NamedExecContext(ctx, upsertMatchSQL, seedMatchRow{
		ID:           item.MatchID,
		HomeTeamID:   item.Home.TeamID,
		HomeTeamName: item.Home.TeamName,
		AwayTeamID:   item.Away.TeamID,
		AwayTeamName: item.Away.TeamName,
		UpdatedAt:    item.UpdatedAt,
	}); err != nil {
		return fmt.Errorf("upsert match %s: %w", item.MatchID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM match_lineup_slots WHERE match_id = $1`, item.MatchID); err != nil {
		return fmt.Errorf("reset lineup slots %s: %w", item.MatchID, err)
	}

	for _, side := range []formation.Side{formation.SideHome, formation.SideAway} {
		sheet := item.Sheet(side)
		for i, st := range sheet.Starters {
			if err := seedSlot(ctx, tx, item.MatchID, sheet.TeamID, side, formation.PoolPitch, i, &r2.Vec{X: st.X, Y: st.Y}, st.Player); err != nil {
				return err
			}
		}
		for i, pl := range sheet.Bench {
			if err := seedSlot(ctx, tx, item.MatchID, sheet.TeamID, side, formation.PoolBench, i, nil, pl); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedSlot(ctx context.Context, tx *sqlx.Tx, matchID, teamID string, side formation.Side, pool formation.Pool, order int, at *r2.Vec, pl player.Player) error {
	preferred := make(pq.StringArray, 0, len(pl.PreferredPositions))
	for _, pos := range pl.PreferredPositions {
		preferred = append(preferred, string(pos))
	}
	if _, err := tx.NamedExecContext(ctx, upsertPlayerSQL, seedPlayerRow{
		ID:                 pl.ID,
		TeamID:             teamID,
		SquadNumber:        pl.SquadNumber,
		Name:               pl.Name,
		Position:           string(pl.Position),
		Goals:              pl.Stats.Goals,
		Assists:            pl.Stats.Assists,
		Minutes:            pl.Stats.Minutes,
		PreferredPositions: preferred,
	}); err != nil {
		return fmt.Errorf("upsert player %s: %w", pl.ID, err)
	}

	row := seedSlotRow{
		MatchID:   matchID,
		PlayerID:  pl.ID,
		Side:      string(side),
		Pool:      string(pool),
		SlotOrder: order,
		Captain:   pl.Captain,
	}
	if at != nil {
		row.X = sql.NullFloat64{Float64: at.X, Valid: true}
		row.Y = sql.NullFloat64{Float64: at.Y, Valid: true}
	} else {
		row.BenchIndex = order
	}
	if _, err := tx.NamedExecContext(ctx, insertSlotSQL, row); err != nil {
		return fmt.Errorf("insert lineup slot %s/%s: %w", matchID, pl.ID, err)
	}
	return nil
}

func eventRow(matchID string, e matchevent.Event) seedEventRow {
	row := seedEventRow{
		ID:          e.ID,
		MatchID:     matchID,
		Category:    string(e.Category),
		Subcategory: e.Subcategory,
		ActionType:  e.ActionType,
		TimestampMS: e.Timestamp.Milliseconds(),
		Side:        string(e.Side),
		PlayerID:    e.PlayerID,
	}
	if e.Start != nil {
		row.StartX = sql.NullFloat64{Float64: e.Start.X, Valid: true}
		row.StartY = sql.NullFloat64{Float64: e.Start.Y, Valid: true}
	}
	if e.End != nil {
		row.EndX = sql.NullFloat64{Float64: e.End.X, Valid: true}
		row.EndY = sql.NullFloat64{Float64: e.End.Y, Valid: true}
	}
	return row
}
