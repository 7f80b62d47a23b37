package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/lineup"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	qb "github.com/riskibarqy/tactical-board/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByMatch(ctx context.Context, matchID string) (lineup.MatchLineup, bool, error) {
	query, args, err := matchHeaderQuery(matchID)
	if err != nil {
		return lineup.MatchLineup{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var match matchTableModel
	if err := r.db.GetContext(ctx, &match, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.MatchLineup{}, false, nil
		}
		return lineup.MatchLineup{}, false, fmt.Errorf("get match: %w", err)
	}

	query, args, err = qb.Select(
		"s.match_id", "s.side", "s.pool", "s.x", "s.y", "s.bench_index", "s.captain",
		"p.id AS player_id", "p.squad_number", "p.name", "p.position",
		"p.goals", "p.assists", "p.minutes", "p.preferred_positions",
	).
		From("match_lineup_slots s").
		Join("players p", "p.id = s.player_id").
		Where(qb.Eq("s.match_id", matchID)).
		OrderBy("s.side", "s.pool DESC", "s.bench_index", "s.slot_order").
		ToSQL()
	if err != nil {
		return lineup.MatchLineup{}, false, fmt.Errorf("build list lineup slots query: %w", err)
	}

	var rows []lineupSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return lineup.MatchLineup{}, false, fmt.Errorf("list lineup slots: %w", err)
	}

	out, err := lineupFromRows(match, rows)
	if err != nil {
		return lineup.MatchLineup{}, false, err
	}
	return out, true, nil
}

func matchHeaderQuery(matchID string) (string, []any, error) {
	return qb.Select(
		"id", "home_team_id", "home_team_name", "away_team_id", "away_team_name", "updated_at",
	).
		From("matches").
		Where(qb.Eq("id", matchID), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
}

func lineupFromRows(match matchTableModel, rows []lineupSlotTableModel) (lineup.MatchLineup, error) {
	out := lineup.MatchLineup{
		MatchID:   match.ID,
		Home:      lineup.TeamSheet{TeamID: match.HomeTeamID, TeamName: match.HomeTeamName},
		Away:      lineup.TeamSheet{TeamID: match.AwayTeamID, TeamName: match.AwayTeamName},
		UpdatedAt: match.UpdatedAt,
	}

	for _, row := range rows {
		side, err := formation.ParseSide(row.Side)
		if err != nil {
			return lineup.MatchLineup{}, fmt.Errorf("lineup slot %s/%s: %w", row.MatchID, row.PlayerID, err)
		}
		pool, err := formation.ParsePool(row.Pool)
		if err != nil {
			return lineup.MatchLineup{}, fmt.Errorf("lineup slot %s/%s: %w", row.MatchID, row.PlayerID, err)
		}

		sheet := &out.Home
		if side == formation.SideAway {
			sheet = &out.Away
		}

		pl := playerFromRow(row)
		if pool == formation.PoolBench {
			sheet.Bench = append(sheet.Bench, pl)
			continue
		}

		x, okX := nullFloat(row.X)
		y, okY := nullFloat(row.Y)
		if !okX || !okY {
			return lineup.MatchLineup{}, fmt.Errorf("lineup slot %s/%s: pitch slot without coordinates", row.MatchID, row.PlayerID)
		}
		sheet.Starters = append(sheet.Starters, lineup.Starter{Player: pl, X: x, Y: y})
	}
	return out, nil
}

func playerFromRow(row lineupSlotTableModel) player.Player {
	preferred := make([]player.Position, 0, len(row.PreferredPositions))
	for _, pos := range row.PreferredPositions {
		preferred = append(preferred, player.NormalizePosition(pos))
	}
	return player.Player{
		ID:          row.PlayerID,
		SquadNumber: row.SquadNumber,
		Name:        row.Name,
		Position:    player.NormalizePosition(row.Position),
		Captain:     row.Captain,
		Stats: player.Stats{
			Goals:   row.Goals,
			Assists: row.Assists,
			Minutes: row.Minutes,
		},
		PreferredPositions: preferred,
	}
}
