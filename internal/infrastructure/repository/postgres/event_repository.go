package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	qb "github.com/riskibarqy/tactical-board/internal/platform/querybuilder"
	"gonum.org/v1/gonum/spatial/r2"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// GetDataset loads every event of a match. A match without events yields an
// empty dataset.
func (r *EventRepository) GetDataset(ctx context.Context, matchID string) (matchevent.Dataset, error) {
	query, args, err := qb.Select(
		"id", "match_id", "category", "subcategory", "action_type",
		"start_x", "start_y", "end_x", "end_y", "timestamp_ms", "side", "player_id",
	).
		From("match_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("timestamp_ms", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	events := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, eventFromRow(row))
	}
	return matchevent.FromEvents(events), nil
}

func eventFromRow(row matchEventTableModel) matchevent.Event {
	out := matchevent.Event{
		ID:          row.ID,
		Category:    matchevent.NormalizeCategory(row.Category),
		Subcategory: row.Subcategory,
		ActionType:  row.ActionType,
		Start:       pointFromColumns(row.StartX, row.StartY),
		End:         pointFromColumns(row.EndX, row.EndY),
		Timestamp:   time.Duration(row.TimestampMS) * time.Millisecond,
		PlayerID:    row.PlayerID.String,
	}
	if side, err := formation.ParseSide(row.Side.String); err == nil {
		out.Side = side
	}
	return out
}

func pointFromColumns(x, y sql.NullFloat64) *r2.Vec {
	px, okX := nullFloat(x)
	py, okY := nullFloat(y)
	if !okX || !okY {
		return nil
	}
	return &r2.Vec{X: px, Y: py}
}
