package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
)

type formationSnapshotInsertModel struct {
	MatchID   string    `db:"match_id"`
	Minute    int       `db:"minute"`
	Slots     []byte    `db:"slots"`
	CreatedAt time.Time `db:"created_at"`
}

type snapshotSlotDocument struct {
	PlayerID   string  `json:"player_id"`
	Side       string  `json:"side"`
	Pool       string  `json:"pool"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	BenchIndex int     `json:"bench_index"`
}

// SnapshotSink persists committed formation snapshots so the parent
// application can read the edited timeline back. Re-publishing a minute
// replaces the stored assignment.
type SnapshotSink struct {
	db *sqlx.DB
}

func NewSnapshotSink(db *sqlx.DB) *SnapshotSink {
	return &SnapshotSink{db: db}
}

const upsertFormationSnapshotSQL = `
INSERT INTO formation_snapshots (match_id, minute, slots, created_at)
VALUES (:match_id, :minute, :slots, :created_at)
ON CONFLICT (match_id, minute) DO UPDATE
SET slots = EXCLUDED.slots, created_at = EXCLUDED.created_at`

func (s *SnapshotSink) Publish(ctx context.Context, matchID string, snapshot formation.Snapshot) error {
	model, err := snapshotInsertModel(matchID, snapshot)
	if err != nil {
		return err
	}
	if _, err := s.db.NamedExecContext(ctx, upsertFormationSnapshotSQL, model); err != nil {
		return fmt.Errorf("upsert formation snapshot %s@%d: %w", matchID, snapshot.Minute, err)
	}
	return nil
}

func snapshotInsertModel(matchID string, snapshot formation.Snapshot) (formationSnapshotInsertModel, error) {
	docs := make([]snapshotSlotDocument, 0, len(snapshot.Slots))
	for _, slot := range snapshot.Slots {
		doc := snapshotSlotDocument{
			PlayerID:   slot.Player.ID,
			Side:       string(slot.Side),
			Pool:       string(slot.Pool),
			BenchIndex: slot.BenchIndex,
		}
		if slot.Pool == formation.PoolPitch {
			doc.X, doc.Y = slot.Position.X, slot.Position.Y
		}
		docs = append(docs, doc)
	}

	payload, err := sonic.Marshal(docs)
	if err != nil {
		return formationSnapshotInsertModel{}, fmt.Errorf("encode formation snapshot slots: %w", err)
	}
	return formationSnapshotInsertModel{
		MatchID:   matchID,
		Minute:    snapshot.Minute,
		Slots:     payload,
		CreatedAt: snapshot.CreatedAt.UTC(),
	}, nil
}
