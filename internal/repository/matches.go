package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Match modes.
const (
	ModePVE = "PVE"
	ModePVP = "PVP"
)

// MatchRecord is one persisted match: the id combination describing who is
// playing plus the serialized game state snapshot.
type MatchRecord struct {
	ID        string
	Mode      string
	Player1ID string
	Player2ID string
	NPCID     string
	State     []byte
	Status    string
	Winner    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateModeCombo enforces the legal id combinations: PVE pairs player1
// with an NPC and no player2, PVP pairs two players and no NPC.
func ValidateModeCombo(mode, player1ID, player2ID, npcID string) error {
	if player1ID == "" {
		return fmt.Errorf("match requires player1_id")
	}
	switch mode {
	case ModePVE:
		if npcID == "" {
			return fmt.Errorf("PVE match requires npc_id")
		}
		if player2ID != "" {
			return fmt.Errorf("PVE match must not set player2_id")
		}
	case ModePVP:
		if player2ID == "" {
			return fmt.Errorf("PVP match requires player2_id")
		}
		if npcID != "" {
			return fmt.Errorf("PVP match must not set npc_id")
		}
	default:
		return fmt.Errorf("unknown match mode %q", mode)
	}
	return nil
}

type MatchRepository struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) CreateMatch(ctx context.Context, rec *MatchRecord) error {
	if err := ValidateModeCombo(rec.Mode, rec.Player1ID, rec.Player2ID, rec.NPCID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO matches (id, mode, player1_id, player2_id, npc_id, state, status, winner, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, now(), now())`,
		rec.ID, rec.Mode, rec.Player1ID, rec.Player2ID, rec.NPCID, rec.State, rec.Status, rec.Winner)
	if err != nil {
		return fmt.Errorf("create match %s: %w", rec.ID, err)
	}
	return nil
}

func (r *MatchRepository) GetMatch(ctx context.Context, id string) (*MatchRecord, error) {
	var (
		rec       MatchRecord
		player2ID *string
		npcID     *string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, mode, player1_id, player2_id, npc_id, state, status, winner, created_at, updated_at
		FROM matches WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Mode, &rec.Player1ID, &player2ID, &npcID,
			&rec.State, &rec.Status, &rec.Winner, &rec.CreatedAt, &rec.UpdatedAt)
	if isNoRows(err) {
		return nil, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get match %s: %w", id, err)
	}
	if player2ID != nil {
		rec.Player2ID = *player2ID
	}
	if npcID != nil {
		rec.NPCID = *npcID
	}
	return &rec, nil
}

// UpdateMatchState replaces the snapshot and status after an applied intent.
func (r *MatchRepository) UpdateMatchState(ctx context.Context, id string, state []byte, status string, winner int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE matches SET state = $2, status = $3, winner = $4, updated_at = now()
		WHERE id = $1`, id, state, status, winner)
	if err != nil {
		return fmt.Errorf("update match %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return nil
}
