package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NPC is a scripted opponent row pointing at the deck it pilots.
type NPC struct {
	ID     string
	Name   string
	DeckID string
}

type NPCRepository struct {
	db *pgxpool.Pool
}

func NewNPCRepository(db *pgxpool.Pool) *NPCRepository {
	return &NPCRepository{db: db}
}

// PickNPC returns the named NPC, or a random one when id is empty.
func (r *NPCRepository) PickNPC(ctx context.Context, id string) (*NPC, error) {
	var (
		npc NPC
		err error
	)
	if id == "" {
		err = r.db.QueryRow(ctx,
			`SELECT id, name, deck_id FROM npcs ORDER BY random() LIMIT 1`).
			Scan(&npc.ID, &npc.Name, &npc.DeckID)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT id, name, deck_id FROM npcs WHERE id = $1`, id).
			Scan(&npc.ID, &npc.Name, &npc.DeckID)
	}
	if isNoRows(err) {
		return nil, fmt.Errorf("npc %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pick npc: %w", err)
	}
	return &npc, nil
}
