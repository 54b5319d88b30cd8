package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Player is an account row. PasswordHash is only populated by the auth
// lookups, never by gameplay paths.
type Player struct {
	ID           string
	Username     string
	PasswordHash string
}

type PlayerRepository struct {
	db *pgxpool.Pool
}

func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetPlayer(ctx context.Context, id string) (*Player, error) {
	var p Player
	err := r.db.QueryRow(ctx,
		`SELECT id, username FROM players WHERE id = $1`, id).
		Scan(&p.ID, &p.Username)
	if isNoRows(err) {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get player %s: %w", id, err)
	}
	return &p, nil
}

func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*Player, error) {
	var p Player
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash FROM players WHERE username = $1`, username).
		Scan(&p.ID, &p.Username, &p.PasswordHash)
	if isNoRows(err) {
		return nil, fmt.Errorf("player %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get player by username: %w", err)
	}
	return &p, nil
}

// CreatePlayer inserts a new account and returns its id. Username collisions
// surface as database errors for the handler to map.
func (r *PlayerRepository) CreatePlayer(ctx context.Context, username, passwordHash string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(ctx,
		`INSERT INTO players (id, username, password_hash) VALUES ($1, $2, $3)`,
		id, username, passwordHash)
	if err != nil {
		return "", fmt.Errorf("create player %s: %w", username, err)
	}
	return id, nil
}
