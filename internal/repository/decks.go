package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/projectsquall/squall-server-go/internal/game"
)

// DeckRepository resolves deck lists into expanded card definitions.
type DeckRepository struct {
	db *pgxpool.Pool
}

func NewDeckRepository(db *pgxpool.Pool) *DeckRepository {
	return &DeckRepository{db: db}
}

// LoadDeckDefinitions expands a deck into one CardDefinition per physical
// copy, effects normalized at the boundary. Order follows the deck rows; the
// match factory shuffles.
func (r *DeckRepository) LoadDeckDefinitions(ctx context.Context, deckID string) ([]game.CardDefinition, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.code, c.base_code, c.name, c.card_type, c.stars, c.atk, c.hp,
		       c.element_id, c.trigger, c.effects, c.hero, c.description,
		       c.flavor_text, c.rules_text, c.art_asset_id, dc.quantity
		FROM deck_cards dc
		JOIN cards c ON c.code = dc.card_code
		WHERE dc.deck_id = $1
		ORDER BY dc.position`, deckID)
	if err != nil {
		return nil, fmt.Errorf("query deck %s: %w", deckID, err)
	}
	defer rows.Close()

	var defs []game.CardDefinition
	for rows.Next() {
		def, quantity, err := scanCardRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deck %s: %w", deckID, err)
		}
		for i := 0; i < quantity; i++ {
			defs = append(defs, def)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read deck %s: %w", deckID, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("deck %s: %w", deckID, ErrNotFound)
	}
	return defs, nil
}

// LoadAllCards returns every catalog row, used to build the element variant
// lookup for hero re-skins.
func (r *DeckRepository) LoadAllCards(ctx context.Context) ([]game.CardDefinition, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.code, c.base_code, c.name, c.card_type, c.stars, c.atk, c.hp,
		       c.element_id, c.trigger, c.effects, c.hero, c.description,
		       c.flavor_text, c.rules_text, c.art_asset_id, 1
		FROM cards c`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var defs []game.CardDefinition
	for rows.Next() {
		def, _, err := scanCardRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cards: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	return defs, nil
}

func scanCardRow(rows pgx.Rows) (game.CardDefinition, int, error) {
	var (
		def          game.CardDefinition
		baseCode     *string
		trigger      *string
		effectsJSON  []byte
		heroJSON     []byte
		description  *string
		flavorText   *string
		rulesText    *string
		artAssetID   *string
		cardType     string
		quantity     int
	)
	err := rows.Scan(&def.Code, &baseCode, &def.Name, &cardType, &def.Stars,
		&def.ATK, &def.HP, &def.ElementID, &trigger, &effectsJSON, &heroJSON,
		&description, &flavorText, &rulesText, &artAssetID, &quantity)
	if err != nil {
		return def, 0, err
	}
	if err := def.Kind.UnmarshalText([]byte(cardType)); err != nil {
		return def, 0, err
	}
	if baseCode != nil {
		def.BaseCode = *baseCode
	}
	if trigger != nil {
		def.Trigger = game.TriggerType(*trigger)
	}
	if len(effectsJSON) > 0 {
		var effects []game.Effect
		if err := json.Unmarshal(effectsJSON, &effects); err != nil {
			return def, 0, fmt.Errorf("card %s effects: %w", def.Code, err)
		}
		def.Effects = game.NormalizeEffects(effects)
	}
	if len(heroJSON) > 0 {
		var hero game.HeroProfile
		if err := json.Unmarshal(heroJSON, &hero); err != nil {
			return def, 0, fmt.Errorf("card %s hero: %w", def.Code, err)
		}
		hero.Active = game.NormalizeEffects(hero.Active)
		hero.Passive = game.NormalizeEffects(hero.Passive)
		def.Hero = &hero
	}
	if description != nil {
		def.Description = *description
	}
	if flavorText != nil {
		def.FlavorText = *flavorText
	}
	if rulesText != nil {
		def.RulesText = *rulesText
	}
	if artAssetID != nil {
		def.ArtAssetID = *artAssetID
	}
	if quantity < 1 {
		quantity = 1
	}
	return def, quantity, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
