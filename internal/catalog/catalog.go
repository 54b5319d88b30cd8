// Package catalog loads card definitions and deck lists from YAML files.
// It backs PVE fallbacks and tests with the same CardDefinition shape the
// database repositories produce, and builds the element-variant lookup the
// engine uses for hero re-skins.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/projectsquall/squall-server-go/internal/game"
)

// CardFile is the top-level cards YAML structure.
type CardFile struct {
	Cards []game.CardDefinition `yaml:"cards"`
}

// DeckFile is the top-level decks YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry names a deck and its card counts.
type DeckEntry struct {
	ID    string      `yaml:"id"`
	Name  string      `yaml:"name"`
	Cards []CardCount `yaml:"cards"`
}

type CardCount struct {
	Code  string `yaml:"code"`
	Count int    `yaml:"count"`
}

// Catalog is an in-memory card and deck index.
type Catalog struct {
	cards map[string]game.CardDefinition
	// variants[baseCode][elementID] is the elemental printing.
	variants map[string]map[int]game.CardDefinition
	decks    map[string]DeckEntry
}

// Load reads the card file and, when decksPath is non-empty, the deck file.
func Load(cardsPath, decksPath string) (*Catalog, error) {
	data, err := os.ReadFile(cardsPath)
	if err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	var cf CardFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML %s: %w", cardsPath, err)
	}

	c := &Catalog{
		cards:    make(map[string]game.CardDefinition, len(cf.Cards)),
		variants: make(map[string]map[int]game.CardDefinition),
		decks:    make(map[string]DeckEntry),
	}
	for _, def := range cf.Cards {
		if def.Code == "" {
			return nil, fmt.Errorf("card YAML %s: card %q has no code", cardsPath, def.Name)
		}
		def.Effects = game.NormalizeEffects(def.Effects)
		if def.Hero != nil {
			h := *def.Hero
			h.Active = game.NormalizeEffects(h.Active)
			h.Passive = game.NormalizeEffects(h.Passive)
			def.Hero = &h
		}
		if _, dup := c.cards[def.Code]; dup {
			return nil, fmt.Errorf("card YAML %s: duplicate code %s", cardsPath, def.Code)
		}
		c.cards[def.Code] = def
		c.indexVariant(def)
	}

	if decksPath != "" {
		if err := c.loadDecks(decksPath); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) indexVariant(def game.CardDefinition) {
	base := def.BaseCode
	if base == "" {
		base = def.Code
	}
	if c.variants[base] == nil {
		c.variants[base] = make(map[int]game.CardDefinition)
	}
	c.variants[base][def.ElementID] = def
}

func (c *Catalog) loadDecks(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read deck file: %w", err)
	}
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return fmt.Errorf("parse deck YAML %s: %w", path, err)
	}
	for _, deck := range df.Decks {
		key := deck.ID
		if key == "" {
			key = deck.Name
		}
		c.decks[key] = deck
	}
	return nil
}

// Card looks up one definition by code.
func (c *Catalog) Card(code string) (game.CardDefinition, bool) {
	def, ok := c.cards[code]
	return def, ok
}

// Deck expands a deck entry into one definition per copy.
func (c *Catalog) Deck(id string) ([]game.CardDefinition, error) {
	deck, ok := c.decks[id]
	if !ok {
		return nil, fmt.Errorf("deck %q not in catalog", id)
	}
	var defs []game.CardDefinition
	for _, entry := range deck.Cards {
		def, ok := c.cards[entry.Code]
		if !ok {
			return nil, fmt.Errorf("deck %q references unknown card %s", id, entry.Code)
		}
		count := entry.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			defs = append(defs, def)
		}
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("deck %q is empty", id)
	}
	return defs, nil
}

// DeckIDs lists loaded deck ids.
func (c *Catalog) DeckIDs() []string {
	ids := make([]string, 0, len(c.decks))
	for id := range c.decks {
		ids = append(ids, id)
	}
	return ids
}

// VariantResolver adapts the variant index to the engine's re-skin hook.
// The code may itself be a variant; resolution goes through its base.
func (c *Catalog) VariantResolver() game.VariantResolver {
	return func(code string, elementID int) (*game.CardDefinition, bool) {
		def, ok := c.cards[code]
		if !ok {
			return nil, false
		}
		base := def.BaseCode
		if base == "" {
			base = def.Code
		}
		variant, ok := c.variants[base][elementID]
		if !ok || variant.Code == code {
			return nil, false
		}
		return &variant, true
	}
}

// ResolverFromDefinitions builds a variant resolver straight from a
// definition list, for callers that load cards from the database instead of
// YAML files.
func ResolverFromDefinitions(defs []game.CardDefinition) game.VariantResolver {
	c := &Catalog{
		cards:    make(map[string]game.CardDefinition, len(defs)),
		variants: make(map[string]map[int]game.CardDefinition),
	}
	for _, def := range defs {
		c.cards[def.Code] = def
		c.indexVariant(def)
	}
	return c.VariantResolver()
}
