package game

import (
	"fmt"

	"github.com/google/uuid"
)

// CardKind classifies every card in the catalog.
type CardKind int

const (
	KindMonster CardKind = iota
	KindSpell
	KindTrap
	KindHero
)

var cardKindNames = map[CardKind]string{
	KindMonster: "monster",
	KindSpell:   "spell",
	KindTrap:    "trap",
	KindHero:    "hero",
}

var cardKindValues = map[string]CardKind{
	"monster": KindMonster,
	"spell":   KindSpell,
	"trap":    KindTrap,
	"hero":    KindHero,
}

func (k CardKind) String() string {
	if name, ok := cardKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// ParseCardKind converts the canonical lowercase kind name.
func ParseCardKind(s string) (CardKind, error) {
	if k, ok := cardKindValues[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown card kind %q", s)
}

func (k CardKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *CardKind) UnmarshalText(data []byte) error {
	parsed, err := ParseCardKind(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k CardKind) MarshalYAML() (any, error) { return k.String(), nil }

func (k *CardKind) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseCardKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// DurationType controls how long a status entry stays on a card.
type DurationType string

const (
	DurationPermanent               DurationType = "PERMANENT"
	DurationFixedTurns              DurationType = "FIXED_TURNS"
	DurationUntilControllerNextTurn DurationType = "UNTIL_CONTROLLER_NEXT_TURN"
)

// StatusImmuneCode blocks application of every other status code while present.
const StatusImmuneCode = "STATUS_IMMUNE"

// StatusFrozenCode prevents the holder from regaining attack eligibility.
const StatusFrozenCode = "FROZEN"

// StatusEntry is one active status on a card. FIXED_TURNS entries count down
// at the holder's start of turn; an expired entry may install its declared
// OnExpire replacement.
type StatusEntry struct {
	Code          string       `json:"code"`
	DurationType  DurationType `json:"duration_type"`
	DurationValue int          `json:"duration_value,omitempty"`
	OnExpire      *StatusEntry `json:"on_expire,omitempty"`
}

// Effect is one data-described unit of card behavior. The keyword selects a
// handler in the resolver registry; Params carry the canonical schema for that
// keyword. Cards never get per-card code in the engine.
type Effect struct {
	Keyword string         `json:"keyword" yaml:"keyword"`
	Params  map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// TriggerType is the canonical trigger a face-down trap declares. Matching is
// exact equality, never substring search.
type TriggerType string

const (
	TriggerNone             TriggerType = ""
	TriggerOnSpellCast      TriggerType = "ON_OPPONENT_SPELL_CAST"
	TriggerOnAttackDeclared TriggerType = "ON_ATTACK_DECLARED"
	TriggerOnAllyDestroyed  TriggerType = "ON_ALLY_MONSTER_WOULD_BE_DESTROYED"
)

// HeroProfile carries the hero-only behavior of a 6-star card: the flat aura
// applied to the controller's monsters on entry, the active ability resolved
// by ACTIVATE_HERO_ABILITY, and the passive resolved at the controller's end
// of turn.
type HeroProfile struct {
	AuraATK int      `json:"aura_atk,omitempty" yaml:"aura_atk,omitempty"`
	AuraHP  int      `json:"aura_hp,omitempty" yaml:"aura_hp,omitempty"`
	Active  []Effect `json:"active,omitempty" yaml:"active,omitempty"`
	Passive []Effect `json:"passive,omitempty" yaml:"passive,omitempty"`
}

// CardDefinition is a catalog row: the immutable description a deck expands
// from. The repository and the YAML catalog both produce this shape, already
// expanded to one entry per physical copy.
type CardDefinition struct {
	Code        string       `json:"card_code" yaml:"code"`
	BaseCode    string       `json:"base_code,omitempty" yaml:"base_code,omitempty"`
	Name        string       `json:"name" yaml:"name"`
	Kind        CardKind     `json:"card_type" yaml:"kind"`
	Stars       int          `json:"stars" yaml:"stars"`
	ATK         int          `json:"atk" yaml:"atk"`
	HP          int          `json:"hp" yaml:"hp"`
	ElementID   int          `json:"element_id,omitempty" yaml:"element,omitempty"`
	Trigger     TriggerType  `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Effects     []Effect     `json:"effects,omitempty" yaml:"effects,omitempty"`
	Hero        *HeroProfile `json:"hero,omitempty" yaml:"hero,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	FlavorText  string       `json:"flavor_text,omitempty" yaml:"flavor_text,omitempty"`
	RulesText   string       `json:"rules_text,omitempty" yaml:"rules_text,omitempty"`
	ArtAssetID  string       `json:"art_asset_id,omitempty" yaml:"art_asset_id,omitempty"`
}

// CardInstance is one physical copy of a card inside a live match. The
// instance id is stable across zone moves; everything below the runtime
// section is copied from the definition at expansion time.
type CardInstance struct {
	InstanceID string       `json:"instance_id"`
	Code       string       `json:"card_code"`
	Name       string       `json:"name"`
	Kind       CardKind     `json:"card_type"`
	Stars      int          `json:"stars"`
	ATK        int          `json:"atk"`
	HP         int          `json:"hp"`
	MaxHP      int          `json:"max_hp"`
	ElementID  int          `json:"element_id,omitempty"`
	Trigger    TriggerType  `json:"trigger,omitempty"`
	Effects    []Effect     `json:"effects,omitempty"`
	Hero       *HeroProfile `json:"hero,omitempty"`

	// Runtime board state.
	FaceDown     bool          `json:"face_down"`
	CanAttack    bool          `json:"can_attack"`
	SummonedTurn int           `json:"summoned_turn,omitempty"`
	HeroCharges  int           `json:"hero_charges,omitempty"`
	Statuses     []StatusEntry `json:"statuses,omitempty"`

	// Display-only provenance.
	Description string `json:"description,omitempty"`
	FlavorText  string `json:"flavor_text,omitempty"`
	RulesText   string `json:"rules_text,omitempty"`
	ArtAssetID  string `json:"art_asset_id,omitempty"`
}

// NewCardInstance expands one definition into a fresh runtime copy.
// New instances enter face-down and without attack eligibility; the summon
// rules decide when either changes.
func NewCardInstance(def CardDefinition) *CardInstance {
	return &CardInstance{
		InstanceID:  uuid.NewString(),
		Code:        def.Code,
		Name:        def.Name,
		Kind:        def.Kind,
		Stars:       def.Stars,
		ATK:         def.ATK,
		HP:          def.HP,
		MaxHP:       def.HP,
		ElementID:   def.ElementID,
		Trigger:     def.Trigger,
		Effects:     cloneEffects(def.Effects),
		Hero:        cloneHeroProfile(def.Hero),
		Description: def.Description,
		FlavorText:  def.FlavorText,
		RulesText:   def.RulesText,
		ArtAssetID:  def.ArtAssetID,
	}
}

func cloneEffects(effects []Effect) []Effect {
	if len(effects) == 0 {
		return nil
	}
	out := make([]Effect, len(effects))
	for i, eff := range effects {
		out[i] = Effect{Keyword: eff.Keyword}
		if len(eff.Params) > 0 {
			params := make(map[string]any, len(eff.Params))
			for k, v := range eff.Params {
				params[k] = v
			}
			out[i].Params = params
		}
	}
	return out
}

func cloneHeroProfile(h *HeroProfile) *HeroProfile {
	if h == nil {
		return nil
	}
	return &HeroProfile{
		AuraATK: h.AuraATK,
		AuraHP:  h.AuraHP,
		Active:  cloneEffects(h.Active),
		Passive: cloneEffects(h.Passive),
	}
}

// IsMonster reports whether the card fights in a monster zone.
func (c *CardInstance) IsMonster() bool { return c.Kind == KindMonster }

// IsHero reports whether the card occupies the hero slot.
func (c *CardInstance) IsHero() bool { return c.Kind == KindHero }

// Alive reports whether the card still has hit points.
func (c *CardInstance) Alive() bool { return c.HP > 0 }

// HasStatus reports whether a status with the given code is active.
func (c *CardInstance) HasStatus(code string) bool {
	for _, s := range c.Statuses {
		if s.Code == code {
			return true
		}
	}
	return false
}

// ApplyStatus adds a status entry, honoring status immunity. Duplicate codes
// are ignored. It reports whether the status was actually installed.
func (c *CardInstance) ApplyStatus(entry StatusEntry) bool {
	if c.HasStatus(StatusImmuneCode) && entry.Code != StatusImmuneCode {
		return false
	}
	if c.HasStatus(entry.Code) {
		return false
	}
	c.Statuses = append(c.Statuses, entry)
	return true
}

// RemoveStatus strips every entry with the given code.
func (c *CardInstance) RemoveStatus(code string) {
	kept := c.Statuses[:0]
	for _, s := range c.Statuses {
		if s.Code != code {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		c.Statuses = nil
		return
	}
	c.Statuses = kept
}

// AdjustHP changes current HP by delta, clamped to [0, MaxHP].
// Returns HP before and after the change.
func (c *CardInstance) AdjustHP(delta int) (before, after int) {
	before = c.HP
	c.HP += delta
	if c.HP < 0 {
		c.HP = 0
	}
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return before, c.HP
}

// Buff raises ATK and both current and maximum HP by flat amounts.
func (c *CardInstance) Buff(atk, hp int) {
	c.ATK += atk
	c.MaxHP += hp
	c.HP += hp
	if c.HP < 0 {
		c.HP = 0
	}
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}
