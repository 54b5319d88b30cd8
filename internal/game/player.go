package game

// Zone sizes are fixed for every match.
const (
	MonsterZoneCount   = 4
	SpellTrapZoneCount = 4
)

// StartingLife is each player's life total at match start.
const StartingLife = 1500

// TurnCounters track the once-per-turn action limits for one player. Each
// counter caps at 1 and resets at the start of the owner's own turn.
type TurnCounters struct {
	Summons     int `json:"summons"`
	SpellsTraps int `json:"spells_traps"`
	HeroAbility int `json:"hero_ability"`
}

// Reset zeroes every counter.
func (tc *TurnCounters) Reset() { *tc = TurnCounters{} }

// PlayerState is one side of a match: life, zones, and per-turn usage.
// Monster and spell/trap zones are fixed-size sparse slots; a nil entry is an
// empty slot.
type PlayerState struct {
	PlayerIndex    int             `json:"player_index"`
	Name           string          `json:"name"`
	Life           int             `json:"hp"`
	ActiveElement  int             `json:"active_element,omitempty"`
	Deck           []*CardInstance `json:"deck"`
	Hand           []*CardInstance `json:"hand"`
	MonsterZones   []*CardInstance `json:"monster_zones"`
	SpellTrapZones []*CardInstance `json:"spell_trap_zones"`
	Hero           *CardInstance   `json:"hero,omitempty"`
	Graveyard      []*CardInstance `json:"graveyard"`
	Exile          []*CardInstance `json:"exile"`
	Counters       TurnCounters    `json:"turn_counters"`
}

// NewPlayerState creates an empty side with full life and empty zones.
func NewPlayerState(index int, name string) *PlayerState {
	return &PlayerState{
		PlayerIndex:    index,
		Name:           name,
		Life:           StartingLife,
		Deck:           make([]*CardInstance, 0),
		Hand:           make([]*CardInstance, 0),
		MonsterZones:   make([]*CardInstance, MonsterZoneCount),
		SpellTrapZones: make([]*CardInstance, SpellTrapZoneCount),
		Graveyard:      make([]*CardInstance, 0),
		Exile:          make([]*CardInstance, 0),
	}
}

// Alive reports whether the player still has life.
func (p *PlayerState) Alive() bool { return p.Life > 0 }

// LiveMonsters returns the occupied monster slots in zone order.
func (p *PlayerState) LiveMonsters() []*CardInstance {
	out := make([]*CardInstance, 0, MonsterZoneCount)
	for _, m := range p.MonsterZones {
		if m != nil && m.Alive() {
			out = append(out, m)
		}
	}
	return out
}

// FirstEmptyMonsterZone returns the lowest empty monster slot index, or -1.
func (p *PlayerState) FirstEmptyMonsterZone() int {
	for i, m := range p.MonsterZones {
		if m == nil {
			return i
		}
	}
	return -1
}

// FirstEmptySpellTrapZone returns the lowest empty spell/trap slot index, or -1.
func (p *PlayerState) FirstEmptySpellTrapZone() int {
	for i, s := range p.SpellTrapZones {
		if s == nil {
			return i
		}
	}
	return -1
}

// HandCard returns the hand position of the card with the given instance id,
// or -1 when absent.
func (p *PlayerState) HandCard(instanceID string) int {
	for i, c := range p.Hand {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// RemoveFromHand removes and returns the card at the given hand position.
func (p *PlayerState) RemoveFromHand(idx int) *CardInstance {
	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	return card
}

// MonsterZoneOf returns the slot index holding the given instance id, or -1.
func (p *PlayerState) MonsterZoneOf(instanceID string) int {
	for i, m := range p.MonsterZones {
		if m != nil && m.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// SpellTrapZoneOf returns the slot index holding the given instance id, or -1.
func (p *PlayerState) SpellTrapZoneOf(instanceID string) int {
	for i, s := range p.SpellTrapZones {
		if s != nil && s.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// DamageLife reduces life by amount, floored at 0, and returns the life
// before and after.
func (p *PlayerState) DamageLife(amount int) (before, after int) {
	if amount < 0 {
		amount = 0
	}
	before = p.Life
	p.Life -= amount
	if p.Life < 0 {
		p.Life = 0
	}
	return before, p.Life
}

// HealLife raises life by amount. Player life has no configured maximum.
func (p *PlayerState) HealLife(amount int) (before, after int) {
	if amount < 0 {
		amount = 0
	}
	before = p.Life
	p.Life += amount
	return before, p.Life
}

// SendToGraveyard appends a card to the graveyard.
func (p *PlayerState) SendToGraveyard(card *CardInstance) {
	p.Graveyard = append(p.Graveyard, card)
}
