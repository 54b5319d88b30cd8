package game

import (
	"fmt"

	"go.uber.org/zap"
)

func newTestEngine() *Engine {
	return NewEngine(zap.NewNop())
}

// newTestState builds an empty two-player match with no decks, for tests
// that place cards directly.
func newTestState() *GameState {
	return &GameState{
		MatchID:       "match-test",
		Turn:          1,
		CurrentPlayer: 1,
		Phase:         PhaseMain,
		Status:        StatusInProgress,
		Players: map[int]*PlayerState{
			1: NewPlayerState(1, "alice"),
			2: NewPlayerState(2, "bob"),
		},
	}
}

func monsterDef(code string, stars, atk, hp int) CardDefinition {
	return CardDefinition{
		Code:  code,
		Name:  code,
		Kind:  KindMonster,
		Stars: stars,
		ATK:   atk,
		HP:    hp,
	}
}

func spellDef(code string, effects ...Effect) CardDefinition {
	return CardDefinition{
		Code:    code,
		Name:    code,
		Kind:    KindSpell,
		Effects: NormalizeEffects(effects),
	}
}

func trapDef(code string, trigger TriggerType, effects ...Effect) CardDefinition {
	return CardDefinition{
		Code:    code,
		Name:    code,
		Kind:    KindTrap,
		Trigger: trigger,
		Effects: NormalizeEffects(effects),
	}
}

func heroDef(code string, elementID int, profile HeroProfile) CardDefinition {
	profile.Active = NormalizeEffects(profile.Active)
	profile.Passive = NormalizeEffects(profile.Passive)
	return CardDefinition{
		Code:      code,
		Name:      code,
		Kind:      KindHero,
		Stars:     6,
		ElementID: elementID,
		Hero:      &profile,
	}
}

// placeMonster puts a battle-ready monster into the given zone.
func placeMonster(gs *GameState, player, zone int, def CardDefinition) *CardInstance {
	c := NewCardInstance(def)
	c.FaceDown = false
	c.CanAttack = true
	gs.Players[player].MonsterZones[zone] = c
	return c
}

// placeTrap sets a face-down trap into the first empty spell/trap zone.
func placeTrap(gs *GameState, player int, def CardDefinition) *CardInstance {
	c := NewCardInstance(def)
	c.FaceDown = true
	ps := gs.Players[player]
	zone := ps.FirstEmptySpellTrapZone()
	if zone < 0 {
		panic(fmt.Sprintf("no empty spell/trap zone for player %d", player))
	}
	ps.SpellTrapZones[zone] = c
	return c
}

// giveCard puts a fresh instance into the player's hand.
func giveCard(gs *GameState, player int, def CardDefinition) *CardInstance {
	c := NewCardInstance(def)
	ps := gs.Players[player]
	ps.Hand = append(ps.Hand, c)
	return c
}

// fillDeck appends n vanilla monsters to the player's deck.
func fillDeck(gs *GameState, player, n int) {
	ps := gs.Players[player]
	for i := 0; i < n; i++ {
		ps.Deck = append(ps.Deck, NewCardInstance(monsterDef(fmt.Sprintf("filler-%d", i), 1, 100, 100)))
	}
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Type)
	}
	return out
}

func hasEvent(events []Event, t EventType) bool {
	for _, ev := range events {
		if ev.Type == t {
			return true
		}
	}
	return false
}
