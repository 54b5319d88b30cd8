package game

import "github.com/google/uuid"

// StartingHandSize is dealt to each player before turn one.
const StartingHandSize = 5

// NewMatch expands two deck lists into a fresh match: shuffled decks, five
// card opening hands, player 1 to act on turn one. The opening hand replaces
// the first turn's draw step.
func NewMatch(matchID, name1 string, deck1 []CardDefinition, name2 string, deck2 []CardDefinition) (*GameState, error) {
	if matchID == "" {
		matchID = uuid.NewString()
	}
	p1, err := buildSide(1, name1, deck1)
	if err != nil {
		return nil, err
	}
	p2, err := buildSide(2, name2, deck2)
	if err != nil {
		return nil, err
	}
	gs := &GameState{
		MatchID:       matchID,
		Turn:          1,
		CurrentPlayer: 1,
		Phase:         PhaseStart,
		Status:        StatusInProgress,
		Players:       map[int]*PlayerState{1: p1, 2: p2},
	}
	gs.AppendLog(Event{Type: EventGameInit, Turn: 1})
	return gs, nil
}

func buildSide(index int, name string, deck []CardDefinition) (*PlayerState, error) {
	if len(deck) < StartingHandSize {
		return nil, ConfigErrorf("player %d deck has %d cards, need at least %d", index, len(deck), StartingHandSize)
	}
	ps := NewPlayerState(index, name)
	ps.Deck = make([]*CardInstance, 0, len(deck))
	for _, def := range deck {
		def.Effects = NormalizeEffects(def.Effects)
		if def.Hero != nil {
			h := *def.Hero
			h.Active = NormalizeEffects(h.Active)
			h.Passive = NormalizeEffects(h.Passive)
			def.Hero = &h
		}
		ps.Deck = append(ps.Deck, NewCardInstance(def))
	}
	shuffleCards(ps.Deck)
	ps.Hand = ps.Deck[:StartingHandSize:StartingHandSize]
	ps.Deck = ps.Deck[StartingHandSize:]
	return ps, nil
}
