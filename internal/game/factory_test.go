package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeck(prefix string, n int) []CardDefinition {
	deck := make([]CardDefinition, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, monsterDef(fmt.Sprintf("%s-%d", prefix, i), 2, 200, 300))
	}
	return deck
}

func TestNewMatchOpeningState(t *testing.T) {
	gs, err := NewMatch("m1", "alice", testDeck("a", 12), "bob", testDeck("b", 12))
	require.NoError(t, err)

	assert.Equal(t, "m1", gs.MatchID)
	assert.Equal(t, 1, gs.Turn)
	assert.Equal(t, 1, gs.CurrentPlayer)
	assert.Equal(t, PhaseStart, gs.Phase)
	assert.Equal(t, StatusInProgress, gs.Status)
	require.Len(t, gs.Log, 1)
	assert.Equal(t, EventGameInit, gs.Log[0].Type)

	for idx := 1; idx <= 2; idx++ {
		ps := gs.Players[idx]
		require.NotNil(t, ps)
		assert.Equal(t, StartingLife, ps.Life)
		assert.Len(t, ps.Hand, StartingHandSize)
		assert.Len(t, ps.Deck, 12-StartingHandSize)
		assert.Len(t, ps.MonsterZones, MonsterZoneCount)
		assert.Len(t, ps.SpellTrapZones, SpellTrapZoneCount)
		assert.Nil(t, ps.Hero)
		for _, z := range ps.MonsterZones {
			assert.Nil(t, z)
		}
	}
}

func TestNewMatchGeneratesMatchID(t *testing.T) {
	gs, err := NewMatch("", "alice", testDeck("a", 8), "bob", testDeck("b", 8))
	require.NoError(t, err)
	assert.NotEmpty(t, gs.MatchID)
}

func TestNewMatchRejectsShortDeck(t *testing.T) {
	_, err := NewMatch("m1", "alice", testDeck("a", 4), "bob", testDeck("b", 12))
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewMatchHandDoesNotAliasDeck(t *testing.T) {
	gs, err := NewMatch("m1", "alice", testDeck("a", 10), "bob", testDeck("b", 10))
	require.NoError(t, err)

	ps := gs.Players[1]
	ps.Hand = append(ps.Hand, NewCardInstance(monsterDef("extra", 1, 100, 100)))
	assert.Len(t, ps.Deck, 10-StartingHandSize)
	for _, c := range ps.Deck {
		assert.NotEqual(t, "extra", c.Code)
	}
}

func TestOpeningHandReplacesFirstDraw(t *testing.T) {
	gs, err := NewMatch("m1", "alice", testDeck("a", 10), "bob", testDeck("b", 10))
	require.NoError(t, err)

	// Turn 1 begins in main phase with no draw events logged.
	assert.False(t, hasEvent(gs.Log, EventDrawCards))

	e := newTestEngine()
	res, err := e.Apply(gs, 1, Action{Type: ActionEndTurn})
	require.NoError(t, err)

	// Player 2's first turn draws normally.
	assert.True(t, hasEvent(res.Events, EventDrawCards))
	assert.Len(t, gs.Players[2].Hand, StartingHandSize+TurnDrawCount)
}
