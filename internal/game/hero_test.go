package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installHero(gs *GameState, player int, charges int, active ...Effect) *CardInstance {
	hero := NewCardInstance(heroDef("warlord", 0, HeroProfile{Active: active}))
	hero.FaceDown = false
	hero.HeroCharges = charges
	gs.Players[player].Hero = hero
	return hero
}

func TestHeroAbilityWithoutHeroRejected(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()

	_, err := e.Apply(gs, 1, Action{Type: ActionActivateHeroAbility})
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonNoHero, rej.Reason)
}

func TestHeroDamageSpendsCharges(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	hero := installHero(gs, 1, 2, Effect{
		Keyword: KeywordHeroDamage,
		Params:  map[string]any{"amount": 300, "charge_cost": 2},
	})
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 250))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionActivateHeroAbility,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)

	assert.Zero(t, hero.HeroCharges)
	assert.True(t, hasEvent(res.Events, EventEffectHeroSpendCharge))
	// Hero damage always spills through a kill.
	assert.Nil(t, gs.Players[2].MonsterZones[0])
	assert.Equal(t, StartingLife-50, gs.Players[2].Life)
}

func TestHeroDamageFallsBackToPlayerOnEmptyBoard(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	installHero(gs, 1, 1, Effect{
		Keyword: KeywordHeroDamage,
		Params:  map[string]any{"amount": 300, "charge_cost": 1},
	})

	// No enemy monsters: the omitted target falls through to the player.
	_, err := e.Apply(gs, 1, Action{Type: ActionActivateHeroAbility})
	require.NoError(t, err)
	assert.Equal(t, StartingLife-300, gs.Players[2].Life)
}

func TestHeroDamageAutoTargetsLoneEnemyMonster(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	installHero(gs, 1, 1, Effect{
		Keyword: KeywordHeroDamage,
		Params:  map[string]any{"amount": 300, "charge_cost": 1},
	})
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 400))

	_, err := e.Apply(gs, 1, Action{Type: ActionActivateHeroAbility})
	require.NoError(t, err)

	assert.Equal(t, 100, target.HP)
	assert.Equal(t, StartingLife, gs.Players[2].Life)
}

func TestHeroDamageRequiresTargetOnCrowdedBoard(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	hero := installHero(gs, 1, 1, Effect{
		Keyword: KeywordHeroDamage,
		Params:  map[string]any{"amount": 300, "charge_cost": 1},
	})
	first := placeMonster(gs, 2, 0, monsterDef("first", 3, 200, 400))
	second := placeMonster(gs, 2, 1, monsterDef("second", 3, 200, 400))

	_, err := e.Apply(gs, 1, Action{Type: ActionActivateHeroAbility})
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonTargetRequired, rej.Reason)

	// The rejection happens before anything is spent.
	assert.Equal(t, 1, hero.HeroCharges)
	assert.Zero(t, gs.Players[1].Counters.HeroAbility)
	assert.Equal(t, 400, first.HP)
	assert.Equal(t, 400, second.HP)
	assert.Equal(t, StartingLife, gs.Players[2].Life)
}

func TestHeroAbilityInsufficientCharges(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	hero := installHero(gs, 1, 1, Effect{
		Keyword: KeywordHeroDamage,
		Params:  map[string]any{"amount": 300, "charge_cost": 2},
	})

	res, err := e.Apply(gs, 1, Action{Type: ActionActivateHeroAbility})
	require.NoError(t, err)

	// The activation is spent but the effect fizzles.
	assert.Equal(t, 1, hero.HeroCharges)
	assert.Equal(t, StartingLife, gs.Players[2].Life)
	assert.True(t, hasEvent(res.Events, EventEffectHeroNoCharges))
	assert.Equal(t, 1, gs.Players[1].Counters.HeroAbility)

	// And only once per turn either way.
	_, err = e.Apply(gs, 1, Action{Type: ActionActivateHeroAbility})
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonHeroAbilityLimit, rej.Reason)
}

func TestHeroFreezeAppliesTimedStatus(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	installHero(gs, 1, 3, Effect{
		Keyword: KeywordHeroFreeze,
		Params:  map[string]any{"charge_cost": 2, "duration": 2},
	})
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 400))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionActivateHeroAbility,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)

	assert.True(t, target.HasStatus(StatusFrozenCode))
	assert.False(t, target.CanAttack)
	assert.True(t, hasEvent(res.Events, EventEffectFreeze))
}

func TestHeroFreezeExpiryGrantsImmunityWindow(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	installHero(gs, 1, 3, Effect{
		Keyword: KeywordHeroFreeze,
		Params:  map[string]any{"charge_cost": 2, "duration": 1},
	})
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 400))

	_, err := e.Apply(gs, 1, Action{
		Type:                    ActionActivateHeroAbility,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)

	// Freeze expires at the controller's turn start, handing over to a
	// short immunity window.
	_, err = e.Apply(gs, 1, Action{Type: ActionEndTurn})
	require.NoError(t, err)

	assert.False(t, target.HasStatus(StatusFrozenCode))
	assert.True(t, target.HasStatus(StatusImmuneCode))
	assert.True(t, target.CanAttack)
}

func TestHeroSoulRend(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	installHero(gs, 1, 3, Effect{
		Keyword: KeywordHeroSoulRend,
		Params: map[string]any{
			"charge_cost":                  3,
			"if_target_hp_gt":              200,
			"buff_lowest_ally_hp_increase": 100,
		},
	})
	weakAlly := placeMonster(gs, 1, 0, monsterDef("weak", 2, 100, 150))
	placeMonster(gs, 1, 1, monsterDef("strong", 4, 400, 600))
	big := placeMonster(gs, 2, 0, monsterDef("big", 5, 500, 700))
	placeMonster(gs, 2, 1, monsterDef("small", 2, 100, 180))

	res, err := e.Apply(gs, 1, Action{Type: ActionActivateHeroAbility})
	require.NoError(t, err)

	// Auto-targets the highest-HP face-up enemy over the threshold.
	assert.Nil(t, gs.Players[2].MonsterZones[0])
	assert.Contains(t, gs.Players[2].Graveyard, big)
	assert.True(t, hasEvent(res.Events, EventMonsterDestroyed))

	// The lowest-HP ally gets shored up.
	assert.Equal(t, 250, weakAlly.HP)
	assert.True(t, hasEvent(res.Events, EventEffectBuffMonster))
}

func TestHeroSoulRendRejectsLowHPTarget(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	hero := installHero(gs, 1, 3, Effect{
		Keyword: KeywordHeroSoulRend,
		Params:  map[string]any{"charge_cost": 3, "if_target_hp_gt": 200},
	})
	small := placeMonster(gs, 2, 0, monsterDef("small", 2, 100, 180))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionActivateHeroAbility,
		TargetMonsterInstanceID: small.InstanceID,
	})
	require.NoError(t, err)

	assert.True(t, small.Alive())
	// Charges are not spent on an invalid target.
	assert.Equal(t, 3, hero.HeroCharges)
	assert.True(t, hasEvent(res.Events, EventEffectInvalidTarget))
}
