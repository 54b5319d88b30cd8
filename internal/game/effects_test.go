package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEffectFoldsAliases(t *testing.T) {
	eff := NormalizeEffect(Effect{
		Keyword: "spell_damage_monster",
		Params: map[string]any{
			"Damage":       300,
			"atk_increase": 50,
			"STATUS":       "frozen",
		},
	})

	assert.Equal(t, "SPELL_DAMAGE_MONSTER", eff.Keyword)
	assert.Equal(t, 300, paramInt(eff, "amount", 0))
	assert.Equal(t, 50, paramInt(eff, "atk", 0))
	assert.Equal(t, "frozen", paramString(eff, "status_code", ""))
}

func TestNormalizeEffectCanonicalWinsOverAlias(t *testing.T) {
	eff := NormalizeEffect(Effect{
		Keyword: "SPELL_DAMAGE_MONSTER",
		Params: map[string]any{
			"amount": 200,
			"damage": 999,
		},
	})
	assert.Equal(t, 200, paramInt(eff, "amount", 0))
}

func TestParamIntAcceptsDecodedNumberShapes(t *testing.T) {
	for _, v := range []any{150, int64(150), float64(150)} {
		eff := Effect{Params: map[string]any{"amount": v}}
		assert.Equal(t, 150, paramInt(eff, "amount", 0))
	}
	assert.Equal(t, 9, paramInt(Effect{Params: map[string]any{"amount": "nope"}}, "amount", 9))
	assert.Equal(t, 9, paramInt(Effect{}, "amount", 9))
}

func TestUnknownKeywordLoggedAndSkipped(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	spell := giveCard(gs, 1, spellDef("glitch",
		Effect{Keyword: "NO_SUCH_KEYWORD"},
		Effect{Keyword: KeywordDamagePlayer, Params: map[string]any{"amount": 100}},
	))

	res, err := e.Apply(gs, 1, Action{Type: ActionPlaySpell, CardInstanceID: spell.InstanceID})
	require.NoError(t, err)

	// The unknown keyword does not abort the rest of the list.
	assert.True(t, hasEvent(res.Events, EventEffectUnknownKeyword))
	assert.Equal(t, StartingLife-100, gs.Players[2].Life)
}

func TestSpellDamagePlayerDefaultsToOpponent(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	spell := giveCard(gs, 1, spellDef("zap", Effect{
		Keyword: KeywordDamagePlayer,
		Params:  map[string]any{"amount": 250},
	}))

	_, err := e.Apply(gs, 1, Action{Type: ActionPlaySpell, CardInstanceID: spell.InstanceID})
	require.NoError(t, err)
	assert.Equal(t, StartingLife-250, gs.Players[2].Life)
	assert.Equal(t, StartingLife, gs.Players[1].Life)
}

func TestSpellRequiresLivingTarget(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	spell := giveCard(gs, 1, damageSpellDef("bolt", 300))

	_, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: "gone",
	})
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonTargetRequired, rej.Reason)
	assert.Len(t, gs.Players[1].Hand, 1)
}

func TestEffectDamageOverflowParam(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	target := placeMonster(gs, 2, 0, monsterDef("chaff", 1, 50, 100))
	spell := giveCard(gs, 1, spellDef("barrage", Effect{
		Keyword: KeywordDamageMonster,
		Params:  map[string]any{"amount": 400, "overflow_to_player": true},
	}))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)

	assert.Nil(t, gs.Players[2].MonsterZones[0])
	assert.Equal(t, StartingLife-300, gs.Players[2].Life)
	assert.True(t, hasEvent(res.Events, EventOverflowDamage))
	assert.True(t, hasEvent(res.Events, EventMonsterDestroyed))
}

func TestStatusImmunityBlocksApplication(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	target := placeMonster(gs, 2, 0, monsterDef("ward", 3, 200, 400))
	target.ApplyStatus(StatusEntry{Code: StatusImmuneCode, DurationType: DurationPermanent})
	spell := giveCard(gs, 1, spellDef("chill", Effect{
		Keyword: KeywordApplyStatus,
		Params:  map[string]any{"status_code": StatusFrozenCode, "duration_type": string(DurationFixedTurns), "duration": 2},
	}))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)

	assert.False(t, target.HasStatus(StatusFrozenCode))
	assert.True(t, target.CanAttack)
	assert.True(t, hasEvent(res.Events, EventEffectStatusBlocked))
}

func TestReflectMarkerBouncesStatusToCasterSide(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	mirror := placeMonster(gs, 2, 0, CardDefinition{
		Code: "mirror", Name: "mirror", Kind: KindMonster, Stars: 3, ATK: 100, HP: 300,
		Effects: []Effect{{Keyword: KeywordReflectIncomingStatus}},
	})
	own := placeMonster(gs, 1, 0, monsterDef("own", 2, 100, 300))
	spell := giveCard(gs, 1, spellDef("chill", Effect{
		Keyword: KeywordApplyStatus,
		Params:  map[string]any{"status_code": StatusFrozenCode, "duration_type": string(DurationFixedTurns), "duration": 1},
	}))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: mirror.InstanceID,
	})
	require.NoError(t, err)

	assert.False(t, mirror.HasStatus(StatusFrozenCode))
	assert.True(t, own.HasStatus(StatusFrozenCode))
	assert.True(t, hasEvent(res.Events, EventEffectStatusReflected))
}

func TestDuplicateMarkerCopiesStatusToAlly(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	carrier := placeMonster(gs, 2, 0, CardDefinition{
		Code: "carrier", Name: "carrier", Kind: KindMonster, Stars: 3, ATK: 100, HP: 300,
		Effects: []Effect{{Keyword: KeywordDuplicateIncomingStatus}},
	})
	ally := placeMonster(gs, 2, 1, monsterDef("ally", 2, 100, 300))
	spell := giveCard(gs, 1, spellDef("chill", Effect{
		Keyword: KeywordApplyStatus,
		Params:  map[string]any{"status_code": StatusFrozenCode, "duration_type": string(DurationFixedTurns), "duration": 1},
	}))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: carrier.InstanceID,
	})
	require.NoError(t, err)

	assert.True(t, carrier.HasStatus(StatusFrozenCode))
	assert.True(t, ally.HasStatus(StatusFrozenCode))
	assert.False(t, ally.CanAttack)
	assert.True(t, hasEvent(res.Events, EventEffectStatusDuplicated))
}
