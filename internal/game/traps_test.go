package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterTrapDef(code string, reflect bool) CardDefinition {
	return trapDef(code, TriggerOnSpellCast, Effect{
		Keyword: KeywordCounterSpell,
		Params:  map[string]any{"reflect": reflect},
	})
}

func damageSpellDef(code string, amount int) CardDefinition {
	return spellDef(code, Effect{
		Keyword: KeywordDamageMonster,
		Params:  map[string]any{"amount": amount},
	})
}

func TestSpellCastOffersTrapDecision(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, counterTrapDef("nullify", false))
	spell := giveCard(gs, 1, damageSpellDef("bolt", 300))
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 500))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)

	pd := res.Pending
	assert.Same(t, gs.Pending, pd)
	assert.NotEmpty(t, pd.ID)
	assert.Equal(t, 2, pd.DefendingPlayer)
	assert.Equal(t, TriggerOnSpellCast, pd.Trigger)
	assert.Equal(t, []string{trap.InstanceID}, pd.EligibleTraps)
	require.NotNil(t, pd.Suspended)
	assert.Equal(t, 1, pd.Suspended.Player)

	// Nothing resolved yet: spell in hand, target untouched.
	assert.Len(t, gs.Players[1].Hand, 1)
	assert.Equal(t, 500, target.HP)
	assert.True(t, hasEvent(res.Events, EventTrapTriggerOffered))

	// The caster cannot act past a pending decision.
	_, err = e.Apply(gs, 1, Action{Type: ActionEndTurn})
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonDecisionPending, rej.Reason)
}

func TestDeclineTrapResumesSpell(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	placeTrap(gs, 2, counterTrapDef("nullify", false))
	spell := giveCard(gs, 1, damageSpellDef("bolt", 300))
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 500))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)

	out, err := e.ResolveTrapDecision(gs, 2, res.Pending.ID, "", false)
	require.NoError(t, err)

	assert.Nil(t, gs.Pending)
	assert.Equal(t, 200, target.HP)
	assert.Contains(t, gs.Players[1].Graveyard, spell)
	assert.True(t, hasEvent(out.Events, EventTrapDeclined))
	assert.True(t, hasEvent(out.Events, EventPlaySpell))
	// Declining consumed the offer: the resumed cast is not re-offered.
	assert.False(t, hasEvent(out.Events, EventTrapTriggerOffered))
}

func TestActivateCounterTrapCancelsSpell(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, counterTrapDef("nullify", false))
	spell := giveCard(gs, 1, damageSpellDef("bolt", 300))
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 500))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)

	out, err := e.ResolveTrapDecision(gs, 2, res.Pending.ID, trap.InstanceID, true)
	require.NoError(t, err)

	assert.True(t, out.Cancelled)
	assert.Nil(t, gs.Pending)
	// Spell never resolved but still hits the graveyard and spends the play.
	assert.Equal(t, 500, target.HP)
	assert.Contains(t, gs.Players[1].Graveyard, spell)
	assert.Equal(t, 1, gs.Players[1].Counters.SpellsTraps)
	// The trap is spent too.
	assert.Contains(t, gs.Players[2].Graveyard, trap)
	for _, z := range gs.Players[2].SpellTrapZones {
		assert.Nil(t, z)
	}
	assert.True(t, hasEvent(out.Events, EventActivateTrap))
	assert.True(t, hasEvent(out.Events, EventActionCancelled))
}

func TestCounterTrapCancellationSkipsRemainingEffects(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, trapDef("spite-seal", TriggerOnSpellCast,
		Effect{Keyword: KeywordCounterSpell},
		Effect{Keyword: KeywordDamagePlayer, Params: map[string]any{"amount": 100}},
	))
	spell := giveCard(gs, 1, damageSpellDef("bolt", 300))
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 500))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)

	out, err := e.ResolveTrapDecision(gs, 2, res.Pending.ID, trap.InstanceID, true)
	require.NoError(t, err)

	assert.True(t, out.Cancelled)
	// The counter ends resolution; the damage rider listed after it never
	// fires against the caster.
	assert.Equal(t, StartingLife, gs.Players[1].Life)
	assert.Equal(t, 500, target.HP)
}

func TestReflectTrapTurnsSpellOnCaster(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, counterTrapDef("mirror", true))
	spell := giveCard(gs, 1, damageSpellDef("bolt", 300))
	own := placeMonster(gs, 1, 0, monsterDef("own", 3, 200, 600))
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 500))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)

	out, err := e.ResolveTrapDecision(gs, 2, res.Pending.ID, trap.InstanceID, true)
	require.NoError(t, err)

	assert.True(t, out.Cancelled)
	assert.True(t, hasEvent(out.Events, EventSpellReflected))
	// Mirrored onto the caster's monster in the same zone; the intended
	// target is untouched.
	assert.Equal(t, 300, own.HP)
	assert.Equal(t, 500, target.HP)
	assert.Contains(t, gs.Players[1].Graveyard, spell)
}

func TestStaleAndForeignDecisionRejected(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, counterTrapDef("nullify", false))
	spell := giveCard(gs, 1, damageSpellDef("bolt", 100))
	placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 500))

	res, err := e.Apply(gs, 1, Action{Type: ActionPlaySpell, CardInstanceID: spell.InstanceID})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)

	var rej *RejectError

	_, err = e.ResolveTrapDecision(gs, 2, "bogus-id", trap.InstanceID, true)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonStaleDecision, rej.Reason)

	_, err = e.ResolveTrapDecision(gs, 1, res.Pending.ID, trap.InstanceID, true)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonNotYourDecision, rej.Reason)

	_, err = e.ResolveTrapDecision(gs, 2, res.Pending.ID, "not-a-trap", true)
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonTrapNotEligible, rej.Reason)

	// The decision survives every rejection.
	require.NotNil(t, gs.Pending)
	assert.Equal(t, res.Pending.ID, gs.Pending.ID)
}

func TestResolveWithoutPendingRejected(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()

	_, err := e.ResolveTrapDecision(gs, 1, "any", "any", false)
	var rej *RejectError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, ReasonNoPendingDecision, rej.Reason)
}

func TestNegateAttackTrap(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, trapDef("trip-wire", TriggerOnAttackDeclared, Effect{
		Keyword: KeywordNegateAttack,
	}))
	atk := placeMonster(gs, 1, 0, monsterDef("raider", 4, 400, 400))
	def := placeMonster(gs, 2, 0, monsterDef("guard", 3, 100, 300))

	res, err := e.Apply(gs, 1, Action{
		Type:               ActionAttackMonster,
		AttackerInstanceID: atk.InstanceID,
		DefenderInstanceID: def.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)
	assert.Equal(t, TriggerOnAttackDeclared, res.Pending.Trigger)

	out, err := e.ResolveTrapDecision(gs, 2, res.Pending.ID, trap.InstanceID, true)
	require.NoError(t, err)

	assert.True(t, out.Cancelled)
	// No combat happened.
	assert.Equal(t, 400, atk.HP)
	assert.Equal(t, 300, def.HP)
	assert.Contains(t, gs.Players[2].Graveyard, trap)
}

func TestPreventDestructionFloorsDefender(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, trapDef("last-stand", TriggerOnAllyDestroyed, Effect{
		Keyword: KeywordPreventDestroy,
		Params:  map[string]any{"floor": 1},
	}))
	atk := placeMonster(gs, 1, 0, monsterDef("crusher", 5, 700, 900))
	def := placeMonster(gs, 2, 0, monsterDef("chaff", 1, 50, 200))

	res, err := e.Apply(gs, 1, Action{
		Type:               ActionAttackMonster,
		AttackerInstanceID: atk.InstanceID,
		DefenderInstanceID: def.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)
	assert.Equal(t, TriggerOnAllyDestroyed, res.Pending.Trigger)

	out, err := e.ResolveTrapDecision(gs, 2, res.Pending.ID, trap.InstanceID, true)
	require.NoError(t, err)

	// The defender survives at the floor, so no overflow spills through.
	assert.True(t, def.Alive())
	assert.Equal(t, 1, def.HP)
	assert.Same(t, def, gs.Players[2].MonsterZones[0])
	assert.Equal(t, StartingLife, gs.Players[2].Life)
	assert.False(t, hasEvent(out.Events, EventOverflowDamage))
	// The attacker still takes the strike-back.
	assert.Equal(t, 850, atk.HP)
}

func TestDeclinedDestructionTrapLetsMonsterDie(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	placeTrap(gs, 2, trapDef("last-stand", TriggerOnAllyDestroyed, Effect{
		Keyword: KeywordPreventDestroy,
	}))
	atk := placeMonster(gs, 1, 0, monsterDef("crusher", 5, 700, 900))
	def := placeMonster(gs, 2, 0, monsterDef("chaff", 1, 50, 200))

	res, err := e.Apply(gs, 1, Action{
		Type:               ActionAttackMonster,
		AttackerInstanceID: atk.InstanceID,
		DefenderInstanceID: def.InstanceID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Pending)

	out, err := e.ResolveTrapDecision(gs, 2, res.Pending.ID, "", false)
	require.NoError(t, err)

	assert.False(t, def.Alive())
	assert.Contains(t, gs.Players[2].Graveyard, def)
	assert.Equal(t, StartingLife-500, gs.Players[2].Life)
	assert.True(t, hasEvent(out.Events, EventOverflowDamage))
}

func TestTrapOnlyOfferedForMatchingTrigger(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	placeTrap(gs, 2, counterTrapDef("nullify", false))
	atk := placeMonster(gs, 1, 0, monsterDef("raider", 4, 400, 400))

	// A spell-cast trap does not interrupt an attack.
	res, err := e.Apply(gs, 1, Action{
		Type:               ActionAttackPlayer,
		AttackerInstanceID: atk.InstanceID,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Pending)
	assert.Equal(t, StartingLife-400, gs.Players[2].Life)
}

func TestFaceUpTrapNotEligible(t *testing.T) {
	e := newTestEngine()
	gs := newTestState()
	trap := placeTrap(gs, 2, counterTrapDef("spent", false))
	trap.FaceDown = false
	spell := giveCard(gs, 1, damageSpellDef("bolt", 100))
	target := placeMonster(gs, 2, 0, monsterDef("victim", 3, 200, 500))

	res, err := e.Apply(gs, 1, Action{
		Type:                    ActionPlaySpell,
		CardInstanceID:          spell.InstanceID,
		TargetMonsterInstanceID: target.InstanceID,
	})
	require.NoError(t, err)
	assert.Nil(t, res.Pending)
	assert.Equal(t, 400, target.HP)
}
