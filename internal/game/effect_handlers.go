package game

// Stock keyword handlers. Each resolves one data-described behavior; cards
// compose them through their effect lists.

const (
	KeywordDamageMonster  = "SPELL_DAMAGE_MONSTER"
	KeywordDamagePlayer   = "SPELL_DAMAGE_PLAYER"
	KeywordHealMonster    = "SPELL_HEAL_MONSTER"
	KeywordHealPlayer     = "SPELL_HEAL_PLAYER"
	KeywordBuffMonster    = "SPELL_BUFF_MONSTER"
	KeywordApplyStatus    = "SPELL_APPLY_STATUS"
	KeywordDrawCards      = "SPELL_DRAW_CARDS"
	KeywordCleanseMonster = "SPELL_CLEANSE_MONSTER"
	KeywordHaste          = "SPELL_HASTE"
	KeywordDestroyMonster = "SPELL_DESTROY_MONSTER"
	KeywordCounterSpell   = "TRAP_COUNTER_SPELL"
	KeywordNegateAttack   = "TRAP_NEGATE_ATTACK"
	KeywordReflectDamage  = "TRAP_REFLECT_DAMAGE"
	KeywordTrapStatus     = "TRAP_APPLY_STATUS"
	KeywordPreventDestroy = "TRAP_PREVENT_DESTRUCTION"
	KeywordHeroDamage     = "HERO_ACTIVE_DAMAGE"
	KeywordHeroFreeze     = "HERO_ACTIVE_FREEZE"
	KeywordHeroSoulRend   = "HERO_ACTIVE_SOUL_REND"

	// Board-side markers consulted when a status lands on their holder,
	// never resolved directly.
	KeywordReflectIncomingStatus   = "SPELL_REFLECT_INCOMING_STATUS"
	KeywordDuplicateIncomingStatus = "SPELL_DUPLICATE_INCOMING_STATUS"
)

func init() {
	RegisterKeyword(KeywordDamageMonster, handleDamageMonster)
	RegisterKeyword(KeywordDamagePlayer, handleDamagePlayer)
	RegisterKeyword(KeywordHealMonster, handleHealMonster)
	RegisterKeyword(KeywordHealPlayer, handleHealPlayer)
	RegisterKeyword(KeywordBuffMonster, handleBuffMonster)
	RegisterKeyword(KeywordApplyStatus, handleApplyStatus)
	RegisterKeyword(KeywordDrawCards, handleDrawCards)
	RegisterKeyword(KeywordCleanseMonster, handleCleanseMonster)
	RegisterKeyword(KeywordHaste, handleHaste)
	RegisterKeyword(KeywordDestroyMonster, handleDestroyMonster)
	RegisterKeyword(KeywordCounterSpell, handleCounterSpell)
	RegisterKeyword("SPELL_COUNTER_SPELL", handleCounterSpell)
	RegisterKeyword(KeywordNegateAttack, handleNegateAttack)
	RegisterKeyword(KeywordReflectDamage, handleReflectDamage)
	RegisterKeyword(KeywordTrapStatus, handleTrapStatus)
	RegisterKeyword(KeywordPreventDestroy, handlePreventDestroy)
	RegisterKeyword(KeywordHeroDamage, handleHeroDamage)
	RegisterKeyword(KeywordHeroFreeze, handleHeroFreeze)
	RegisterKeyword(KeywordHeroSoulRend, handleHeroSoulRend)
	RegisterKeyword(KeywordReflectIncomingStatus, handleMarker)
	RegisterKeyword(KeywordDuplicateIncomingStatus, handleMarker)
}

func handleMarker(*Engine, *EffectContext, Effect, *EffectResult) {}

// targetMonster returns the explicit monster target, or nil with a logged
// EFFECT_NO_TARGET when the slot is empty or no target was named.
func targetMonster(ctx *EffectContext) (*BoardCoord, *CardInstance) {
	gs := ctx.State
	if ctx.Targets.Monster != nil {
		if m := gs.MonsterAt(*ctx.Targets.Monster); m != nil {
			return ctx.Targets.Monster, m
		}
	}
	gs.AppendLog(Event{
		Type:   EventEffectNoTarget,
		Player: ctx.SourcePlayer,
		Turn:   gs.Turn,
	})
	return nil, nil
}

func cardHasKeyword(card *CardInstance, keyword string) bool {
	for _, eff := range card.Effects {
		if normalizeKeyword(eff.Keyword) == keyword {
			return true
		}
	}
	return false
}

// applyStatusToMonster lands a status on a board monster, honoring the
// holder's immunity, reflect, and duplicate markers.
func (e *Engine) applyStatusToMonster(gs *GameState, sourcePlayer int, coord *BoardCoord, target *CardInstance, entry StatusEntry) {
	logAt := func(t EventType, c *BoardCoord, card *CardInstance, st StatusEntry) {
		gs.AppendLog(Event{
			Type:           t,
			Player:         sourcePlayer,
			Turn:           gs.Turn,
			CardInstanceID: card.InstanceID,
			CardName:       card.Name,
			Board:          c,
			Status:         &st,
		})
	}

	if cardHasKeyword(target, KeywordReflectIncomingStatus) {
		logAt(EventEffectStatusReflected, coord, target, entry)
		side := gs.Player(sourcePlayer)
		for zone, m := range side.MonsterZones {
			if m != nil && m.Alive() {
				c := &BoardCoord{Player: sourcePlayer, Zone: zone}
				if m.ApplyStatus(entry) {
					logAt(EventEffectStatusApplied, c, m, entry)
				} else {
					logAt(EventEffectStatusBlocked, c, m, entry)
				}
				return
			}
		}
		return
	}

	if target.ApplyStatus(entry) {
		if entry.Code == StatusFrozenCode {
			target.CanAttack = false
		}
		logAt(EventEffectStatusApplied, coord, target, entry)
	} else {
		logAt(EventEffectStatusBlocked, coord, target, entry)
		return
	}

	if cardHasKeyword(target, KeywordDuplicateIncomingStatus) {
		side := gs.Player(coord.Player)
		for zone, m := range side.MonsterZones {
			if m == nil || !m.Alive() || m.InstanceID == target.InstanceID {
				continue
			}
			c := &BoardCoord{Player: coord.Player, Zone: zone}
			if m.ApplyStatus(entry) {
				if entry.Code == StatusFrozenCode {
					m.CanAttack = false
				}
				logAt(EventEffectStatusDuplicated, c, m, entry)
			}
			break
		}
	}
}

func statusFromParams(eff Effect) (StatusEntry, bool) {
	code := paramString(eff, "status_code", "")
	if code == "" {
		return StatusEntry{}, false
	}
	entry := StatusEntry{
		Code:          normalizeKeyword(code),
		DurationType:  DurationType(normalizeKeyword(paramString(eff, "duration_type", string(DurationPermanent)))),
		DurationValue: paramInt(eff, "duration", 0),
	}
	if entry.DurationType == DurationFixedTurns && entry.DurationValue <= 0 {
		entry.DurationValue = 1
	}
	return entry, true
}

// damageBoardMonster applies effect damage, spilling the excess onto the
// controller's life when the params (or the caller) say so, and clears the
// slot on a kill.
func (e *Engine) damageBoardMonster(gs *GameState, sourcePlayer int, coord *BoardCoord, target *CardInstance, amount int, overflow bool) {
	before, after := target.AdjustHP(-amount)
	gs.AppendLog(Event{
		Type:           EventEffectDamageMonster,
		Player:         sourcePlayer,
		Turn:           gs.Turn,
		CardInstanceID: target.InstanceID,
		CardName:       target.Name,
		Board:          coord,
		Amount:         amount,
		HPBefore:       before,
		HPAfter:        after,
	})
	if after > 0 {
		return
	}
	if overflow && amount > before {
		spill := amount - before
		lb, la := gs.Player(coord.Player).DamageLife(spill)
		gs.AppendLog(Event{
			Type:         EventOverflowDamage,
			Player:       sourcePlayer,
			Turn:         gs.Turn,
			TargetPlayer: coord.Player,
			Amount:       spill,
			HPBefore:     lb,
			HPAfter:      la,
		})
	}
	destroyed := gs.DestroyMonster(*coord)
	if destroyed != nil {
		gs.AppendLog(Event{
			Type:           EventMonsterDestroyed,
			Player:         coord.Player,
			Turn:           gs.Turn,
			CardInstanceID: destroyed.InstanceID,
			CardName:       destroyed.Name,
			Board:          coord,
		})
	}
}

func handleDamageMonster(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	coord, target := targetMonster(ctx)
	if target == nil {
		return
	}
	amount := paramInt(eff, "amount", 0)
	overflow := paramBool(eff, "overflow_to_player", false)
	e.damageBoardMonster(ctx.State, ctx.SourcePlayer, coord, target, amount, overflow)
}

func handleDamagePlayer(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	gs := ctx.State
	target := ctx.Targets.Player
	if target != 1 && target != 2 {
		target = OpponentIndex(ctx.SourcePlayer)
	}
	amount := paramInt(eff, "amount", 0)
	before, after := gs.Player(target).DamageLife(amount)
	gs.AppendLog(Event{
		Type:         EventEffectDamagePlayer,
		Player:       ctx.SourcePlayer,
		Turn:         gs.Turn,
		TargetPlayer: target,
		Amount:       amount,
		HPBefore:     before,
		HPAfter:      after,
	})
}

func handleHealMonster(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	coord, target := targetMonster(ctx)
	if target == nil {
		return
	}
	before, after := target.AdjustHP(paramInt(eff, "amount", 0))
	ctx.State.AppendLog(Event{
		Type:           EventEffectHealMonster,
		Player:         ctx.SourcePlayer,
		Turn:           ctx.State.Turn,
		CardInstanceID: target.InstanceID,
		CardName:       target.Name,
		Board:          coord,
		Amount:         after - before,
		HPBefore:       before,
		HPAfter:        after,
	})
}

func handleHealPlayer(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	gs := ctx.State
	target := ctx.Targets.Player
	if target != 1 && target != 2 {
		target = ctx.SourcePlayer
	}
	before, after := gs.Player(target).HealLife(paramInt(eff, "amount", 0))
	gs.AppendLog(Event{
		Type:         EventEffectHealPlayer,
		Player:       ctx.SourcePlayer,
		Turn:         gs.Turn,
		TargetPlayer: target,
		Amount:       after - before,
		HPBefore:     before,
		HPAfter:      after,
	})
}

func handleBuffMonster(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	gs := ctx.State
	atk := paramInt(eff, "atk", 0)
	hp := paramInt(eff, "hp", 0)
	buff := func(coord *BoardCoord, m *CardInstance) {
		atkBefore, hpBefore := m.ATK, m.HP
		m.Buff(atk, hp)
		gs.AppendLog(Event{
			Type:           EventEffectBuffMonster,
			Player:         ctx.SourcePlayer,
			Turn:           gs.Turn,
			CardInstanceID: m.InstanceID,
			CardName:       m.Name,
			Board:          coord,
			ATKBefore:      atkBefore,
			ATKAfter:       m.ATK,
			HPBefore:       hpBefore,
			HPAfter:        m.HP,
		})
	}

	switch paramString(eff, "target", "") {
	case "ALL_MONSTERS":
		for _, idx := range []int{1, 2} {
			for zone, m := range gs.Player(idx).MonsterZones {
				if m != nil && m.Alive() {
					buff(&BoardCoord{Player: idx, Zone: zone}, m)
				}
			}
		}
	case "OWN_MONSTERS":
		for zone, m := range gs.Player(ctx.SourcePlayer).MonsterZones {
			if m != nil && m.Alive() {
				buff(&BoardCoord{Player: ctx.SourcePlayer, Zone: zone}, m)
			}
		}
	default:
		coord, target := targetMonster(ctx)
		if target == nil {
			return
		}
		if coord.Player != ctx.SourcePlayer {
			gs.AppendLog(Event{
				Type:           EventEffectInvalidTarget,
				Player:         ctx.SourcePlayer,
				Turn:           gs.Turn,
				CardInstanceID: target.InstanceID,
				Board:          coord,
			})
			return
		}
		buff(coord, target)
	}
}

func handleApplyStatus(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	entry, ok := statusFromParams(eff)
	if !ok {
		return
	}
	coord, target := targetMonster(ctx)
	if target == nil {
		return
	}
	e.applyStatusToMonster(ctx.State, ctx.SourcePlayer, coord, target, entry)
}

func handleDrawCards(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	amount := paramInt(eff, "amount", 1)
	ctx.State.AppendLog(Event{
		Type:   EventEffectDrawCards,
		Player: ctx.SourcePlayer,
		Turn:   ctx.State.Turn,
		Amount: amount,
	})
	e.drawCards(ctx.State, ctx.SourcePlayer, amount)
}

func handleCleanseMonster(e *Engine, ctx *EffectContext, _ Effect, _ *EffectResult) {
	coord, target := targetMonster(ctx)
	if target == nil {
		return
	}
	cleared := len(target.Statuses)
	target.Statuses = nil
	ctx.State.AppendLog(Event{
		Type:           EventEffectCleanseMonster,
		Player:         ctx.SourcePlayer,
		Turn:           ctx.State.Turn,
		CardInstanceID: target.InstanceID,
		CardName:       target.Name,
		Board:          coord,
		Amount:         cleared,
	})
}

func handleHaste(e *Engine, ctx *EffectContext, _ Effect, _ *EffectResult) {
	gs := ctx.State
	grant := func(coord *BoardCoord, m *CardInstance) {
		if !m.Alive() || m.HasStatus(StatusFrozenCode) {
			return
		}
		m.FaceDown = false
		m.CanAttack = true
		gs.AppendLog(Event{
			Type:           EventEffectHaste,
			Player:         ctx.SourcePlayer,
			Turn:           gs.Turn,
			CardInstanceID: m.InstanceID,
			CardName:       m.Name,
			Board:          coord,
		})
	}
	if ctx.Targets.Monster != nil {
		coord, target := targetMonster(ctx)
		if target == nil {
			return
		}
		grant(coord, target)
		return
	}
	for zone, m := range gs.Player(ctx.SourcePlayer).MonsterZones {
		if m != nil {
			grant(&BoardCoord{Player: ctx.SourcePlayer, Zone: zone}, m)
		}
	}
}

func handleDestroyMonster(e *Engine, ctx *EffectContext, _ Effect, _ *EffectResult) {
	coord, target := targetMonster(ctx)
	if target == nil {
		return
	}
	gs := ctx.State
	gs.AppendLog(Event{
		Type:           EventEffectDestroyMonster,
		Player:         ctx.SourcePlayer,
		Turn:           gs.Turn,
		CardInstanceID: target.InstanceID,
		CardName:       target.Name,
		Board:          coord,
	})
	destroyed := gs.DestroyMonster(*coord)
	gs.AppendLog(Event{
		Type:           EventMonsterDestroyed,
		Player:         coord.Player,
		Turn:           gs.Turn,
		CardInstanceID: destroyed.InstanceID,
		CardName:       destroyed.Name,
		Board:          coord,
	})
}

func handleCounterSpell(e *Engine, ctx *EffectContext, eff Effect, res *EffectResult) {
	if ctx.Trigger != TriggerOnSpellCast {
		return
	}
	res.Cancelled = true
	res.Reflect = paramBool(eff, "reflect", false)
	ctx.State.AppendLog(Event{
		Type:           EventEffectCounterSpell,
		Player:         ctx.SourcePlayer,
		Turn:           ctx.State.Turn,
		CardInstanceID: ctx.Source.InstanceID,
		CardName:       ctx.Source.Name,
	})
}

func handleNegateAttack(e *Engine, ctx *EffectContext, eff Effect, res *EffectResult) {
	if ctx.Trigger != TriggerOnAttackDeclared || ctx.TriggerEvent == nil {
		return
	}
	gs := ctx.State
	res.Cancelled = true
	gs.AppendLog(Event{
		Type:           EventEffectNegateAttack,
		Player:         ctx.SourcePlayer,
		Turn:           gs.Turn,
		CardInstanceID: ctx.Source.InstanceID,
		CardName:       ctx.Source.Name,
		AttackerID:     ctx.TriggerEvent.AttackerID,
	})
	if !paramBool(eff, "reflect_damage", false) {
		return
	}
	amount := paramInt(eff, "amount", ctx.TriggerEvent.AttackerATK)
	before, after := gs.Player(ctx.TriggerEvent.AttackingPlayer).DamageLife(amount)
	gs.AppendLog(Event{
		Type:         EventEffectReflectDamage,
		Player:       ctx.SourcePlayer,
		Turn:         gs.Turn,
		TargetPlayer: ctx.TriggerEvent.AttackingPlayer,
		Amount:       amount,
		HPBefore:     before,
		HPAfter:      after,
	})
}

func handleReflectDamage(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	if ctx.Trigger != TriggerOnAttackDeclared || ctx.TriggerEvent == nil {
		return
	}
	gs := ctx.State
	pct := paramInt(eff, "percentage", 100)
	amount := ctx.TriggerEvent.AttackerATK * pct / 100
	if amount <= 0 {
		return
	}
	before, after := gs.Player(ctx.TriggerEvent.AttackingPlayer).DamageLife(amount)
	gs.AppendLog(Event{
		Type:         EventEffectReflectDamage,
		Player:       ctx.SourcePlayer,
		Turn:         gs.Turn,
		TargetPlayer: ctx.TriggerEvent.AttackingPlayer,
		Amount:       amount,
		HPBefore:     before,
		HPAfter:      after,
	})
}

func handleTrapStatus(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	if ctx.TriggerEvent == nil || ctx.TriggerEvent.AttackerID == "" {
		return
	}
	entry, ok := statusFromParams(eff)
	if !ok {
		return
	}
	coord, target := ctx.State.FindMonster(ctx.TriggerEvent.AttackerID)
	if target == nil {
		return
	}
	e.applyStatusToMonster(ctx.State, ctx.SourcePlayer, coord, target, entry)
}

func handlePreventDestroy(e *Engine, ctx *EffectContext, eff Effect, res *EffectResult) {
	if ctx.Trigger != TriggerOnAllyDestroyed || ctx.TriggerEvent == nil || ctx.TriggerEvent.MonsterID == "" {
		return
	}
	floor := paramInt(eff, "floor", 1)
	res.grantFloor(ctx.TriggerEvent.MonsterID, floor)
	ctx.State.AppendLog(Event{
		Type:           EventEffectPreventDestroy,
		Player:         ctx.SourcePlayer,
		Turn:           ctx.State.Turn,
		CardInstanceID: ctx.TriggerEvent.MonsterID,
		Board:          ctx.TriggerEvent.Board,
		Amount:         floor,
	})
}

// spendHeroCharges deducts the ability's charge cost, logging and refusing
// when the hero has not accrued enough.
func spendHeroCharges(gs *GameState, player int, hero *CardInstance, cost int) bool {
	if hero.HeroCharges < cost {
		gs.AppendLog(Event{
			Type:           EventEffectHeroNoCharges,
			Player:         player,
			Turn:           gs.Turn,
			CardInstanceID: hero.InstanceID,
			CardName:       hero.Name,
			Amount:         cost,
		})
		return false
	}
	hero.HeroCharges -= cost
	gs.AppendLog(Event{
		Type:           EventEffectHeroSpendCharge,
		Player:         player,
		Turn:           gs.Turn,
		CardInstanceID: hero.InstanceID,
		CardName:       hero.Name,
		Amount:         cost,
	})
	return true
}

func handleHeroDamage(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	gs := ctx.State
	if !spendHeroCharges(gs, ctx.SourcePlayer, ctx.Source, paramInt(eff, "charge_cost", 1)) {
		return
	}
	amount := paramInt(eff, "amount", 0)
	if ctx.Targets.Monster != nil {
		if target := gs.MonsterAt(*ctx.Targets.Monster); target != nil {
			// Hero damage always spills.
			e.damageBoardMonster(gs, ctx.SourcePlayer, ctx.Targets.Monster, target, amount, true)
			return
		}
	}
	opp := OpponentIndex(ctx.SourcePlayer)
	before, after := gs.Player(opp).DamageLife(amount)
	gs.AppendLog(Event{
		Type:         EventEffectDamagePlayer,
		Player:       ctx.SourcePlayer,
		Turn:         gs.Turn,
		TargetPlayer: opp,
		Amount:       amount,
		HPBefore:     before,
		HPAfter:      after,
	})
}

func handleHeroFreeze(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	gs := ctx.State
	coord, target := targetMonster(ctx)
	if target == nil {
		return
	}
	if !spendHeroCharges(gs, ctx.SourcePlayer, ctx.Source, paramInt(eff, "charge_cost", 2)) {
		return
	}
	entry := StatusEntry{
		Code:          StatusFrozenCode,
		DurationType:  DurationFixedTurns,
		DurationValue: paramInt(eff, "duration", 2),
		OnExpire: &StatusEntry{
			Code:         StatusImmuneCode,
			DurationType: DurationUntilControllerNextTurn,
		},
	}
	e.applyStatusToMonster(gs, ctx.SourcePlayer, coord, target, entry)
	gs.AppendLog(Event{
		Type:           EventEffectFreeze,
		Player:         ctx.SourcePlayer,
		Turn:           gs.Turn,
		CardInstanceID: target.InstanceID,
		CardName:       target.Name,
		Board:          coord,
	})
}

// handleHeroSoulRend rips a beefy face-up enemy monster off the board and
// shores up the controller's weakest ally. Picks the highest-HP eligible
// enemy when no explicit target is given.
func handleHeroSoulRend(e *Engine, ctx *EffectContext, eff Effect, _ *EffectResult) {
	gs := ctx.State
	hpThreshold := paramInt(eff, "if_target_hp_gt", 200)
	needFaceUp := paramBool(eff, "target_face_up", true)
	oppIdx := OpponentIndex(ctx.SourcePlayer)

	var coord *BoardCoord
	var target *CardInstance
	if ctx.Targets.Monster != nil {
		if m := gs.MonsterAt(*ctx.Targets.Monster); m != nil && ctx.Targets.Monster.Player == oppIdx {
			coord, target = ctx.Targets.Monster, m
		}
	} else {
		for zone, m := range gs.Player(oppIdx).MonsterZones {
			if m == nil || !m.Alive() || (needFaceUp && m.FaceDown) {
				continue
			}
			if target == nil || m.HP > target.HP {
				coord = &BoardCoord{Player: oppIdx, Zone: zone}
				target = m
			}
		}
	}
	if target == nil {
		gs.AppendLog(Event{Type: EventEffectNoTarget, Player: ctx.SourcePlayer, Turn: gs.Turn})
		return
	}
	if target.HP <= hpThreshold || (needFaceUp && target.FaceDown) {
		gs.AppendLog(Event{
			Type:           EventEffectInvalidTarget,
			Player:         ctx.SourcePlayer,
			Turn:           gs.Turn,
			CardInstanceID: target.InstanceID,
			Board:          coord,
		})
		return
	}
	if !spendHeroCharges(gs, ctx.SourcePlayer, ctx.Source, paramInt(eff, "charge_cost", 3)) {
		return
	}

	gs.AppendLog(Event{
		Type:           EventEffectDestroyMonster,
		Player:         ctx.SourcePlayer,
		Turn:           gs.Turn,
		CardInstanceID: target.InstanceID,
		CardName:       target.Name,
		Board:          coord,
	})
	destroyed := gs.DestroyMonster(*coord)
	gs.AppendLog(Event{
		Type:           EventMonsterDestroyed,
		Player:         coord.Player,
		Turn:           gs.Turn,
		CardInstanceID: destroyed.InstanceID,
		CardName:       destroyed.Name,
		Board:          coord,
	})

	heal := paramInt(eff, "buff_lowest_ally_hp_increase", 100)
	var allyCoord *BoardCoord
	var ally *CardInstance
	for zone, m := range gs.Player(ctx.SourcePlayer).MonsterZones {
		if m == nil || !m.Alive() {
			continue
		}
		if ally == nil || m.HP < ally.HP {
			allyCoord = &BoardCoord{Player: ctx.SourcePlayer, Zone: zone}
			ally = m
		}
	}
	if ally == nil || heal <= 0 {
		return
	}
	atkBefore, hpBefore := ally.ATK, ally.HP
	ally.Buff(0, heal)
	gs.AppendLog(Event{
		Type:           EventEffectBuffMonster,
		Player:         ctx.SourcePlayer,
		Turn:           gs.Turn,
		CardInstanceID: ally.InstanceID,
		CardName:       ally.Name,
		Board:          allyCoord,
		ATKBefore:      atkBefore,
		ATKAfter:       ally.ATK,
		HPBefore:       hpBefore,
		HPAfter:        ally.HP,
	})
}
