package game

func (e *Engine) playSpell(gs *GameState, player int, act Action, ro resumeOpts) (*PendingDecision, error) {
	ps := gs.Player(player)
	opp := gs.Opponent(player)
	if ps.Counters.SpellsTraps >= e.limits.SpellTrapsPerTurn {
		return nil, Reject(ReasonSpellTrapLimit, "already played %d spells or traps this turn", ps.Counters.SpellsTraps)
	}
	idx := ps.HandCard(act.CardInstanceID)
	if idx < 0 {
		return nil, Reject(ReasonCardNotInHand, "card %s is not in hand", act.CardInstanceID)
	}
	card := ps.Hand[idx]
	if card.Kind != KindSpell {
		return nil, Reject(ReasonNotASpell, "%s is a %s", card.Name, card.Kind)
	}
	var targetCoord *BoardCoord
	if act.TargetMonsterInstanceID != "" {
		coord, _ := gs.FindMonster(act.TargetMonsterInstanceID)
		if coord == nil {
			return nil, Reject(ReasonTargetRequired, "target monster %s is not on the board", act.TargetMonsterInstanceID)
		}
		targetCoord = coord
	}

	// The card stays in hand while the opponent decides on a counter trap;
	// cancellation and resumption both pick it up from there.
	if !triggerCleared(ro.cleared, TriggerOnSpellCast) {
		if traps := eligibleTraps(opp, TriggerOnSpellCast); len(traps) > 0 {
			return e.openDecision(gs, player, act, TriggerOnSpellCast, &TriggerEvent{
				Type:      TriggerOnSpellCast,
				SpellID:   card.InstanceID,
				SpellName: card.Name,
			}, traps, ro.cleared), nil
		}
	}

	ps.Counters.SpellsTraps++
	ps.RemoveFromHand(idx)
	gs.AppendLog(Event{
		Type:           EventPlaySpell,
		Player:         player,
		Turn:           gs.Turn,
		CardInstanceID: card.InstanceID,
		CardName:       card.Name,
	})
	e.resolveEffects(gs, &EffectContext{
		State:        gs,
		SourcePlayer: player,
		Source:       card,
		Targets:      Targets{Player: act.TargetPlayer, Monster: targetCoord},
	}, card.Effects)
	ps.SendToGraveyard(card)
	e.checkMatchEnd(gs)
	return nil, nil
}

func (e *Engine) playTrap(gs *GameState, player int, act Action) error {
	ps := gs.Player(player)
	if ps.Counters.SpellsTraps >= e.limits.SpellTrapsPerTurn {
		return Reject(ReasonSpellTrapLimit, "already played %d spells or traps this turn", ps.Counters.SpellsTraps)
	}
	idx := ps.HandCard(act.CardInstanceID)
	if idx < 0 {
		return Reject(ReasonCardNotInHand, "card %s is not in hand", act.CardInstanceID)
	}
	card := ps.Hand[idx]
	if card.Kind != KindTrap {
		return Reject(ReasonNotATrap, "%s is a %s", card.Name, card.Kind)
	}
	zone := ps.FirstEmptySpellTrapZone()
	if zone < 0 {
		return Reject(ReasonZoneOccupied, "all spell/trap zones are occupied")
	}

	ps.Counters.SpellsTraps++
	ps.RemoveFromHand(idx)
	card.FaceDown = true
	ps.SpellTrapZones[zone] = card
	gs.AppendLog(Event{
		Type:           EventPlayTrap,
		Player:         player,
		Turn:           gs.Turn,
		CardInstanceID: card.InstanceID,
		Board:          &BoardCoord{Player: player, Zone: zone},
	})
	return nil
}

func (e *Engine) activateHeroAbility(gs *GameState, player int, act Action) error {
	ps := gs.Player(player)
	hero := ps.Hero
	if hero == nil || !hero.Alive() || hero.Hero == nil {
		return Reject(ReasonNoHero, "player %d has no hero in play", player)
	}
	if ps.Counters.HeroAbility >= e.limits.HeroAbilitiesPerTurn {
		return Reject(ReasonHeroAbilityLimit, "hero ability already used this turn")
	}
	var targetCoord *BoardCoord
	if act.TargetMonsterInstanceID != "" {
		coord, _ := gs.FindMonster(act.TargetMonsterInstanceID)
		if coord == nil {
			return Reject(ReasonTargetRequired, "target monster %s is not on the board", act.TargetMonsterInstanceID)
		}
		targetCoord = coord
	} else if !heroSelectsOwnTarget(hero.Hero.Active) {
		coord, err := autoTargetEnemyMonster(gs, player)
		if err != nil {
			return err
		}
		targetCoord = coord
	}

	ps.Counters.HeroAbility++
	gs.AppendLog(Event{
		Type:           EventActivateHero,
		Player:         player,
		Turn:           gs.Turn,
		CardInstanceID: hero.InstanceID,
		CardName:       hero.Name,
	})
	e.resolveEffects(gs, &EffectContext{
		State:        gs,
		SourcePlayer: player,
		Source:       hero,
		Targets:      Targets{Player: act.TargetPlayer, Monster: targetCoord},
	}, hero.Hero.Active)
	e.checkMatchEnd(gs)
	return nil
}

// autoTargetEnemyMonster fills in an omitted monster target for a hero
// ability: a lone live enemy monster is chosen, an empty enemy board leaves
// the target unset so the effect falls through to the enemy player, and
// anything more needs an explicit choice from the caller.
func autoTargetEnemyMonster(gs *GameState, player int) (*BoardCoord, error) {
	oppIdx := OpponentIndex(player)
	var coord *BoardCoord
	live := 0
	for zone, m := range gs.Player(oppIdx).MonsterZones {
		if m == nil || !m.Alive() {
			continue
		}
		live++
		coord = &BoardCoord{Player: oppIdx, Zone: zone}
	}
	switch live {
	case 0:
		return nil, nil
	case 1:
		return coord, nil
	default:
		return nil, Reject(ReasonTargetRequired, "%d enemy monsters on the board, pick one", live)
	}
}

// heroSelectsOwnTarget reports whether any of the hero's active keywords
// does its own victim selection.
func heroSelectsOwnTarget(effects []Effect) bool {
	for _, eff := range effects {
		if normalizeKeyword(eff.Keyword) == KeywordHeroSoulRend {
			return true
		}
	}
	return false
}
