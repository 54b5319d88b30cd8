package game

func (e *Engine) validateAttacker(ps *PlayerState, instanceID string) (*CardInstance, int, error) {
	zone := ps.MonsterZoneOf(instanceID)
	if zone < 0 {
		return nil, -1, Reject(ReasonAttackerNotFound, "attacker %s is not on your board", instanceID)
	}
	attacker := ps.MonsterZones[zone]
	if attacker.FaceDown || !attacker.Alive() || !attacker.CanAttack {
		return nil, -1, Reject(ReasonCannotAttack, "%s cannot attack this turn", attacker.Name)
	}
	return attacker, zone, nil
}

func (e *Engine) attackPlayer(gs *GameState, player int, act Action, ro resumeOpts) (*PendingDecision, error) {
	ps := gs.Player(player)
	opp := gs.Opponent(player)
	attacker, _, err := e.validateAttacker(ps, act.AttackerInstanceID)
	if err != nil {
		return nil, err
	}
	if len(opp.LiveMonsters()) > 0 {
		return nil, Reject(ReasonDirectBlocked, "player %d still controls monsters", OpponentIndex(player))
	}

	if !triggerCleared(ro.cleared, TriggerOnAttackDeclared) {
		if traps := eligibleTraps(opp, TriggerOnAttackDeclared); len(traps) > 0 {
			return e.openDecision(gs, player, act, TriggerOnAttackDeclared, &TriggerEvent{
				Type:            TriggerOnAttackDeclared,
				AttackingPlayer: player,
				DefendingPlayer: OpponentIndex(player),
				AttackerID:      attacker.InstanceID,
				AttackerATK:     attacker.ATK,
				Amount:          attacker.ATK,
			}, traps, ro.cleared), nil
		}
	}

	gs.Phase = PhaseBattle
	before, after := opp.DamageLife(attacker.ATK)
	attacker.CanAttack = false
	gs.AppendLog(Event{
		Type:         EventAttackDirect,
		Player:       player,
		Turn:         gs.Turn,
		AttackerID:   attacker.InstanceID,
		CardName:     attacker.Name,
		TargetPlayer: OpponentIndex(player),
		Amount:       attacker.ATK,
		HPBefore:     before,
		HPAfter:      after,
	})
	if !e.checkMatchEnd(gs) {
		gs.Phase = PhaseMain
	}
	return nil, nil
}

func (e *Engine) attackMonster(gs *GameState, player int, act Action, ro resumeOpts) (*PendingDecision, error) {
	ps := gs.Player(player)
	oppIdx := OpponentIndex(player)
	opp := gs.Opponent(player)
	attacker, attackerZone, err := e.validateAttacker(ps, act.AttackerInstanceID)
	if err != nil {
		return nil, err
	}
	defenderZone := opp.MonsterZoneOf(act.DefenderInstanceID)
	if defenderZone < 0 {
		return nil, Reject(ReasonDefenderNotFound, "defender %s is not on the opposing board", act.DefenderInstanceID)
	}
	defender := opp.MonsterZones[defenderZone]

	if !triggerCleared(ro.cleared, TriggerOnAttackDeclared) {
		if traps := eligibleTraps(opp, TriggerOnAttackDeclared); len(traps) > 0 {
			return e.openDecision(gs, player, act, TriggerOnAttackDeclared, &TriggerEvent{
				Type:            TriggerOnAttackDeclared,
				AttackingPlayer: player,
				DefendingPlayer: oppIdx,
				AttackerID:      attacker.InstanceID,
				AttackerATK:     attacker.ATK,
				Amount:          attacker.ATK,
				MonsterID:       defender.InstanceID,
			}, traps, ro.cleared), nil
		}
	}

	// The destruction interrupt is offered on the prospective outcome,
	// before any damage is applied.
	if defender.HP-attacker.ATK <= 0 && !triggerCleared(ro.cleared, TriggerOnAllyDestroyed) {
		if _, protected := ro.floors[defender.InstanceID]; !protected {
			if traps := eligibleTraps(opp, TriggerOnAllyDestroyed); len(traps) > 0 {
				return e.openDecision(gs, player, act, TriggerOnAllyDestroyed, &TriggerEvent{
					Type:            TriggerOnAllyDestroyed,
					AttackingPlayer: player,
					DefendingPlayer: oppIdx,
					AttackerID:      attacker.InstanceID,
					AttackerATK:     attacker.ATK,
					MonsterID:       defender.InstanceID,
					Board:           &BoardCoord{Player: oppIdx, Zone: defenderZone},
				}, traps, ro.cleared), nil
			}
		}
	}

	e.resolveCombat(gs, BoardCoord{Player: player, Zone: attackerZone}, BoardCoord{Player: oppIdx, Zone: defenderZone}, ro.floors)
	return nil, nil
}

// resolveCombat applies simultaneous combat damage. Both monsters strike at
// their pre-damage stats; excess damage over a destroyed monster's remaining
// HP spills onto its controller's life total. A destruction floor from an
// activated protection trap keeps the monster at that HP and suppresses the
// spill.
func (e *Engine) resolveCombat(gs *GameState, atkCoord, defCoord BoardCoord, floors map[string]int) {
	attacker := gs.MonsterAt(atkCoord)
	defender := gs.MonsterAt(defCoord)
	gs.Phase = PhaseBattle

	defender.FaceDown = false

	aHP0, dHP0 := attacker.HP, defender.HP
	overflowToDefender := attacker.ATK - dHP0
	overflowToAttacker := defender.ATK - aHP0

	dHP1 := applyCombatDamage(defender, attacker.ATK, floors)
	aHP1 := applyCombatDamage(attacker, defender.ATK, floors)

	gs.AppendLog(Event{
		Type:       EventAttackMonster,
		Player:     atkCoord.Player,
		Turn:       gs.Turn,
		AttackerID: attacker.InstanceID,
		DefenderID: defender.InstanceID,
		Board:      &defCoord,
		Amount:     attacker.ATK,
		HPBefore:   dHP0,
		HPAfter:    dHP1,
	})

	if dHP1 == 0 {
		if overflowToDefender > 0 {
			before, after := gs.Player(defCoord.Player).DamageLife(overflowToDefender)
			gs.AppendLog(Event{
				Type:         EventOverflowDamage,
				Player:       atkCoord.Player,
				Turn:         gs.Turn,
				TargetPlayer: defCoord.Player,
				Amount:       overflowToDefender,
				HPBefore:     before,
				HPAfter:      after,
			})
		}
		destroyed := gs.DestroyMonster(defCoord)
		gs.AppendLog(Event{
			Type:           EventMonsterDestroyed,
			Player:         defCoord.Player,
			Turn:           gs.Turn,
			CardInstanceID: destroyed.InstanceID,
			CardName:       destroyed.Name,
			Board:          &defCoord,
		})
	}
	if aHP1 == 0 {
		if overflowToAttacker > 0 {
			before, after := gs.Player(atkCoord.Player).DamageLife(overflowToAttacker)
			gs.AppendLog(Event{
				Type:         EventOverflowDamage,
				Player:       defCoord.Player,
				Turn:         gs.Turn,
				TargetPlayer: atkCoord.Player,
				Amount:       overflowToAttacker,
				HPBefore:     before,
				HPAfter:      after,
			})
		}
		destroyed := gs.DestroyMonster(atkCoord)
		gs.AppendLog(Event{
			Type:           EventMonsterDestroyed,
			Player:         atkCoord.Player,
			Turn:           gs.Turn,
			CardInstanceID: destroyed.InstanceID,
			CardName:       destroyed.Name,
			Board:          &atkCoord,
		})
	} else {
		attacker.CanAttack = false
	}

	if !e.checkMatchEnd(gs) {
		gs.Phase = PhaseMain
	}
}

// applyCombatDamage reduces the card's HP by dmg, stopping at the card's
// destruction floor when one was granted.
func applyCombatDamage(card *CardInstance, dmg int, floors map[string]int) int {
	hp := card.HP - dmg
	if hp <= 0 {
		if floor, ok := floors[card.InstanceID]; ok && floor > 0 {
			hp = floor
		} else {
			hp = 0
		}
	}
	card.HP = hp
	return hp
}
