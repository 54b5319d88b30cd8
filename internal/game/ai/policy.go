// Package ai drives the scripted opponent. The policy is a fixed priority
// ladder over legal actions, the same one the PVE opponent has always used:
// hero first, then the biggest summon, then spells, traps, the hero ability,
// attacks, and finally the hand-off.
package ai

import (
	"strings"

	"github.com/projectsquall/squall-server-go/internal/game"
)

// Decide picks the next action for the player. It only proposes actions the
// engine will accept; when nothing else is legal it ends the turn.
func Decide(gs *game.GameState, player int) game.Action {
	ps := gs.Player(player)
	opp := gs.Opponent(player)

	if act, ok := decideHeroSummon(ps); ok {
		return act
	}
	if act, ok := decideSummon(ps); ok {
		return act
	}
	if act, ok := decideSpell(ps, opp); ok {
		return act
	}
	if act, ok := decideTrapSet(ps); ok {
		return act
	}
	if act, ok := decideHeroAbility(ps, opp); ok {
		return act
	}
	if act, ok := decideAttack(ps, opp); ok {
		return act
	}
	return game.Action{Type: game.ActionEndTurn}
}

// DecideTrap answers a pending trap decision: activate the first eligible
// trap in zone order.
func DecideTrap(gs *game.GameState) (trapInstanceID string, activate bool) {
	pd := gs.Pending
	if pd == nil || len(pd.EligibleTraps) == 0 {
		return "", false
	}
	return pd.EligibleTraps[0], true
}

// RunTurn plays out the AI's turn against the engine, stopping at the
// hand-off, at match end, or when a trap decision passes to the opponent.
// maxActions caps runaway loops from repeated no-progress choices.
func RunTurn(e *game.Engine, gs *game.GameState, player, maxActions int) ([]game.Event, error) {
	if maxActions <= 0 {
		maxActions = 32
	}
	var events []game.Event
	for i := 0; i < maxActions; i++ {
		if !gs.InProgress() || gs.Pending != nil || gs.CurrentPlayer != player {
			return events, nil
		}
		act := Decide(gs, player)
		res, err := e.Apply(gs, player, act)
		if err != nil {
			// A rejected pick means the ladder mis-read the board; end
			// the turn rather than loop on it.
			if act.Type == game.ActionEndTurn {
				return events, err
			}
			res, err = e.Apply(gs, player, game.Action{Type: game.ActionEndTurn})
			if err != nil {
				return events, err
			}
			events = append(events, res.Events...)
			return events, nil
		}
		events = append(events, res.Events...)
		if act.Type == game.ActionEndTurn {
			return events, nil
		}
	}
	return events, nil
}

func decideHeroSummon(ps *game.PlayerState) (game.Action, bool) {
	if ps.Hero != nil || ps.Counters.Summons > 0 {
		return game.Action{}, false
	}
	live := ps.LiveMonsters()
	if len(live) < 2 {
		return game.Action{}, false
	}
	for _, c := range ps.Hand {
		if c.Stars == 6 || c.IsHero() {
			return game.Action{
				Type:               game.ActionPlayMonster,
				CardInstanceID:     c.InstanceID,
				TributeInstanceIDs: []string{live[0].InstanceID, live[1].InstanceID},
			}, true
		}
	}
	return game.Action{}, false
}

func decideSummon(ps *game.PlayerState) (game.Action, bool) {
	if ps.Counters.Summons > 0 {
		return game.Action{}, false
	}
	live := ps.LiveMonsters()
	var best *game.CardInstance
	for _, c := range ps.Hand {
		if !c.IsMonster() || c.Stars >= 6 {
			continue
		}
		if c.Stars >= 4 && len(live) == 0 {
			continue
		}
		if c.Stars <= 3 && ps.FirstEmptyMonsterZone() < 0 {
			continue
		}
		if best == nil || c.Stars > best.Stars {
			best = c
		}
	}
	if best == nil {
		return game.Action{}, false
	}
	act := game.Action{Type: game.ActionPlayMonster, CardInstanceID: best.InstanceID}
	if best.Stars >= 4 {
		// Tribute the weakest body on the board.
		weakest := live[0]
		for _, m := range live[1:] {
			if m.Stars < weakest.Stars {
				weakest = m
			}
		}
		act.TributeInstanceIDs = []string{weakest.InstanceID}
	} else if ps.FirstEmptyMonsterZone() < 0 {
		return game.Action{}, false
	}
	return act, true
}

func decideSpell(ps, opp *game.PlayerState) (game.Action, bool) {
	if ps.Counters.SpellsTraps > 0 {
		return game.Action{}, false
	}
	for _, c := range ps.Hand {
		if c.Kind != game.KindSpell {
			continue
		}
		act := game.Action{Type: game.ActionPlaySpell, CardInstanceID: c.InstanceID}
		need := spellTargetNeed(c)
		switch need {
		case targetEnemyMonster:
			target := highestHPMonster(opp)
			if target == nil {
				continue
			}
			act.TargetMonsterInstanceID = target.InstanceID
		case targetOwnMonster:
			target := lowestHPMonster(ps)
			if target == nil {
				continue
			}
			act.TargetMonsterInstanceID = target.InstanceID
		}
		return act, true
	}
	return game.Action{}, false
}

func decideTrapSet(ps *game.PlayerState) (game.Action, bool) {
	if ps.Counters.SpellsTraps > 0 || ps.FirstEmptySpellTrapZone() < 0 {
		return game.Action{}, false
	}
	for _, c := range ps.Hand {
		if c.Kind == game.KindTrap {
			return game.Action{Type: game.ActionPlayTrap, CardInstanceID: c.InstanceID}, true
		}
	}
	return game.Action{}, false
}

func decideHeroAbility(ps, opp *game.PlayerState) (game.Action, bool) {
	hero := ps.Hero
	if hero == nil || !hero.Alive() || hero.Hero == nil || ps.Counters.HeroAbility > 0 {
		return game.Action{}, false
	}
	for _, eff := range hero.Hero.Active {
		cost := effectChargeCost(eff)
		if hero.HeroCharges < cost {
			continue
		}
		act := game.Action{Type: game.ActionActivateHeroAbility}
		// A crowded enemy board needs an explicit pick; soul rend chooses
		// its own victim.
		if strings.ToUpper(eff.Keyword) != game.KeywordHeroSoulRend && len(opp.LiveMonsters()) > 1 {
			act.TargetMonsterInstanceID = highestHPMonster(opp).InstanceID
		}
		return act, true
	}
	return game.Action{}, false
}

// decideAttack sends the hardest hitter at the softest defender, or at the
// player when the opposing board is empty.
func decideAttack(ps, opp *game.PlayerState) (game.Action, bool) {
	var attacker *game.CardInstance
	for _, m := range ps.MonsterZones {
		if m == nil || !m.CanAttack || !m.Alive() || m.FaceDown {
			continue
		}
		if attacker == nil || m.ATK > attacker.ATK {
			attacker = m
		}
	}
	if attacker == nil {
		return game.Action{}, false
	}
	if target := lowestHPMonster(opp); target != nil {
		return game.Action{
			Type:               game.ActionAttackMonster,
			AttackerInstanceID: attacker.InstanceID,
			DefenderInstanceID: target.InstanceID,
		}, true
	}
	return game.Action{
		Type:               game.ActionAttackPlayer,
		AttackerInstanceID: attacker.InstanceID,
	}, true
}

type targetNeed int

const (
	targetNone targetNeed = iota
	targetEnemyMonster
	targetOwnMonster
)

// spellTargetNeed classifies a spell by its first monster-addressing keyword.
func spellTargetNeed(c *game.CardInstance) targetNeed {
	for _, eff := range c.Effects {
		kw := strings.ToUpper(eff.Keyword)
		switch {
		case strings.Contains(kw, "DAMAGE_MONSTER"),
			strings.Contains(kw, "DESTROY_MONSTER"),
			strings.Contains(kw, "APPLY_STATUS"):
			return targetEnemyMonster
		case strings.Contains(kw, "HEAL_MONSTER"),
			strings.Contains(kw, "CLEANSE_MONSTER"):
			return targetOwnMonster
		case strings.Contains(kw, "BUFF_MONSTER"):
			if t, ok := eff.Params["target"].(string); ok && (t == "ALL_MONSTERS" || t == "OWN_MONSTERS") {
				return targetNone
			}
			return targetOwnMonster
		}
	}
	return targetNone
}

func effectChargeCost(eff game.Effect) int {
	switch v := eff.Params["charge_cost"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 1
}

func highestHPMonster(ps *game.PlayerState) *game.CardInstance {
	var best *game.CardInstance
	for _, m := range ps.MonsterZones {
		if m == nil || !m.Alive() {
			continue
		}
		if best == nil || m.HP > best.HP {
			best = m
		}
	}
	return best
}

func lowestHPMonster(ps *game.PlayerState) *game.CardInstance {
	var best *game.CardInstance
	for _, m := range ps.MonsterZones {
		if m == nil || !m.Alive() {
			continue
		}
		if best == nil || m.HP < best.HP {
			best = m
		}
	}
	return best
}
