package game

import "go.uber.org/zap"

// Tribute requirements by star tier. One to three stars summon free and
// face-down, four and five stars trade one monster and arrive battle-ready,
// six stars are heroes and trade two.
func tributesFor(stars int) int {
	switch {
	case stars <= 3:
		return 0
	case stars <= 5:
		return 1
	default:
		return 2
	}
}

func (e *Engine) playMonster(gs *GameState, player int, act Action) error {
	ps := gs.Player(player)
	if ps.Counters.Summons >= e.limits.SummonsPerTurn {
		return Reject(ReasonSummonLimit, "already summoned %d this turn", ps.Counters.Summons)
	}
	idx := ps.HandCard(act.CardInstanceID)
	if idx < 0 {
		return Reject(ReasonCardNotInHand, "card %s is not in hand", act.CardInstanceID)
	}
	card := ps.Hand[idx]
	if card.Kind != KindMonster && card.Kind != KindHero {
		return Reject(ReasonNotAMonster, "%s is a %s", card.Name, card.Kind)
	}
	if card.Stars < 1 || card.Stars > 6 {
		return ConfigErrorf("card %s has out-of-range star count %d", card.Code, card.Stars)
	}

	need := tributesFor(card.Stars)
	if len(act.TributeInstanceIDs) != need {
		return Reject(ReasonTributesRequired, "%s needs exactly %d tributes, got %d", card.Name, need, len(act.TributeInstanceIDs))
	}
	tributeZones := make([]int, 0, need)
	seen := map[string]bool{}
	for _, id := range act.TributeInstanceIDs {
		if seen[id] {
			return Reject(ReasonTributeNotFound, "tribute %s named twice", id)
		}
		seen[id] = true
		zone := ps.MonsterZoneOf(id)
		if zone < 0 {
			return Reject(ReasonTributeNotFound, "tribute %s is not on your board", id)
		}
		tributeZones = append(tributeZones, zone)
	}

	isHero := card.Stars == 6 || card.Kind == KindHero
	if isHero {
		if ps.Hero != nil {
			return Reject(ReasonHeroSlotOccupied, "hero slot already holds %s", ps.Hero.Name)
		}
	} else if need == 0 && ps.FirstEmptyMonsterZone() < 0 {
		return Reject(ReasonZoneOccupied, "all monster zones are occupied")
	}

	// Validation done; mutate.
	for _, zone := range tributeZones {
		tribute := ps.MonsterZones[zone]
		ps.MonsterZones[zone] = nil
		ps.SendToGraveyard(tribute)
		gs.AppendLog(Event{
			Type:           EventTributeMonster,
			Player:         player,
			Turn:           gs.Turn,
			CardInstanceID: tribute.InstanceID,
			CardName:       tribute.Name,
			Board:          &BoardCoord{Player: player, Zone: zone},
		})
	}
	ps.RemoveFromHand(idx)
	ps.Counters.Summons++
	card.SummonedTurn = gs.Turn

	if isHero {
		e.summonHero(gs, player, card)
		return nil
	}

	zone := ps.FirstEmptyMonsterZone()
	ps.MonsterZones[zone] = card
	card.FaceDown = card.Stars <= 3
	card.CanAttack = card.Stars >= 4
	gs.AppendLog(Event{
		Type:           EventPlayMonster,
		Player:         player,
		Turn:           gs.Turn,
		CardInstanceID: card.InstanceID,
		CardName:       card.Name,
		Board:          &BoardCoord{Player: player, Zone: zone},
	})
	return nil
}

// summonHero places the hero, re-skins the controller's cards to the hero's
// element, and applies the entry aura to monsters already on the board.
// Heroes never gain attack eligibility.
func (e *Engine) summonHero(gs *GameState, player int, card *CardInstance) {
	ps := gs.Player(player)
	card.FaceDown = false
	card.CanAttack = false
	ps.Hero = card
	gs.AppendLog(Event{
		Type:           EventHeroSummoned,
		Player:         player,
		Turn:           gs.Turn,
		CardInstanceID: card.InstanceID,
		CardName:       card.Name,
	})

	if card.ElementID != 0 && card.ElementID != ps.ActiveElement {
		ps.ActiveElement = card.ElementID
		count := e.reskinSide(ps, card.ElementID)
		gs.AppendLog(Event{
			Type:   EventElementReskin,
			Player: player,
			Turn:   gs.Turn,
			Amount: count,
		})
		e.logger.Debug("element re-skin",
			zap.String("match_id", gs.MatchID),
			zap.Int("player", player),
			zap.Int("element_id", card.ElementID),
			zap.Int("cards", count))
	}

	if h := card.Hero; h != nil && (h.AuraATK != 0 || h.AuraHP != 0) {
		for zone, m := range ps.MonsterZones {
			if m == nil || !m.Alive() {
				continue
			}
			m.Buff(h.AuraATK, h.AuraHP)
			gs.AppendLog(Event{
				Type:           EventHeroAura,
				Player:         player,
				Turn:           gs.Turn,
				CardInstanceID: m.InstanceID,
				CardName:       m.Name,
				Board:          &BoardCoord{Player: player, Zone: zone},
				ATKAfter:       m.ATK,
				HPAfter:        m.HP,
			})
		}
	}
}

// reskinSide swaps every re-skinnable card the player owns for its elemental
// variant. Runtime identity survives the swap: instance id, statuses, facing,
// attack eligibility, and summon turn all carry over, and current HP is
// clamped to the new printing's maximum.
func (e *Engine) reskinSide(ps *PlayerState, elementID int) int {
	if e.variants == nil {
		return 0
	}
	count := 0
	reskin := func(c *CardInstance) {
		if c == nil || c.IsHero() {
			return
		}
		def, ok := e.variants(c.Code, elementID)
		if !ok {
			return
		}
		c.Code = def.Code
		c.Name = def.Name
		c.Stars = def.Stars
		c.ATK = def.ATK
		c.MaxHP = def.HP
		if c.HP > def.HP {
			c.HP = def.HP
		}
		c.ElementID = def.ElementID
		c.Trigger = def.Trigger
		c.Effects = cloneEffects(def.Effects)
		c.Description = def.Description
		c.FlavorText = def.FlavorText
		c.RulesText = def.RulesText
		c.ArtAssetID = def.ArtAssetID
		count++
	}
	for _, c := range ps.Deck {
		reskin(c)
	}
	for _, c := range ps.Hand {
		reskin(c)
	}
	for _, c := range ps.MonsterZones {
		reskin(c)
	}
	for _, c := range ps.SpellTrapZones {
		reskin(c)
	}
	for _, c := range ps.Graveyard {
		reskin(c)
	}
	return count
}
