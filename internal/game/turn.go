package game

import "math/rand/v2"

// TurnDrawCount is how many cards the active player draws at turn start.
const TurnDrawCount = 2

func (e *Engine) endTurn(gs *GameState, player int) error {
	ps := gs.Player(player)

	// Hero passives resolve for the ending player before the hand-off.
	if hero := ps.Hero; hero != nil && hero.Alive() && hero.Hero != nil && len(hero.Hero.Passive) > 0 {
		e.resolveEffects(gs, &EffectContext{
			State:        gs,
			SourcePlayer: player,
			Source:       hero,
		}, hero.Hero.Passive)
		if e.checkMatchEnd(gs) {
			return nil
		}
	}

	gs.AppendLog(Event{Type: EventEndTurn, Player: player, Turn: gs.Turn})
	gs.Phase = PhaseEnd

	gs.Turn++
	gs.CurrentPlayer = OpponentIndex(player)
	e.startTurn(gs, gs.CurrentPlayer)
	return nil
}

// startTurn runs the upkeep for the new active player: flips, status ticks,
// hero charge accrual, the turn draw, and counter reset.
func (e *Engine) startTurn(gs *GameState, player int) {
	ps := gs.Player(player)
	gs.Phase = PhaseStart
	gs.AppendLog(Event{Type: EventTurnStarted, Player: player, Turn: gs.Turn})

	for zone, m := range ps.MonsterZones {
		if m == nil {
			continue
		}
		m.FaceDown = false
		e.tickStatuses(gs, player, zone, m)
	}
	if ps.Hero != nil {
		e.tickStatuses(gs, player, -1, ps.Hero)
	}
	for _, m := range ps.MonsterZones {
		if m == nil {
			continue
		}
		m.CanAttack = m.Alive() && !m.HasStatus(StatusFrozenCode)
	}

	if hero := ps.Hero; hero != nil && hero.Alive() {
		hero.HeroCharges++
		gs.AppendLog(Event{
			Type:           EventHeroChargeGained,
			Player:         player,
			Turn:           gs.Turn,
			CardInstanceID: hero.InstanceID,
			CardName:       hero.Name,
			Amount:         1,
		})
	}

	gs.Phase = PhaseDraw
	e.drawCards(gs, player, TurnDrawCount)

	ps.Counters.Reset()
	gs.Phase = PhaseMain
}

// tickStatuses advances one card's status durations at its controller's turn
// start. Fixed durations count down and hand over to their on-expire status
// when they run out; until-next-turn statuses simply drop.
func (e *Engine) tickStatuses(gs *GameState, player, zone int, card *CardInstance) {
	var kept []StatusEntry
	var board *BoardCoord
	if zone >= 0 {
		board = &BoardCoord{Player: player, Zone: zone}
	}
	expire := func(st StatusEntry) {
		gs.AppendLog(Event{
			Type:           EventStatusExpired,
			Player:         player,
			Turn:           gs.Turn,
			CardInstanceID: card.InstanceID,
			CardName:       card.Name,
			Board:          board,
			Status:         &StatusEntry{Code: st.Code, DurationType: st.DurationType},
		})
		if st.OnExpire != nil {
			kept = append(kept, *st.OnExpire)
			gs.AppendLog(Event{
				Type:           EventEffectStatusApplied,
				Player:         player,
				Turn:           gs.Turn,
				CardInstanceID: card.InstanceID,
				CardName:       card.Name,
				Board:          board,
				Status:         st.OnExpire,
			})
		}
	}
	for _, st := range card.Statuses {
		switch st.DurationType {
		case DurationFixedTurns:
			st.DurationValue--
			if st.DurationValue > 0 {
				gs.AppendLog(Event{
					Type:           EventStatusTicked,
					Player:         player,
					Turn:           gs.Turn,
					CardInstanceID: card.InstanceID,
					CardName:       card.Name,
					Board:          board,
					Status:         &StatusEntry{Code: st.Code, DurationType: st.DurationType, DurationValue: st.DurationValue},
				})
				kept = append(kept, st)
				continue
			}
			expire(st)
		case DurationUntilControllerNextTurn:
			expire(st)
		default:
			kept = append(kept, st)
		}
	}
	card.Statuses = kept
}

// drawCards draws up to n cards for the player, reshuffling the graveyard
// into the deck when the deck runs dry. Both piles empty ends the draw short
// with no penalty.
func (e *Engine) drawCards(gs *GameState, player, n int) int {
	ps := gs.Player(player)
	var drawn []string
	for i := 0; i < n; i++ {
		if len(ps.Deck) == 0 {
			if len(ps.Graveyard) == 0 {
				break
			}
			ps.Deck = ps.Graveyard
			ps.Graveyard = nil
			shuffleCards(ps.Deck)
			gs.AppendLog(Event{
				Type:   EventReshuffle,
				Player: player,
				Turn:   gs.Turn,
				Amount: len(ps.Deck),
			})
		}
		card := ps.Deck[0]
		ps.Deck = ps.Deck[1:]
		ps.Hand = append(ps.Hand, card)
		drawn = append(drawn, card.InstanceID)
	}
	if len(drawn) > 0 {
		gs.AppendLog(Event{
			Type:    EventDrawCards,
			Player:  player,
			Turn:    gs.Turn,
			Amount:  len(drawn),
			CardIDs: drawn,
		})
	}
	return len(drawn)
}

func shuffleCards(cards []*CardInstance) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
