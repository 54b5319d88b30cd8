package game

import (
	"go.uber.org/zap"
)

// VariantResolver maps a card code to its variant for a given element, used
// when a hero summon re-skins the controller's cards. Returning false keeps
// the original printing.
type VariantResolver func(code string, elementID int) (*CardDefinition, bool)

// Limits are the per-turn action budgets.
type Limits struct {
	SummonsPerTurn       int
	SpellTrapsPerTurn    int
	HeroAbilitiesPerTurn int
}

// DefaultLimits returns the standard ruleset budgets.
func DefaultLimits() Limits {
	return Limits{SummonsPerTurn: 1, SpellTrapsPerTurn: 1, HeroAbilitiesPerTurn: 1}
}

// Engine applies player intents to match state. It holds no per-match state
// itself; one engine serves every match concurrently as long as callers
// serialize access to each GameState.
type Engine struct {
	logger   *zap.Logger
	variants VariantResolver
	limits   Limits
}

// NewEngine creates an engine with the default ruleset.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, limits: DefaultLimits()}
}

// SetVariantResolver installs the element re-skin lookup. Without one, hero
// summons keep every card's original printing.
func (e *Engine) SetVariantResolver(r VariantResolver) { e.variants = r }

// SetLimits overrides the per-turn action budgets.
func (e *Engine) SetLimits(l Limits) { e.limits = l }

// resumeOpts carries state across a trap interrupt: triggers already offered
// for the suspended intent, and destruction floors granted by activated
// protection traps, keyed by monster instance id.
type resumeOpts struct {
	cleared []TriggerType
	floors  map[string]int
}

// Apply validates and applies one intent for the given player. On rejection
// the state is untouched and the error is a *RejectError with a stable reason
// code. On success the returned result carries the log entries this
// transition appended, and a pending decision when a trap interrupt fired.
func (e *Engine) Apply(gs *GameState, player int, act Action) (*ApplyResult, error) {
	if !gs.InProgress() {
		return nil, Reject(ReasonMatchNotInProgress, "match %s is %s", gs.MatchID, gs.Status)
	}
	if gs.Pending != nil {
		return nil, Reject(ReasonDecisionPending, "decision %s awaits player %d", gs.Pending.ID, gs.Pending.DefendingPlayer)
	}
	if player != gs.CurrentPlayer {
		return nil, Reject(ReasonNotYourTurn, "it is player %d's turn", gs.CurrentPlayer)
	}
	e.logger.Debug("applying action",
		zap.String("match_id", gs.MatchID),
		zap.Int("player", player),
		zap.String("action", string(act.Type)),
		zap.Int("turn", gs.Turn))
	return e.applyAction(gs, player, act, resumeOpts{})
}

func (e *Engine) applyAction(gs *GameState, player int, act Action, ro resumeOpts) (*ApplyResult, error) {
	start := len(gs.Log)
	var (
		pending *PendingDecision
		err     error
	)
	switch act.Type {
	case ActionEndTurn:
		err = e.endTurn(gs, player)
	case ActionPlayMonster:
		err = e.playMonster(gs, player, act)
	case ActionPlaySpell:
		pending, err = e.playSpell(gs, player, act, ro)
	case ActionPlayTrap:
		err = e.playTrap(gs, player, act)
	case ActionActivateHeroAbility:
		err = e.activateHeroAbility(gs, player, act)
	case ActionAttackMonster:
		pending, err = e.attackMonster(gs, player, act, ro)
	case ActionAttackPlayer:
		pending, err = e.attackPlayer(gs, player, act, ro)
	default:
		err = Reject(ReasonUnknownAction, "unknown action type %q", act.Type)
	}
	if err != nil {
		return nil, err
	}
	return &ApplyResult{Events: gs.Log[start:], Pending: pending}, nil
}

// ResolveTrapDecision completes a pending trap decision. Activation flips the
// trap, resolves its effects against the suspended intent, then resumes (or
// cancels) that intent; declining resumes it directly. Either way the
// decision is consumed.
func (e *Engine) ResolveTrapDecision(gs *GameState, player int, decisionID, trapInstanceID string, activate bool) (*ApplyResult, error) {
	if !gs.InProgress() {
		return nil, Reject(ReasonMatchNotInProgress, "match %s is %s", gs.MatchID, gs.Status)
	}
	pd := gs.Pending
	if pd == nil {
		return nil, Reject(ReasonNoPendingDecision, "no decision to resolve")
	}
	if decisionID != pd.ID {
		return nil, Reject(ReasonStaleDecision, "decision %s is not current", decisionID)
	}
	if player != pd.DefendingPlayer {
		return nil, Reject(ReasonNotYourDecision, "decision %s belongs to player %d", pd.ID, pd.DefendingPlayer)
	}

	suspended := pd.Suspended
	cleared := append([]TriggerType{}, suspended.ClearedTriggers...)
	cleared = append(cleared, pd.Trigger)

	if !activate {
		gs.Pending = nil
		start := len(gs.Log)
		gs.AppendLog(Event{
			Type:    EventTrapDeclined,
			Player:  player,
			Turn:    gs.Turn,
			Trigger: pd.Trigger,
		})
		res, err := e.applyAction(gs, suspended.Player, suspended.Action, resumeOpts{cleared: cleared})
		if err != nil {
			return nil, err
		}
		res.Events = gs.Log[start:]
		return res, nil
	}

	eligible := false
	for _, id := range pd.EligibleTraps {
		if id == trapInstanceID {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, Reject(ReasonTrapNotEligible, "trap %s is not eligible for this decision", trapInstanceID)
	}
	defender := gs.Player(player)
	trap, zone := findTrap(defender, trapInstanceID)
	if trap == nil {
		return nil, Reject(ReasonTrapNotFound, "trap %s is not set on the board", trapInstanceID)
	}

	gs.Pending = nil
	start := len(gs.Log)

	trap.FaceDown = false
	gs.AppendLog(Event{
		Type:           EventActivateTrap,
		Player:         player,
		Turn:           gs.Turn,
		CardInstanceID: trap.InstanceID,
		CardName:       trap.Name,
		Trigger:        pd.Trigger,
	})
	res := e.resolveEffects(gs, &EffectContext{
		State:        gs,
		SourcePlayer: player,
		Source:       trap,
		Trigger:      pd.Trigger,
		TriggerEvent: pd.TriggerEvent,
	}, trap.Effects)
	defender.SpellTrapZones[zone] = nil
	defender.SendToGraveyard(trap)

	if e.checkMatchEnd(gs) {
		return &ApplyResult{Events: gs.Log[start:]}, nil
	}

	if res.Cancelled {
		gs.AppendLog(Event{
			Type:    EventActionCancelled,
			Player:  suspended.Player,
			Turn:    gs.Turn,
			Trigger: pd.Trigger,
		})
		e.finishCancelled(gs, suspended, pd, res)
		e.checkMatchEnd(gs)
		return &ApplyResult{Events: gs.Log[start:], Cancelled: true}, nil
	}

	ro := resumeOpts{cleared: cleared, floors: res.Floors}
	out, err := e.applyAction(gs, suspended.Player, suspended.Action, ro)
	if err != nil {
		return nil, err
	}
	out.Events = gs.Log[start:]
	return out, nil
}

// finishCancelled settles a cancelled intent. A countered spell still leaves
// the caster's hand for the graveyard, and a countering trap with reflect
// turns the spell's effects back on the caster's own side.
func (e *Engine) finishCancelled(gs *GameState, suspended *SuspendedIntent, pd *PendingDecision, res *EffectResult) {
	if pd.Trigger != TriggerOnSpellCast {
		return
	}
	caster := gs.Player(suspended.Player)
	idx := caster.HandCard(suspended.Action.CardInstanceID)
	if idx < 0 {
		return
	}
	spell := caster.RemoveFromHand(idx)
	caster.Counters.SpellsTraps++
	if res.Reflect {
		gs.AppendLog(Event{
			Type:           EventSpellReflected,
			Player:         suspended.Player,
			Turn:           gs.Turn,
			CardInstanceID: spell.InstanceID,
			CardName:       spell.Name,
		})
		targets := reflectTargets(gs, suspended.Player, suspended.Action)
		e.resolveEffects(gs, &EffectContext{
			State:        gs,
			SourcePlayer: pd.DefendingPlayer,
			Source:       spell,
			Targets:      targets,
		}, spell.Effects)
	}
	caster.SendToGraveyard(spell)
}

// reflectTargets mirrors a countered spell's targets onto the caster's own
// side: the same monster zone when occupied, otherwise the caster's first
// live monster.
func reflectTargets(gs *GameState, caster int, act Action) Targets {
	t := Targets{Player: caster}
	if act.TargetMonsterInstanceID == "" {
		return t
	}
	side := gs.Player(caster)
	if coord, _ := gs.FindMonster(act.TargetMonsterInstanceID); coord != nil && coord.Player != caster {
		if side.MonsterZones[coord.Zone] != nil {
			t.Monster = &BoardCoord{Player: caster, Zone: coord.Zone}
			return t
		}
	}
	for zone, m := range side.MonsterZones {
		if m != nil && m.Alive() {
			t.Monster = &BoardCoord{Player: caster, Zone: zone}
			return t
		}
	}
	return t
}

// checkMatchEnd settles lethal life totals. Both sides at zero is a draw;
// the winner is recorded otherwise. Returns true when the match ended.
func (e *Engine) checkMatchEnd(gs *GameState) bool {
	if !gs.InProgress() {
		return true
	}
	p1, p2 := gs.Player(1), gs.Player(2)
	if p1.Alive() && p2.Alive() {
		return false
	}
	gs.Status = StatusCompleted
	ev := Event{Type: EventMatchEnded, Turn: gs.Turn}
	switch {
	case !p1.Alive() && !p2.Alive():
		ev.Draw = true
	case p1.Alive():
		gs.Winner = 1
		ev.Winner = 1
	default:
		gs.Winner = 2
		ev.Winner = 2
	}
	gs.AppendLog(ev)
	e.logger.Info("match ended",
		zap.String("match_id", gs.MatchID),
		zap.Int("winner", gs.Winner),
		zap.Bool("draw", ev.Draw),
		zap.Int("turn", gs.Turn))
	return true
}
