package game

import "fmt"

// Phase labels the coarse stage of the active player's turn. Transitions are
// driven by discrete actions, not an automatic phase clock.
type Phase string

const (
	PhaseStart  Phase = "start"
	PhaseDraw   Phase = "draw"
	PhaseMain   Phase = "main"
	PhaseBattle Phase = "battle"
	PhaseEnd    Phase = "end"
)

// MatchStatus is the top-level life cycle of a match.
type MatchStatus string

const (
	StatusInProgress MatchStatus = "in_progress"
	StatusCompleted  MatchStatus = "completed"
)

// GameState is the complete authoritative state of one match. Exactly one of
// {status completed with winner set} or {status in progress, winner 0} holds;
// a completed draw keeps winner 0.
type GameState struct {
	MatchID       string               `json:"match_id"`
	Turn          int                  `json:"turn"`
	CurrentPlayer int                  `json:"current_player"`
	Phase         Phase                `json:"phase"`
	Status        MatchStatus          `json:"status"`
	Winner        int                  `json:"winner,omitempty"`
	Players       map[int]*PlayerState `json:"players"`
	Pending       *PendingDecision     `json:"pending_decision,omitempty"`
	Log           []Event              `json:"log"`
}

// Player returns the side with the given index (1 or 2).
func (gs *GameState) Player(index int) *PlayerState {
	return gs.Players[index]
}

// Opponent returns the other side.
func (gs *GameState) Opponent(index int) *PlayerState {
	if index == 1 {
		return gs.Players[2]
	}
	return gs.Players[1]
}

// OpponentIndex returns the other side's index.
func OpponentIndex(index int) int {
	if index == 1 {
		return 2
	}
	return 1
}

// InProgress reports whether the match still accepts intents.
func (gs *GameState) InProgress() bool { return gs.Status == StatusInProgress }

// AppendLog appends entries to the match's audit log.
func (gs *GameState) AppendLog(events ...Event) {
	gs.Log = append(gs.Log, events...)
}

// FindMonster locates a live board monster by instance id across both sides.
func (gs *GameState) FindMonster(instanceID string) (*BoardCoord, *CardInstance) {
	for _, idx := range []int{1, 2} {
		p := gs.Players[idx]
		for zone, m := range p.MonsterZones {
			if m != nil && m.InstanceID == instanceID {
				return &BoardCoord{Player: idx, Zone: zone}, m
			}
		}
	}
	return nil, nil
}

// MonsterAt returns the card at a board coordinate, or nil for an empty or
// out-of-range slot.
func (gs *GameState) MonsterAt(coord BoardCoord) *CardInstance {
	p, ok := gs.Players[coord.Player]
	if !ok || coord.Zone < 0 || coord.Zone >= len(p.MonsterZones) {
		return nil
	}
	return p.MonsterZones[coord.Zone]
}

// DestroyMonster moves the monster at coord to its owner's graveyard and
// empties the slot. It is a no-op for empty slots.
func (gs *GameState) DestroyMonster(coord BoardCoord) *CardInstance {
	p, ok := gs.Players[coord.Player]
	if !ok || coord.Zone < 0 || coord.Zone >= len(p.MonsterZones) {
		return nil
	}
	card := p.MonsterZones[coord.Zone]
	if card == nil {
		return nil
	}
	p.MonsterZones[coord.Zone] = nil
	p.SendToGraveyard(card)
	return card
}

// RejectError is an illegal-intent or precondition rejection. Reason is a
// stable machine-readable code; the intent caused no state mutation.
type RejectError struct {
	Reason  string
	Message string
}

func (e *RejectError) Error() string {
	if e.Message == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Reject builds a RejectError with a formatted message.
func Reject(reason, format string, args ...any) error {
	return &RejectError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// Rejection reason codes.
const (
	ReasonMatchNotInProgress = "MATCH_NOT_IN_PROGRESS"
	ReasonNotYourTurn        = "NOT_YOUR_TURN"
	ReasonDecisionPending    = "DECISION_PENDING"
	ReasonStaleDecision      = "STALE_PENDING_DECISION"
	ReasonNoPendingDecision  = "NO_PENDING_DECISION"
	ReasonUnknownAction      = "UNKNOWN_ACTION"
	ReasonCardNotInHand      = "CARD_NOT_IN_HAND"
	ReasonNotAMonster        = "NOT_A_MONSTER"
	ReasonNotASpell          = "NOT_A_SPELL"
	ReasonNotATrap           = "NOT_A_TRAP"
	ReasonZoneOccupied       = "ZONE_OCCUPIED"
	ReasonInvalidZone        = "INVALID_ZONE"
	ReasonSummonLimit        = "SUMMON_LIMIT_REACHED"
	ReasonSpellTrapLimit     = "SPELL_TRAP_LIMIT_REACHED"
	ReasonHeroAbilityLimit   = "HERO_ABILITY_LIMIT_REACHED"
	ReasonTributesRequired   = "TRIBUTES_REQUIRED"
	ReasonTributeNotFound    = "TRIBUTE_NOT_FOUND"
	ReasonHeroSlotOccupied   = "HERO_SLOT_OCCUPIED"
	ReasonNoHero             = "NO_HERO"
	ReasonTargetRequired     = "TARGET_REQUIRED"
	ReasonAttackerNotFound   = "ATTACKER_NOT_FOUND"
	ReasonDefenderNotFound   = "DEFENDER_NOT_FOUND"
	ReasonCannotAttack       = "MONSTER_CANNOT_ATTACK"
	ReasonDirectBlocked      = "OPPONENT_CONTROLS_MONSTERS"
	ReasonTrapNotFound       = "TRAP_NOT_FOUND"
	ReasonTrapNotEligible    = "TRAP_NOT_ELIGIBLE"
	ReasonNotYourDecision    = "NOT_YOUR_DECISION"
)

// ConfigError is a configuration or card-data problem: the operation aborts
// without mutating state, and the payload needs fixing.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// ConfigErrorf builds a ConfigError with a formatted message.
func ConfigErrorf(format string, args ...any) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}
