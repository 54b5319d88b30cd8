package game

// ActionType identifies a player intent.
type ActionType string

const (
	ActionEndTurn             ActionType = "END_TURN"
	ActionPlayMonster         ActionType = "PLAY_MONSTER"
	ActionPlaySpell           ActionType = "PLAY_SPELL"
	ActionPlayTrap            ActionType = "PLAY_TRAP"
	ActionActivateHeroAbility ActionType = "ACTIVATE_HERO_ABILITY"
	ActionAttackMonster       ActionType = "ATTACK_MONSTER"
	ActionAttackPlayer        ActionType = "ATTACK_PLAYER"
)

// Action is one player intent with its type-specific payload.
type Action struct {
	Type ActionType `json:"type"`

	// Summon / spell / trap plays.
	CardInstanceID     string   `json:"card_instance_id,omitempty"`
	TributeInstanceIDs []string `json:"tribute_instance_ids,omitempty"`

	// Targeting.
	TargetPlayer            int    `json:"target_player_index,omitempty"`
	TargetMonsterInstanceID string `json:"target_monster_instance_id,omitempty"`

	// Combat.
	AttackerInstanceID string `json:"attacker_instance_id,omitempty"`
	DefenderInstanceID string `json:"defender_instance_id,omitempty"`
}

// Targets is the resolved target context handed to the effect resolver by the
// action layer. Monster, when set, is validated to address an occupied slot.
type Targets struct {
	Player  int         `json:"player,omitempty"`
	Monster *BoardCoord `json:"monster,omitempty"`
}

// TriggerEvent is the payload describing the in-flight action that made a
// trap eligible. Keyword handlers inspect it for reflection amounts and
// attacker identity.
type TriggerEvent struct {
	Type            TriggerType `json:"type"`
	Amount          int         `json:"amount,omitempty"`
	AttackingPlayer int         `json:"attacking_player,omitempty"`
	DefendingPlayer int         `json:"defending_player,omitempty"`
	AttackerID      string      `json:"attacker_instance_id,omitempty"`
	AttackerATK     int         `json:"attacker_atk,omitempty"`
	SpellID         string      `json:"spell_instance_id,omitempty"`
	SpellName       string      `json:"spell_name,omitempty"`
	MonsterID       string      `json:"monster_instance_id,omitempty"`
	Board           *BoardCoord `json:"board,omitempty"`
}

// SuspendedIntent is the original action frozen by a trap interrupt. Cleared
// triggers have already been offered and must not fire again on resume; that
// is what makes resumption exactly-once.
type SuspendedIntent struct {
	Player          int           `json:"player"`
	Action          Action        `json:"action"`
	ClearedTriggers []TriggerType `json:"cleared_triggers,omitempty"`
}

// PendingDecision suspends one in-flight intent while the defending player
// decides whether to activate a face-down trap. It is stored on the game
// state so a server restart cannot lose it, and only the resolve-trap path
// may complete it.
type PendingDecision struct {
	ID              string           `json:"id"`
	DefendingPlayer int              `json:"defending_player"`
	Trigger         TriggerType      `json:"trigger"`
	EligibleTraps   []string         `json:"eligible_traps"`
	TriggerEvent    *TriggerEvent    `json:"trigger_event,omitempty"`
	Suspended       *SuspendedIntent `json:"suspended_intent"`
}

// ApplyResult is the outcome of applying one intent: the log entries appended
// by this transition and, when a trap interrupt fired, the pending decision
// the caller must put before the defending player.
type ApplyResult struct {
	Events  []Event          `json:"events"`
	Pending *PendingDecision `json:"pending_decision,omitempty"`
	// Cancelled is set when a resolved trap decision cancelled the
	// suspended intent.
	Cancelled bool `json:"cancelled,omitempty"`
}
