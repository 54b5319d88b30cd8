package game

// EventType labels one entry in the match's append-only event log.
type EventType string

const (
	// Lifecycle
	EventGameInit    EventType = "GAME_INIT"
	EventEndTurn     EventType = "END_TURN"
	EventTurnStarted EventType = "TURN_STARTED"
	EventDrawCards   EventType = "DRAW_CARDS"
	EventReshuffle   EventType = "GRAVEYARD_RESHUFFLED"
	EventMatchEnded  EventType = "MATCH_ENDED"

	// Actions
	EventPlayMonster        EventType = "PLAY_MONSTER"
	EventTributeMonster     EventType = "TRIBUTE_MONSTER"
	EventHeroSummoned       EventType = "HERO_SUMMONED"
	EventElementReskin      EventType = "ELEMENT_RESKIN"
	EventHeroAura           EventType = "HERO_AURA_APPLIED"
	EventPlaySpell          EventType = "PLAY_SPELL"
	EventPlayTrap           EventType = "PLAY_TRAP"
	EventActivateTrap       EventType = "ACTIVATE_TRAP"
	EventActivateHero       EventType = "ACTIVATE_HERO_ABILITY"
	EventHeroChargeGained   EventType = "HERO_CHARGE_GAINED"
	EventTrapTriggerOffered EventType = "TRAP_TRIGGER_OFFERED"
	EventTrapDeclined       EventType = "TRAP_DECLINED"
	EventActionCancelled    EventType = "ACTION_CANCELLED"
	EventSpellReflected     EventType = "SPELL_REFLECTED"

	// Combat
	EventAttackMonster    EventType = "ATTACK_MONSTER"
	EventAttackDirect     EventType = "ATTACK_DIRECT"
	EventMonsterDestroyed EventType = "MONSTER_DESTROYED"
	EventOverflowDamage   EventType = "OVERFLOW_DAMAGE"

	// Status upkeep
	EventStatusExpired EventType = "STATUS_EXPIRED"
	EventStatusTicked  EventType = "STATUS_TICKED"

	// Effect resolution
	EventEffectDamageMonster     EventType = "EFFECT_DAMAGE_MONSTER"
	EventEffectDamagePlayer      EventType = "EFFECT_DAMAGE_PLAYER"
	EventEffectHealMonster       EventType = "EFFECT_HEAL_MONSTER"
	EventEffectHealPlayer        EventType = "EFFECT_HEAL_PLAYER"
	EventEffectBuffMonster       EventType = "EFFECT_BUFF_MONSTER"
	EventEffectStatusApplied     EventType = "EFFECT_STATUS_APPLIED"
	EventEffectStatusBlocked     EventType = "EFFECT_STATUS_BLOCKED"
	EventEffectStatusReflected   EventType = "EFFECT_STATUS_REFLECTED"
	EventEffectStatusDuplicated  EventType = "EFFECT_STATUS_DUPLICATED"
	EventEffectCleanseMonster    EventType = "EFFECT_CLEANSE_MONSTER"
	EventEffectDrawCards         EventType = "EFFECT_DRAW_CARDS"
	EventEffectHaste             EventType = "EFFECT_HASTE"
	EventEffectFreeze            EventType = "EFFECT_FREEZE_MONSTER"
	EventEffectCounterSpell      EventType = "EFFECT_COUNTER_SPELL"
	EventEffectNegateAttack      EventType = "EFFECT_NEGATE_ATTACK"
	EventEffectReflectDamage     EventType = "EFFECT_REFLECT_DAMAGE"
	EventEffectPreventDestroy    EventType = "EFFECT_PREVENT_DESTRUCTION"
	EventEffectDestroyMonster    EventType = "EFFECT_DESTROY_MONSTER"
	EventEffectHeroSpendCharge   EventType = "EFFECT_HERO_SPEND_CHARGE"
	EventEffectHeroNoCharges     EventType = "EFFECT_HERO_NOT_ENOUGH_CHARGES"
	EventEffectNoTarget          EventType = "EFFECT_NO_TARGET"
	EventEffectInvalidTarget     EventType = "EFFECT_INVALID_TARGET"
	EventEffectUnknownKeyword    EventType = "EFFECT_UNKNOWN_KEYWORD"
)

// BoardCoord addresses one monster slot on the board.
type BoardCoord struct {
	Player int `json:"player"`
	Zone   int `json:"zone"`
}

// Event is one structured entry in the match log. Fields are optional per
// event type; the log is never rewritten or pruned during a match.
type Event struct {
	Type           EventType    `json:"type"`
	Player         int          `json:"player,omitempty"`
	Turn           int          `json:"turn,omitempty"`
	Phase          Phase        `json:"phase,omitempty"`
	CardInstanceID string       `json:"card_instance_id,omitempty"`
	CardName       string       `json:"card_name,omitempty"`
	Board          *BoardCoord  `json:"board,omitempty"`
	Amount         int          `json:"amount,omitempty"`
	HPBefore       int          `json:"hp_before,omitempty"`
	HPAfter        int          `json:"hp_after,omitempty"`
	ATKBefore      int          `json:"atk_before,omitempty"`
	ATKAfter       int          `json:"atk_after,omitempty"`
	MaxHPBefore    int          `json:"max_hp_before,omitempty"`
	MaxHPAfter     int          `json:"max_hp_after,omitempty"`
	Status         *StatusEntry `json:"status,omitempty"`
	Keyword        string       `json:"keyword,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	Trigger        TriggerType  `json:"trigger,omitempty"`
	AttackerID     string       `json:"attacker_instance_id,omitempty"`
	DefenderID     string       `json:"defender_instance_id,omitempty"`
	TargetPlayer   int          `json:"target_player,omitempty"`
	Winner         int          `json:"winner,omitempty"`
	Draw           bool         `json:"draw,omitempty"`
	CardIDs        []string     `json:"card_instance_ids,omitempty"`
}
