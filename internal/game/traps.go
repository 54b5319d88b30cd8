package game

import "github.com/google/uuid"

// eligibleTraps returns instance IDs of the defending player's face-down
// traps whose declared trigger matches exactly, in zone order.
func eligibleTraps(ps *PlayerState, trigger TriggerType) []string {
	var ids []string
	for _, c := range ps.SpellTrapZones {
		if c == nil || !c.FaceDown || c.Kind != KindTrap {
			continue
		}
		if c.Trigger == trigger {
			ids = append(ids, c.InstanceID)
		}
	}
	return ids
}

// triggerCleared reports whether this trigger was already offered during an
// earlier pass over the same suspended intent.
func triggerCleared(cleared []TriggerType, trigger TriggerType) bool {
	for _, t := range cleared {
		if t == trigger {
			return true
		}
	}
	return false
}

// openDecision suspends the in-flight intent and installs a pending decision
// for the defending player. The caller has already checked eligibility.
func (e *Engine) openDecision(gs *GameState, actor int, act Action, trigger TriggerType, ev *TriggerEvent, traps []string, cleared []TriggerType) *PendingDecision {
	pd := &PendingDecision{
		ID:              uuid.NewString(),
		DefendingPlayer: OpponentIndex(actor),
		Trigger:         trigger,
		EligibleTraps:   traps,
		TriggerEvent:    ev,
		Suspended: &SuspendedIntent{
			Player:          actor,
			Action:          act,
			ClearedTriggers: cleared,
		},
	}
	gs.Pending = pd
	gs.AppendLog(Event{
		Type:    EventTrapTriggerOffered,
		Player:  pd.DefendingPlayer,
		Turn:    gs.Turn,
		Trigger: trigger,
		CardIDs: traps,
	})
	return pd
}

// findTrap locates a face-down trap by instance ID in the player's
// spell/trap zones. Returns the card and its zone index, or nil.
func findTrap(ps *PlayerState, instanceID string) (*CardInstance, int) {
	for i, c := range ps.SpellTrapZones {
		if c != nil && c.InstanceID == instanceID && c.Kind == KindTrap && c.FaceDown {
			return c, i
		}
	}
	return nil, -1
}
