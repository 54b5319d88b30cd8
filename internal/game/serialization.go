package game

import (
	"encoding/json"
	"fmt"
)

// MarshalGameState snapshots a match for storage. The snapshot is complete:
// unmarshalling it yields a state the engine can keep driving, pending
// decision included.
func MarshalGameState(gs *GameState) ([]byte, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("marshal game state %s: %w", gs.MatchID, err)
	}
	return data, nil
}

// UnmarshalGameState restores a snapshot, re-padding board zones to their
// fixed widths so older snapshots with trailing empties trimmed stay valid.
func UnmarshalGameState(data []byte) (*GameState, error) {
	var gs GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal game state: %w", err)
	}
	if gs.Players == nil {
		return nil, fmt.Errorf("unmarshal game state: no players")
	}
	for _, idx := range []int{1, 2} {
		ps, ok := gs.Players[idx]
		if !ok || ps == nil {
			return nil, fmt.Errorf("unmarshal game state %s: player %d missing", gs.MatchID, idx)
		}
		ps.PlayerIndex = idx
		ps.MonsterZones = padZones(ps.MonsterZones, MonsterZoneCount)
		ps.SpellTrapZones = padZones(ps.SpellTrapZones, SpellTrapZoneCount)
	}
	return &gs, nil
}

func padZones(zones []*CardInstance, width int) []*CardInstance {
	if len(zones) == width {
		return zones
	}
	out := make([]*CardInstance, width)
	copy(out, zones)
	return out
}
