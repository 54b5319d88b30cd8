package game

import (
	"strings"

	"go.uber.org/zap"
)

// EffectContext is everything a keyword handler may consult: the match, the
// resolving card and its controller, the action's explicit targets, and the
// trigger payload when the card resolves as a trap.
type EffectContext struct {
	State        *GameState
	SourcePlayer int
	Source       *CardInstance
	Targets      Targets
	Trigger      TriggerType
	TriggerEvent *TriggerEvent
}

// EffectResult accumulates resolution outcomes that outlive the effect list:
// cancellation and reflection of the suspended intent, and destruction floors
// granted to monsters by protection traps.
type EffectResult struct {
	Cancelled bool
	Reflect   bool
	Floors    map[string]int
}

func (r *EffectResult) grantFloor(instanceID string, floor int) {
	if r.Floors == nil {
		r.Floors = map[string]int{}
	}
	r.Floors[instanceID] = floor
}

// KeywordHandler resolves one effect keyword against the match state.
type KeywordHandler func(e *Engine, ctx *EffectContext, eff Effect, res *EffectResult)

var keywordRegistry = map[string]KeywordHandler{}

// RegisterKeyword installs a handler for a keyword. Registration is
// case-insensitive and last-write-wins, which lets embedders override the
// stock behaviors.
func RegisterKeyword(keyword string, h KeywordHandler) {
	keywordRegistry[normalizeKeyword(keyword)] = h
}

func normalizeKeyword(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// resolveEffects runs a card's effect list in order. Unknown keywords are
// logged and skipped; they never abort the rest of the list. A handler that
// cancels the suspended intent ends resolution, skipping later entries.
func (e *Engine) resolveEffects(gs *GameState, ctx *EffectContext, effects []Effect) *EffectResult {
	res := &EffectResult{}
	for _, eff := range effects {
		h, ok := keywordRegistry[normalizeKeyword(eff.Keyword)]
		if !ok {
			gs.AppendLog(Event{
				Type:    EventEffectUnknownKeyword,
				Player:  ctx.SourcePlayer,
				Turn:    gs.Turn,
				Keyword: eff.Keyword,
			})
			e.logger.Warn("unknown effect keyword",
				zap.String("match_id", gs.MatchID),
				zap.String("keyword", eff.Keyword),
				zap.String("card_code", ctx.Source.Code))
			continue
		}
		h(e, ctx, eff, res)
		if res.Cancelled {
			break
		}
	}
	return res
}

// Canonical param keys. Card data from older dumps uses a spread of aliases;
// NormalizeEffect folds them at the load boundary so handlers only ever see
// these.
var paramAliases = map[string]string{
	"count":                  "amount",
	"damage":                 "amount",
	"heal":                   "amount",
	"damage_amount":          "amount",
	"status":                 "status_code",
	"atk_increase":           "atk",
	"amount_atk":             "atk",
	"atk_delta":              "atk",
	"hp_increase":            "hp",
	"amount_hp":              "hp",
	"hp_delta":               "hp",
	"reflect_spell":          "reflect",
	"prevent_destruction_hp": "floor",
	"duration_turns":         "duration",
}

// NormalizeEffect uppercases the keyword and folds param aliases onto their
// canonical keys. Canonical keys already present win over aliases. Catalog
// and repository loaders call this on every effect before it enters a match.
func NormalizeEffect(eff Effect) Effect {
	out := Effect{Keyword: normalizeKeyword(eff.Keyword)}
	if len(eff.Params) == 0 {
		return out
	}
	out.Params = make(map[string]any, len(eff.Params))
	for k, v := range eff.Params {
		key := strings.ToLower(strings.TrimSpace(k))
		if canonical, ok := paramAliases[key]; ok {
			key = canonical
		}
		if _, exists := out.Params[key]; exists {
			continue
		}
		out.Params[key] = v
	}
	// A second pass so canonical keys from the source always win.
	for k, v := range eff.Params {
		key := strings.ToLower(strings.TrimSpace(k))
		if _, isAlias := paramAliases[key]; !isAlias {
			out.Params[key] = v
		}
	}
	return out
}

// NormalizeEffects applies NormalizeEffect to a whole list.
func NormalizeEffects(effects []Effect) []Effect {
	if effects == nil {
		return nil
	}
	out := make([]Effect, len(effects))
	for i, eff := range effects {
		out[i] = NormalizeEffect(eff)
	}
	return out
}

// Param accessors. JSON decodes numbers as float64 and YAML as int, so both
// shapes are accepted.

func paramInt(eff Effect, key string, def int) int {
	v, ok := eff.Params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

func paramString(eff Effect, key, def string) string {
	if v, ok := eff.Params[key].(string); ok {
		return v
	}
	return def
}

func paramBool(eff Effect, key string, def bool) bool {
	if v, ok := eff.Params[key].(bool); ok {
		return v
	}
	return def
}
