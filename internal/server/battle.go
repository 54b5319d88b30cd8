package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/projectsquall/squall-server-go/internal/game"
	"github.com/projectsquall/squall-server-go/internal/game/ai"
	"github.com/projectsquall/squall-server-go/internal/repository"
)

// DeckSource resolves a deck id into expanded card definitions.
type DeckSource interface {
	LoadDeckDefinitions(ctx context.Context, deckID string) ([]game.CardDefinition, error)
}

// NPCSource picks a scripted opponent.
type NPCSource interface {
	PickNPC(ctx context.Context, id string) (*repository.NPC, error)
}

// PlayerSource looks up player identities.
type PlayerSource interface {
	GetPlayer(ctx context.Context, id string) (*repository.Player, error)
}

// MatchStore persists match records and snapshots. A nil store keeps matches
// in memory only.
type MatchStore interface {
	CreateMatch(ctx context.Context, rec *repository.MatchRecord) error
	GetMatch(ctx context.Context, id string) (*repository.MatchRecord, error)
	UpdateMatchState(ctx context.Context, id string, state []byte, status string, winner int) error
}

// npcIndex is the side the scripted opponent always plays in PVE.
const npcIndex = 2

// liveMatch serializes access to one match's state.
type liveMatch struct {
	mu   sync.Mutex
	gs   *game.GameState
	mode string
}

// BattleService orchestrates matches: creation, intent application, scripted
// opponent turns, persistence, and event broadcast.
type BattleService struct {
	engine       *game.Engine
	decks        DeckSource
	npcs         NPCSource
	players      PlayerSource
	store        MatchStore
	hub          *Hub
	logger       *zap.Logger
	aiMaxActions int

	mu      sync.Mutex
	matches map[string]*liveMatch
}

func NewBattleService(engine *game.Engine, decks DeckSource, npcs NPCSource, players PlayerSource, store MatchStore, hub *Hub, aiMaxActions int, logger *zap.Logger) *BattleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BattleService{
		engine:       engine,
		decks:        decks,
		npcs:         npcs,
		players:      players,
		store:        store,
		hub:          hub,
		logger:       logger,
		aiMaxActions: aiMaxActions,
		matches:      make(map[string]*liveMatch),
	}
}

// StartBattleRequest describes a new match. PVE names an optional NPC; PVP
// names the second player and their deck.
type StartBattleRequest struct {
	PlayerID       string `json:"player_id"`
	DeckID         string `json:"deck_id"`
	Mode           string `json:"mode"`
	NPCID          string `json:"npc_id,omitempty"`
	OpponentID     string `json:"opponent_id,omitempty"`
	OpponentDeckID string `json:"opponent_deck_id,omitempty"`
}

// BattleResponse is the common reply shape: the full state plus the log
// entries this call appended.
type BattleResponse struct {
	MatchID   string                `json:"match_id"`
	GameState *game.GameState       `json:"game_state"`
	Events    []game.Event          `json:"events,omitempty"`
	Pending   *game.PendingDecision `json:"pending_decision,omitempty"`
	Cancelled bool                  `json:"cancelled,omitempty"`
}

func (s *BattleService) StartBattle(ctx context.Context, req *StartBattleRequest) (*BattleResponse, error) {
	p1, err := s.players.GetPlayer(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	deck1, err := s.decks.LoadDeckDefinitions(ctx, req.DeckID)
	if err != nil {
		return nil, err
	}

	var (
		name2 string
		deck2 []game.CardDefinition
		rec   repository.MatchRecord
	)
	rec.Mode = req.Mode
	rec.Player1ID = req.PlayerID
	switch req.Mode {
	case repository.ModePVE:
		npc, err := s.npcs.PickNPC(ctx, req.NPCID)
		if err != nil {
			return nil, err
		}
		deck2, err = s.decks.LoadDeckDefinitions(ctx, npc.DeckID)
		if err != nil {
			return nil, err
		}
		name2 = npc.Name
		rec.NPCID = npc.ID
	case repository.ModePVP:
		p2, err := s.players.GetPlayer(ctx, req.OpponentID)
		if err != nil {
			return nil, err
		}
		deck2, err = s.decks.LoadDeckDefinitions(ctx, req.OpponentDeckID)
		if err != nil {
			return nil, err
		}
		name2 = p2.Username
		rec.Player2ID = p2.ID
	default:
		return nil, game.Reject(game.ReasonUnknownAction, "unknown match mode %q", req.Mode)
	}
	if err := repository.ValidateModeCombo(rec.Mode, rec.Player1ID, rec.Player2ID, rec.NPCID); err != nil {
		return nil, err
	}

	matchID := uuid.NewString()
	gs, err := game.NewMatch(matchID, p1.Username, deck1, name2, deck2)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		snapshot, err := game.MarshalGameState(gs)
		if err != nil {
			return nil, err
		}
		rec.ID = matchID
		rec.State = snapshot
		rec.Status = string(gs.Status)
		if err := s.store.CreateMatch(ctx, &rec); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.matches[matchID] = &liveMatch{gs: gs, mode: req.Mode}
	s.mu.Unlock()

	s.logger.Info("match started",
		zap.String("match_id", matchID),
		zap.String("mode", req.Mode),
		zap.String("player1", req.PlayerID))
	return &BattleResponse{MatchID: matchID, GameState: gs, Events: gs.Log}, nil
}

// Action applies one intent. In PVE mode NPC trap decisions resolve
// automatically, and a hand-off to the NPC plays out its whole turn before
// returning.
func (s *BattleService) Action(ctx context.Context, matchID string, playerIndex int, act game.Action) (*BattleResponse, error) {
	lm, err := s.match(ctx, matchID)
	if err != nil {
		return nil, err
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()

	res, err := s.engine.Apply(lm.gs, playerIndex, act)
	if err != nil {
		return nil, err
	}
	events := res.Events
	cancelled := res.Cancelled

	more, moreCancelled, err := s.driveNPC(lm)
	if err != nil {
		return nil, err
	}
	events = append(events, more...)
	cancelled = cancelled || moreCancelled

	if err := s.persist(ctx, lm.gs); err != nil {
		return nil, err
	}
	s.broadcast(matchID, events)
	return &BattleResponse{
		MatchID:   matchID,
		GameState: lm.gs,
		Events:    events,
		Pending:   lm.gs.Pending,
		Cancelled: cancelled,
	}, nil
}

// ResolveTrap completes a pending trap decision for a human defender.
func (s *BattleService) ResolveTrap(ctx context.Context, matchID string, playerIndex int, decisionID, trapInstanceID string, activate bool) (*BattleResponse, error) {
	lm, err := s.match(ctx, matchID)
	if err != nil {
		return nil, err
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()

	res, err := s.engine.ResolveTrapDecision(lm.gs, playerIndex, decisionID, trapInstanceID, activate)
	if err != nil {
		return nil, err
	}
	events := res.Events
	cancelled := res.Cancelled

	more, moreCancelled, err := s.driveNPC(lm)
	if err != nil {
		return nil, err
	}
	events = append(events, more...)
	cancelled = cancelled || moreCancelled

	if err := s.persist(ctx, lm.gs); err != nil {
		return nil, err
	}
	s.broadcast(matchID, events)
	return &BattleResponse{
		MatchID:   matchID,
		GameState: lm.gs,
		Events:    events,
		Pending:   lm.gs.Pending,
		Cancelled: cancelled,
	}, nil
}

// GetState returns the current state of a match.
func (s *BattleService) GetState(ctx context.Context, matchID string) (*BattleResponse, error) {
	lm, err := s.match(ctx, matchID)
	if err != nil {
		return nil, err
	}
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return &BattleResponse{MatchID: matchID, GameState: lm.gs, Pending: lm.gs.Pending}, nil
}

// driveNPC advances the scripted side as far as it can: trap decisions it
// owns, then its whole turn when it holds priority.
func (s *BattleService) driveNPC(lm *liveMatch) (events []game.Event, cancelled bool, err error) {
	if lm.mode != repository.ModePVE {
		return nil, false, nil
	}
	for lm.gs.InProgress() {
		if pd := lm.gs.Pending; pd != nil {
			if pd.DefendingPlayer != npcIndex {
				return events, cancelled, nil
			}
			trapID, activate := ai.DecideTrap(lm.gs)
			res, rerr := s.engine.ResolveTrapDecision(lm.gs, npcIndex, pd.ID, trapID, activate)
			if rerr != nil {
				return events, cancelled, rerr
			}
			events = append(events, res.Events...)
			cancelled = cancelled || res.Cancelled
			continue
		}
		if lm.gs.CurrentPlayer != npcIndex {
			return events, cancelled, nil
		}
		turnEvents, terr := ai.RunTurn(s.engine, lm.gs, npcIndex, s.aiMaxActions)
		events = append(events, turnEvents...)
		if terr != nil {
			return events, cancelled, terr
		}
		if lm.gs.InProgress() && lm.gs.Pending == nil && lm.gs.CurrentPlayer == npcIndex {
			// Action cap hit without a hand-off; end the turn outright.
			res, rerr := s.engine.Apply(lm.gs, npcIndex, game.Action{Type: game.ActionEndTurn})
			if rerr != nil {
				return events, cancelled, rerr
			}
			events = append(events, res.Events...)
		}
	}
	return events, cancelled, nil
}

// match returns the live handle for a match, loading it from the store on a
// cold cache (for example after a restart).
func (s *BattleService) match(ctx context.Context, matchID string) (*liveMatch, error) {
	s.mu.Lock()
	lm, ok := s.matches[matchID]
	s.mu.Unlock()
	if ok {
		return lm, nil
	}
	if s.store == nil {
		return nil, fmt.Errorf("match %s: %w", matchID, repository.ErrNotFound)
	}
	rec, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	gs, err := game.UnmarshalGameState(rec.State)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.matches[matchID]; ok {
		return existing, nil
	}
	lm = &liveMatch{gs: gs, mode: rec.Mode}
	s.matches[matchID] = lm
	return lm, nil
}

func (s *BattleService) persist(ctx context.Context, gs *game.GameState) error {
	if s.store == nil {
		return nil
	}
	snapshot, err := game.MarshalGameState(gs)
	if err != nil {
		return err
	}
	return s.store.UpdateMatchState(ctx, gs.MatchID, snapshot, string(gs.Status), gs.Winner)
}

func (s *BattleService) broadcast(matchID string, events []game.Event) {
	if s.hub == nil || len(events) == 0 {
		return
	}
	s.hub.Broadcast(matchID, events)
}
