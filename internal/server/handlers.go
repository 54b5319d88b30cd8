package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/projectsquall/squall-server-go/internal/game"
	"github.com/projectsquall/squall-server-go/internal/repository"
)

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", zap.Error(err))
	}
}

// writeError maps domain errors onto HTTP statuses: rejections are client
// errors with their stable reason code, missing rows are 404s, everything
// else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var reject *game.RejectError
	if errors.As(err, &reject) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: reject.Error(), Reason: reject.Reason})
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	var cfgErr *game.ConfigError
	if errors.As(err, &cfgErr) {
		s.logger.Error("card data error", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.logger.Error("request failed", zap.Error(err))
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartBattle(w http.ResponseWriter, r *http.Request) {
	var req StartBattleRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	resp, err := s.battles.StartBattle(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

type actionRequest struct {
	MatchID     string      `json:"match_id"`
	PlayerIndex int         `json:"player_index"`
	Action      game.Action `json:"action"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	resp, err := s.battles.Action(r.Context(), req.MatchID, req.PlayerIndex, req.Action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type resolveTrapRequest struct {
	MatchID        string `json:"match_id"`
	PlayerIndex    int    `json:"player_index"`
	DecisionID     string `json:"decision_id"`
	TrapInstanceID string `json:"trap_instance_id,omitempty"`
	Activate       bool   `json:"activate"`
}

func (s *Server) handleResolveTrap(w http.ResponseWriter, r *http.Request) {
	var req resolveTrapRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	resp, err := s.battles.ResolveTrap(r.Context(), req.MatchID, req.PlayerIndex, req.DecisionID, req.TrapInstanceID, req.Activate)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	resp, err := s.battles.GetState(r.Context(), matchID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	if _, err := s.battles.GetState(r.Context(), matchID); err != nil {
		s.writeError(w, err)
		return
	}
	s.hub.Subscribe(w, r, matchID)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}
	if _, err := s.accounts.GetByUsername(r.Context(), req.Username); err == nil {
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "username already taken"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.writeError(w, err)
		return
	}
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	playerID, err := s.accounts.CreatePlayer(r.Context(), req.Username, hash)
	if err != nil {
		s.writeError(w, err)
		return
	}
	token, err := s.auth.IssueToken(playerID, req.Username)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("player registered", zap.String("player_id", playerID))
	s.writeJSON(w, http.StatusCreated, authResponse{PlayerID: playerID, Username: req.Username, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	player, err := s.accounts.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
			return
		}
		s.writeError(w, err)
		return
	}
	if !s.auth.CheckPassword(player.PasswordHash, req.Password) {
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}
	token, err := s.auth.IssueToken(player.ID, player.Username)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, authResponse{PlayerID: player.ID, Username: player.Username, Token: token})
}
