// Package server exposes the battle engine over HTTP JSON plus a per-match
// websocket event feed.
package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/projectsquall/squall-server-go/internal/auth"
	"github.com/projectsquall/squall-server-go/internal/config"
	"github.com/projectsquall/squall-server-go/internal/repository"
)

// AccountStore is the slice of the player repository the auth endpoints use.
type AccountStore interface {
	PlayerSource
	GetByUsername(ctx context.Context, username string) (*repository.Player, error)
	CreatePlayer(ctx context.Context, username, passwordHash string) (string, error)
}

// Server ties the HTTP surface together.
type Server struct {
	cfg      config.ServerConfig
	logger   *zap.Logger
	battles  *BattleService
	auth     *auth.Service
	accounts AccountStore
	hub      *Hub

	httpServer *http.Server
}

func New(cfg config.ServerConfig, battles *BattleService, authSvc *auth.Service, accounts AccountStore, hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		battles:  battles,
		auth:     authSvc,
		accounts: accounts,
		hub:      hub,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /battle/start", s.handleStartBattle)
	mux.HandleFunc("POST /battle/action", s.handleAction)
	mux.HandleFunc("POST /battle/resolve-trap", s.handleResolveTrap)
	mux.HandleFunc("GET /battle/{id}", s.handleGetState)
	mux.HandleFunc("GET /battle/{id}/ws", s.handleSubscribe)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr))
	})
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("address", s.cfg.Address))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the event feeds.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.CloseAll()
	}
	return s.httpServer.Shutdown(ctx)
}
