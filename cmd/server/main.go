package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/projectsquall/squall-server-go/internal/auth"
	"github.com/projectsquall/squall-server-go/internal/catalog"
	"github.com/projectsquall/squall-server-go/internal/config"
	"github.com/projectsquall/squall-server-go/internal/game"
	"github.com/projectsquall/squall-server-go/internal/repository"
	"github.com/projectsquall/squall-server-go/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting squall server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	db, err := repository.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	deckRepo := repository.NewDeckRepository(db)
	npcRepo := repository.NewNPCRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	authSvc, err := auth.NewService(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to initialize auth service", zap.Error(err))
	}

	engine := game.NewEngine(logger)
	engine.SetLimits(game.Limits{
		SummonsPerTurn:       cfg.Game.SummonsPerTurn,
		SpellTrapsPerTurn:    cfg.Game.SpellTrapsPerTurn,
		HeroAbilitiesPerTurn: cfg.Game.HeroAbilitiesPerTurn,
	})

	// The card catalog drives element re-skins; the database is the source
	// of truth, with the YAML files as a dev fallback.
	if cards, cardsErr := deckRepo.LoadAllCards(ctx); cardsErr == nil && len(cards) > 0 {
		engine.SetVariantResolver(catalog.ResolverFromDefinitions(cards))
		logger.Info("variant resolver built from database", zap.Int("cards", len(cards)))
	} else if cat, catErr := catalog.Load(cfg.Catalog.CardsPath, cfg.Catalog.DecksPath); catErr == nil {
		engine.SetVariantResolver(cat.VariantResolver())
		logger.Info("variant resolver built from catalog files",
			zap.String("cards_path", cfg.Catalog.CardsPath))
	} else {
		logger.Warn("no card catalog available, element re-skins disabled",
			zap.NamedError("db_error", cardsErr), zap.NamedError("catalog_error", catErr))
	}

	hub := server.NewHub(logger)
	battles := server.NewBattleService(engine, deckRepo, npcRepo, playerRepo, matchRepo, hub, cfg.Game.AIMaxActions, logger)
	srv := server.New(cfg.Server, battles, authSvc, playerRepo, hub, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.Error("http server error", zap.Error(err))
	}

	logger.Info("shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("squall server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
