package main

import (
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"itemize/internal/config"
	"itemize/internal/extract"
	"itemize/internal/handler"
	"itemize/internal/review"
	"itemize/internal/router"
	"itemize/internal/ruleset"
	"itemize/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	// Build the rule set once at startup. A bad overlay directory is fatal.
	var rules *ruleset.RuleSet
	if cfg.Ruleset.Path != "" {
		rules, err = ruleset.Load(cfg.Ruleset.Path)
	} else {
		rules, err = ruleset.Builtin()
	}
	if err != nil {
		return fmt.Errorf("failed to build rule set: %w", err)
	}
	logger.Info("rule set loaded",
		zap.String("version", rules.Version),
		zap.Int("characters", len(rules.Characters)),
		zap.Int("words", len(rules.Words)),
		zap.Int("vendors", len(rules.Vendors)),
		zap.Int("vocabulary", len(rules.Vocabulary)),
	)

	// Initialize services
	extractSvc := extract.NewService(rules)
	reviewSvc := review.NewService()
	mem := store.NewMemory()

	// Initialize handlers
	extractionH := handler.NewExtractionHandler(extractSvc, mem, logger)
	reviewH := handler.NewReviewHandler(mem, reviewSvc, logger)
	healthH := handler.NewHealthHandler(rules.Version)

	// Setup router
	r := router.Setup(logger, cfg.CORS.AllowedOrigins, extractionH, reviewH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server starting", zap.String("addr", cfg.Server.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func buildLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
