package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/copycraft-ai/copycraft/internal/api"
	"github.com/copycraft-ai/copycraft/internal/config"
	"github.com/copycraft-ai/copycraft/internal/credit"
	"github.com/copycraft-ai/copycraft/internal/db"
	"github.com/copycraft-ai/copycraft/internal/history"
	"github.com/copycraft-ai/copycraft/internal/llm"
	"github.com/copycraft-ai/copycraft/internal/preset"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	database, err := db.New(cfg.DatabaseFile)
	if err != nil {
		logger.Fatal("failed to initialize database",
			zap.Error(err),
			zap.String("dbPath", cfg.DatabaseFile))
	}

	ledger := credit.NewLedger(database, logger,
		credit.WithDailyLimit(cfg.DailyCredits),
		credit.WithLocation(cfg.Timezone))
	historyStore := history.NewStore(database)
	presetStore := preset.NewStore(database)

	llmService, err := llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, ledger, historyStore, logger)
	if err != nil {
		logger.Fatal("failed to initialize LLM service", zap.Error(err))
	}

	handler := api.NewHandler(ledger, historyStore, presetStore, llmService, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	go func() {
		logger.Info("starting server", zap.Int("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = multierr.Append(server.Shutdown(ctx), database.Close())
	if err != nil {
		logger.Error("shutdown finished with errors", zap.Error(err))
		os.Exit(1)
	}
}
