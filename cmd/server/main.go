package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/pollbot/internal/adapters/generator/seker"
	"github.com/vncsmyrnk/pollbot/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollbot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollbot/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollbot/internal/config"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
	"github.com/vncsmyrnk/pollbot/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var archive ports.ResultArchive
	if cfg.ArchiveEnabled() {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			logger.Error("database ping failed", "error", err)
			os.Exit(1)
		}
		archive = postgres.NewResultArchiveRepository(db)
		logger.Info("results archive enabled")
	}

	var generator ports.QuestionGenerator
	if cfg.GeneratorEnabled() {
		generator, err = seker.NewClient(cfg.GeneratorURL, cfg.GeneratorID, cfg.GeneratorTimeout)
		if err != nil {
			logger.Error("failed to create question generator", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("question generator disabled: POLL_GENERATOR_ID not set")
	}

	// Initialize Repositories
	participants := memory.NewParticipantRegistry()
	polls := memory.NewPollStore()

	// Initialize Services
	lifecycle := services.NewLifecycle(polls, participants, services.SystemClock(), logger)

	resultsSvc := services.NewResultsService(polls)
	archiveSvc := services.NewArchiveService(resultsSvc, archive, services.SystemClock(), logger)
	lifecycle.SetCloseListener(archiveSvc)

	pollSvc := services.NewPollService(polls, participants, lifecycle, cfg.DefaultDeadline, logger)
	voteSvc := services.NewVoteService(polls, participants, lifecycle, logger)
	participantSvc := services.NewParticipantService(participants, logger)
	draftSvc := services.NewDraftService(generator, logger)

	handler := http.NewHandler(
		http.NewPollHandler(pollSvc, resultsSvc, draftSvc),
		http.NewVoteHandler(voteSvc),
		http.NewParticipantHandler(participantSvc),
	)
	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	lifecycle.Shutdown()
	archiveSvc.Wait()
}
