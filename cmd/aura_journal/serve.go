package main

import (
	"aura_journal/internal/ai"
	"aura_journal/internal/config"
	"aura_journal/internal/handlers"
	"aura_journal/internal/storage"
	"aura_journal/internal/usecases"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		logger.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemoryStorage(), nil
	}

	pg, err := storage.OpenPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := pg.Init(ctx); err != nil {
		pg.Close()
		return nil, fmt.Errorf("init progress record: %w", err)
	}
	logger.Info("connected to db successfully")
	return pg, nil
}

// newClassifier returns nil when no provider can be reached; entries are then
// stored unclassified and classification requests fail as upstream errors.
func newClassifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (usecases.Classifier, error) {
	var gen ai.Generator
	switch cfg.AIProvider {
	case config.ProviderGemini:
		if cfg.AIKey == "" {
			logger.Warn("AI_API_KEY is empty, sentiment classification disabled")
			return nil, nil
		}
		client, err := ai.NewGeminiClient(ctx, cfg.AIKey, cfg.AIModel)
		if err != nil {
			return nil, err
		}
		gen = client
	default:
		if cfg.AIKey == "" && cfg.AIBaseURL == "" {
			logger.Warn("AI_API_KEY is empty, sentiment classification disabled")
			return nil, nil
		}
		gen = ai.NewChatClient(cfg.AIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)
	}
	logger.Info("sentiment classifier ready", zap.String("provider", cfg.AIProvider))
	return ai.NewSentimentClassifier(gen, logger), nil
}

func newService(ctx context.Context, cfg *config.Config, store storage.Store, logger *zap.Logger) (*usecases.JournalService, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	templates, err := config.LoadInsights(cfg.InsightsFile)
	if err != nil {
		return nil, err
	}
	classifier, err := newClassifier(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return usecases.NewJournalService(store, classifier, logger,
		usecases.WithLocation(loc),
		usecases.WithClassifyTimeout(cfg.AITimeout),
		usecases.WithInsights(usecases.NewInsightSynthesizer(templates.Onboarding, templates.Encouragements)),
	), nil
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	svc, err := newService(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.NewRouter(svc, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
