package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vovarama1992/divinaci-bridge/internal/ai"
	"github.com/Vovarama1992/divinaci-bridge/internal/chat"
	"github.com/Vovarama1992/divinaci-bridge/internal/config"
	"github.com/Vovarama1992/divinaci-bridge/internal/guard"
	"github.com/Vovarama1992/divinaci-bridge/internal/logging"
	"github.com/Vovarama1992/divinaci-bridge/internal/obfuscate"
)

type flags struct {
	port      string
	envFile   string
	rulesFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "divinaci-bridge",
		Short:         "Chat pipeline: language lock, streaming completion, reply validation",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVar(&f.port, "port", "", "listen port (overrides PORT)")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "env file to load instead of .env")
	cmd.Flags().StringVar(&f.rulesFile, "rules", "", "YAML rules file (overrides RULES_FILE)")
	return cmd
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return err
	}
	if f.port != "" {
		cfg.Port = f.port
	}
	if f.rulesFile != "" {
		cfg.RulesFile = f.rulesFile
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// --- rules ---
	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return err
	}
	g, err := guard.New(rules.Guardrails)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidRules, err)
	}
	obf, err := obfuscate.New(rules.ProtectedTerms)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidRules, err)
	}

	// --- journal ---
	var journal chat.Journal = chat.NoopJournal{}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db open error: %w", err)
		}
		defer db.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return fmt.Errorf("db ping error: %w", err)
		}
		pj := chat.NewJournal(db)
		if err := pj.EnsureSchema(pingCtx); err != nil {
			return fmt.Errorf("db schema error: %w", err)
		}
		journal = pj
		logger.Info("exchange journal enabled")
	}

	// --- chat module wiring ---
	var svc chat.Service
	aiClient, err := ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		ImageModel: cfg.ImageModel,
		BaseURL:    cfg.BaseURL,
	}, logger)
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		logger.Error("OPENAI_API_KEY not set, chat endpoint will answer 500")
	case err != nil:
		return err
	default:
		svc = chat.NewService(aiClient, g, obf, journal, chat.Options{
			UpstreamTimeout:     cfg.UpstreamTimeout,
			StreamTimeout:       cfg.StreamTimeout,
			ImageTimeout:        cfg.ImageTimeout,
			ReliabilityExponent: cfg.ReliabilityExponent,
		}, logger)
	}

	r := newRouter(chat.NewHandler(svc, logger))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(h *chat.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
	}))

	chat.RegisterRoutes(r, h)

	// --- health ---
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
