package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/teenquiz/internal/cache"
	"github.com/abhisek/teenquiz/internal/chat"
	"github.com/abhisek/teenquiz/internal/config"
	"github.com/abhisek/teenquiz/internal/llm"
	"github.com/abhisek/teenquiz/internal/quiz"
	"github.com/abhisek/teenquiz/internal/safety"
	"github.com/abhisek/teenquiz/internal/server"
	"github.com/abhisek/teenquiz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// runServer wires the whole application and serves until interrupted.
func runServer(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return fmt.Errorf("create database dir: %w", err)
		}
		cfg.DBPath = p
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	c := cache.New(ctx, cfg.RedisURL, cfg.CacheTTL, log)
	defer c.Close()

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.Events(), log)
	if err != nil {
		return fmt.Errorf("init LLM provider: %w", err)
	}

	filter := safety.NewFilter()
	chatSvc := chat.NewService(provider, filter, c, log, chat.DefaultConfig())
	quizSvc := quiz.NewService(provider, st, log, quiz.DefaultConfig())

	h := server.NewHandler(chatSvc, quizSvc, filter, c, log, version)
	router := server.NewRouter(h, log, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", cfg.Addr()),
			zap.String("provider", provider.ModelID()),
			zap.String("db", cfg.DBPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
