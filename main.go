package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"

	"promptpad/pkg/api"
	"promptpad/pkg/api/handler"
	"promptpad/pkg/database"
	"promptpad/pkg/logger"
	"promptpad/pkg/openai"
	"promptpad/pkg/repository"
	"promptpad/pkg/service"
	"promptpad/pkg/services"
	"promptpad/pkg/store"
	"promptpad/pkg/workers"
)

type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`
	PgURL    string `env:"DATABASE_URL"`
	PgHost   string `env:"DB_HOST"`
}

func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		slog.Error("parsing env config", logger.Err(err))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, &logger.Options{
		Level:      parseLogLevel(cfg.LogLevel),
		TimeFormat: time.DateTime,
		AddSource:  true,
	})))

	if err := runMain(cfg); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain(cfg Config) error {
	serviceGroup, err := setupServices(cfg)
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return serviceGroup.Run(ctx)
}

func setupServices(cfg Config) (service.Group, error) {
	stateRepository, err := buildStateRepository(cfg)
	if err != nil {
		return nil, err
	}

	appStore := store.New(stateRepository)
	openAIClient := openai.NewClient()
	generateService := services.NewGenerateService(appStore, openAIClient)

	router := api.NewRouter(
		handler.NewState(appStore),
		handler.NewSessions(appStore),
		handler.NewMessages(appStore),
		handler.NewTools(appStore),
		handler.NewImport(appStore),
		handler.NewGenerate(generateService),
		handler.NewKeys(appStore),
		handler.NewUI(appStore),
	)

	srv, err := workers.NewServer(cfg.Addr, router)
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}

	return service.Group{srv}, nil
}

func buildStateRepository(cfg Config) (store.StateRepository, error) {
	if cfg.PgURL == "" && cfg.PgHost == "" {
		slog.Info("no database configured, state is kept in memory only")
		return repository.NewMemoryStateRepository(), nil
	}

	db, err := database.NewPostgres(cfg.PgURL, cfg.PgHost)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}
	return repository.NewPgStateRepository(db), nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
