package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"catalog_sync/cmd/catalog/commands"
	"catalog_sync/internal/adapters/marketplace"
	"catalog_sync/internal/adapters/notify"
	"catalog_sync/internal/adapters/observability"
	redisad "catalog_sync/internal/adapters/redis"
	"catalog_sync/internal/adapters/spreadsheet"
	"catalog_sync/internal/app"
	"catalog_sync/internal/domain"
	"catalog_sync/internal/shared"
	"catalog_sync/internal/storage/document"
	"catalog_sync/internal/storage/jsonfile"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Logger = observability.NewLogger(os.Getenv("CATALOG_APP_ENV"))

	if err := commands.New(runner{}).Execute(ctx); err != nil {
		log.Fatal().Err(err).Msg("catalog run failed")
	}
}

type runner struct{}

func (runner) Run(ctx context.Context, configPath string, force []string) error {
	cfg, err := shared.Load(configPath)
	if err != nil {
		return err
	}
	// reinitialize the global logger now that app_env is known
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("spreadsheet", cfg.Paths.Spreadsheet).
		Str("document", cfg.Paths.Document).
		Str("backend", cfg.Cache.Backend).
		Strs("refresh", force).
		Msg("catalog run starting")

	if _, err := os.Stat(cfg.Paths.Document); err != nil {
		return fmt.Errorf("document: %w", err)
	}

	reg := observability.InitRegistry()
	defer func() {
		if err := observability.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			log.Warn().Err(err).Msg("metrics not written")
		}
	}()

	client, err := marketplace.New(marketplace.Options{
		BaseURL:        cfg.Fetch.BaseURL,
		Timeout:        cfg.Fetch.Timeout,
		RequestsPerSec: cfg.Fetch.RequestsPerSec,
		UserAgent:      cfg.Fetch.UserAgent,
		AcceptLanguage: cfg.Fetch.AcceptLanguage,
	})
	if err != nil {
		return err
	}

	store, closeStore, err := newEntryStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	outputs := jsonfile.NewOutputs(map[string]string{
		domain.OutputRecords:     cfg.Paths.Records,
		domain.OutputCompiled:    cfg.Paths.Compiled,
		domain.OutputGrouped:     cfg.Paths.Grouped,
		domain.OutputPriceList:   cfg.Paths.PriceList,
		domain.OutputPriceStatus: cfg.Paths.PriceStatus,
	})

	pipe := app.NewPipeline(
		spreadsheet.NewSource(cfg.Paths.Spreadsheet),
		jsonfile.NewCuratedFile(cfg.Paths.Specified),
		app.NewEnrichmentService(client, store, cfg.Fetch.MaxAge, cfg.Fetch.Delay),
		outputs,
		document.New(cfg.Paths.Document),
		notify.NewEmailNotifier(cfg.Notify),
	)
	_, err = pipe.Run(ctx, force)
	return err
}

func newEntryStore(cfg shared.Config) (domain.EntryStore, func(), error) {
	switch cfg.Cache.Backend {
	case "file":
		return jsonfile.New(cfg.Paths.Cache), func() {}, nil
	case "redis":
		s := redisad.New(cfg.Cache.RedisAddr, cfg.Cache.RedisPass, cfg.Cache.RedisDB, cfg.Cache.RedisKey)
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close failed")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, cfg.Cache.Backend)
	}
}
