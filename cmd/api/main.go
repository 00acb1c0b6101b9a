package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jomtravel/group-trip-engine/internal/config"
	"github.com/jomtravel/group-trip-engine/internal/engine"
	httpapi "github.com/jomtravel/group-trip-engine/internal/http"
	"github.com/jomtravel/group-trip-engine/internal/logging"
	"github.com/jomtravel/group-trip-engine/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger().Fatal().Err(err).Msg("load config")
	}
	logging.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logging.Logger()

	store, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("open database")
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	if cfg.Storage.SeedOnEmpty {
		if err := seedCatalog(store, cfg.Storage.CatalogPath); err != nil {
			log.Warn().Err(err).Msg("catalog seed skipped")
		}
	}

	bank := engine.DefaultPhraseBank()
	if cfg.Storage.PhrasesPath != "" {
		if bank, err = engine.LoadPhraseBankFromFile(cfg.Storage.PhrasesPath); err != nil {
			log.Warn().Err(err).Msg("using default phrase bank")
		}
	}

	srv := httpapi.NewServer(engine.NewEngine(bank), store, store, *log)

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("address", cfg.Server.Address).Msg("API listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// seedCatalog loads the destination seed file into an empty catalog. A
// missing seed file is fine; an already-populated catalog is left alone.
func seedCatalog(store *storage.SQLiteStore, path string) error {
	n, err := store.CountDestinations()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	items, err := storage.LoadDestinationsFromFile(path)
	if err != nil {
		return err
	}
	return store.UpsertManyDestinations(items)
}
