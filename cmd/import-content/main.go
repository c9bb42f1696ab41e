// Package main provides the content import command: it parses the bestiary
// document and loadout sheets, writes YAML catalogs, and optionally persists
// them to PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hexmark/grimoire/internal/config"
	"github.com/hexmark/grimoire/internal/importer"
	"github.com/hexmark/grimoire/internal/observability"
	"github.com/hexmark/grimoire/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	store := flag.Bool("store", false, "also persist catalogs to PostgreSQL")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	src := importer.NewFSSource(cfg.Content.BestiaryFile, cfg.Content.LoadoutFiles)
	imp := importer.New(src, logger)
	if err := imp.Run(cfg.Content.OutputDir); err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	if *store {
		if err := storeCatalogs(context.Background(), cfg, src, logger); err != nil {
			logger.Fatal("storing catalogs failed", zap.Error(err))
		}
	}
}

func storeCatalogs(ctx context.Context, cfg config.Config, src importer.Source, logger *zap.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	enemies, _ := src.LoadEnemies()
	cards, _ := src.LoadCards()

	if err := postgres.NewEnemyRepository(pool.DB()).ReplaceAll(ctx, enemies); err != nil {
		return fmt.Errorf("storing enemies: %w", err)
	}
	if err := postgres.NewCardRepository(pool.DB()).ReplaceAll(ctx, cards); err != nil {
		return fmt.Errorf("storing cards: %w", err)
	}

	logger.Info("stored catalogs",
		zap.Int("enemies", len(enemies)), zap.Int("cards", len(cards)))
	return nil
}
