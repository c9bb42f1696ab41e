// Package importer orchestrates the content import pipeline: raw authored
// documents in, validated YAML catalogs out.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hexmark/grimoire/internal/game/bestiary"
	"github.com/hexmark/grimoire/internal/game/loadout"
)

// Catalog file names written to the output directory.
const (
	EnemiesFile = "enemies.yaml"
	CardsFile   = "cards.yaml"
)

// Importer drives the import pipeline from a Source to an output directory.
type Importer struct {
	source Source
	logger *zap.Logger
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, logger *zap.Logger) *Importer {
	return &Importer{source: source, logger: logger}
}

// Run parses the source content, validates the resulting catalogs, and writes
// them as YAML files to outputDir. Parse warnings are logged, never fatal;
// only I/O failures and invalid catalogs abort the run.
//
// Precondition: outputDir must exist or be creatable.
// Postcondition: enemies.yaml and cards.yaml are written to outputDir, or an
// error is returned.
func (imp *Importer) Run(outputDir string) error {
	overall := time.Now()

	t0 := time.Now()
	enemies, enemyWarnings := imp.source.LoadEnemies()
	for _, w := range enemyWarnings {
		imp.logger.Warn("bestiary parse warning",
			zap.Int("line", w.Line), zap.String("message", w.Message))
	}
	imp.logger.Info("parsed bestiary",
		zap.Int("enemies", len(enemies)),
		zap.Int("warnings", len(enemyWarnings)),
		zap.Duration("elapsed", time.Since(t0).Round(time.Millisecond)))

	t1 := time.Now()
	cards, cardWarnings := imp.source.LoadCards()
	for _, w := range cardWarnings {
		imp.logger.Warn("loadout parse warning",
			zap.Int("row", w.Row), zap.String("message", w.Message))
	}
	imp.logger.Info("parsed loadout sheets",
		zap.Int("cards", len(cards)),
		zap.Int("warnings", len(cardWarnings)),
		zap.Duration("elapsed", time.Since(t1).Round(time.Millisecond)))

	for sev, n := range DiagnosticSummary(enemies, cards) {
		imp.logger.Warn("import produced diagnostic sentinels",
			zap.String("severity", sev), zap.Int("count", n))
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	if err := imp.writeEnemies(outputDir, enemies); err != nil {
		return err
	}
	if err := imp.writeCards(outputDir, cards); err != nil {
		return err
	}

	imp.logger.Info("import complete",
		zap.Duration("total", time.Since(overall).Round(time.Millisecond)))
	return nil
}

func (imp *Importer) writeEnemies(outputDir string, enemies []bestiary.Enemy) error {
	catalog := bestiary.Catalog{Enemies: enemies}
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("serialising enemy catalog: %w", err)
	}

	// Validate output is loadable before writing.
	if _, err := bestiary.LoadCatalogFromBytes(data); err != nil {
		return fmt.Errorf("enemy catalog failed validation: %w", err)
	}

	outPath := filepath.Join(outputDir, EnemiesFile)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing enemy catalog to %s: %w", outPath, err)
	}
	imp.logger.Info("wrote enemy catalog",
		zap.String("path", outPath), zap.Int("enemies", len(enemies)))
	return nil
}

func (imp *Importer) writeCards(outputDir string, cards []loadout.LoadoutCard) error {
	catalog := loadout.Catalog{Cards: cards}
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("serialising card catalog: %w", err)
	}

	if _, err := loadout.LoadCatalogFromBytes(data); err != nil {
		return fmt.Errorf("card catalog failed validation: %w", err)
	}

	outPath := filepath.Join(outputDir, CardsFile)
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing card catalog to %s: %w", outPath, err)
	}
	imp.logger.Info("wrote card catalog",
		zap.String("path", outPath), zap.Int("cards", len(cards)))
	return nil
}
