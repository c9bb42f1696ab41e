package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hexmark/grimoire/internal/game/bestiary"
	"github.com/hexmark/grimoire/internal/game/loadout"
)

// ErrEnemyNotFound is returned when an enemy lookup yields no results.
var ErrEnemyNotFound = errors.New("enemy not found")

// ErrCardNotFound is returned when a loadout card lookup yields no results.
var ErrCardNotFound = errors.New("loadout card not found")

// EnemyRepository persists parsed bestiary enemies as JSONB documents keyed
// by enemy ID. Diagnostic sentinels are never stored.
type EnemyRepository struct {
	db *pgxpool.Pool
}

// NewEnemyRepository creates an EnemyRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewEnemyRepository(db *pgxpool.Pool) *EnemyRepository {
	return &EnemyRepository{db: db}
}

// ReplaceAll upserts every non-diagnostic enemy in a single transaction and
// removes enemies no longer present in the catalog.
//
// Precondition: every enemy must have a non-empty ID.
// Postcondition: the enemies table matches the given catalog exactly, or the
// transaction is rolled back and a non-nil error returned.
func (r *EnemyRepository) ReplaceAll(ctx context.Context, enemies []bestiary.Enemy) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM enemies`); err != nil {
		return fmt.Errorf("clearing enemies: %w", err)
	}

	for _, e := range enemies {
		if e.IsDiagnostic() {
			continue
		}
		doc, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("serialising enemy %q: %w", e.ID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO enemies (id, name, doc)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, doc = EXCLUDED.doc, updated_at = NOW()`,
			e.ID, e.Name, doc,
		); err != nil {
			return fmt.Errorf("upserting enemy %q: %w", e.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing enemies: %w", err)
	}
	return nil
}

// GetByID retrieves an enemy by its catalog ID.
//
// Precondition: id must be non-empty.
// Postcondition: Returns the Enemy or ErrEnemyNotFound.
func (r *EnemyRepository) GetByID(ctx context.Context, id string) (*bestiary.Enemy, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM enemies WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnemyNotFound
		}
		return nil, fmt.Errorf("querying enemy: %w", err)
	}

	var e bestiary.Enemy
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, fmt.Errorf("decoding enemy %q: %w", id, err)
	}
	return &e, nil
}

// List returns all stored enemies ordered by name.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *EnemyRepository) List(ctx context.Context) ([]bestiary.Enemy, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM enemies ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing enemies: %w", err)
	}
	defer rows.Close()

	enemies := make([]bestiary.Enemy, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning enemy row: %w", err)
		}
		var e bestiary.Enemy
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, fmt.Errorf("decoding enemy row: %w", err)
		}
		enemies = append(enemies, e)
	}
	return enemies, rows.Err()
}

// CardRepository persists parsed loadout cards as JSONB documents keyed by
// card ID. Diagnostic sentinels are never stored.
type CardRepository struct {
	db *pgxpool.Pool
}

// NewCardRepository creates a CardRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCardRepository(db *pgxpool.Pool) *CardRepository {
	return &CardRepository{db: db}
}

// ReplaceAll upserts every non-diagnostic card in a single transaction and
// removes cards no longer present in the catalog.
//
// Precondition: every card must have a non-empty ID.
// Postcondition: the cards table matches the given catalog exactly, or the
// transaction is rolled back and a non-nil error returned.
func (r *CardRepository) ReplaceAll(ctx context.Context, cards []loadout.LoadoutCard) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("clearing cards: %w", err)
	}

	for _, c := range cards {
		if c.IsDiagnostic() {
			continue
		}
		doc, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("serialising card %q: %w", c.ID, err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO cards (id, name, doc)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, doc = EXCLUDED.doc, updated_at = NOW()`,
			c.ID, c.Name, doc,
		); err != nil {
			return fmt.Errorf("upserting card %q: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing cards: %w", err)
	}
	return nil
}

// GetByID retrieves a loadout card by its catalog ID.
//
// Precondition: id must be non-empty.
// Postcondition: Returns the LoadoutCard or ErrCardNotFound.
func (r *CardRepository) GetByID(ctx context.Context, id string) (*loadout.LoadoutCard, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT doc FROM cards WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("querying card: %w", err)
	}

	var c loadout.LoadoutCard
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("decoding card %q: %w", id, err)
	}
	return &c, nil
}

// List returns all stored cards ordered by name.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CardRepository) List(ctx context.Context) ([]loadout.LoadoutCard, error) {
	rows, err := r.db.Query(ctx, `SELECT doc FROM cards ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	cards := make([]loadout.LoadoutCard, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		var c loadout.LoadoutCard
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("decoding card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
