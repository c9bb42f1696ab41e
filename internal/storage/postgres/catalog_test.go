package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexmark/grimoire/internal/game/bestiary"
	"github.com/hexmark/grimoire/internal/game/loadout"
	"github.com/hexmark/grimoire/internal/game/stats"
	"github.com/hexmark/grimoire/internal/storage/postgres"
	"github.com/hexmark/grimoire/internal/testutil"
)

func makeTestEnemy(id, name string) bestiary.Enemy {
	return bestiary.Enemy{
		ID:   id,
		Name: name,
		BaseStats: stats.Block{
			HP: 10, MV: 4, Def: 2,
		},
		BaseAttacks: []bestiary.Attack{
			{Kind: "Melee", Details: "Claw, 2 damage"},
		},
	}
}

func makeTestCard(id, name string) loadout.LoadoutCard {
	return loadout.LoadoutCard{
		ID:          id,
		Name:        name,
		Description: "A test kit.",
		Items: []loadout.LoadoutItem{
			{
				ID:          id + "-1",
				AbilityName: "Iron Plate",
				StatModifiers: []stats.Modifier{
					{Stat: stats.KindDef, Delta: 2},
				},
			},
		},
	}
}

func TestEnemyRepository_ReplaceAllAndGet(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewEnemyRepository(pool)
	ctx := context.Background()

	enemies := []bestiary.Enemy{
		makeTestEnemy("wraith", "Wraith"),
		makeTestEnemy("gob-raider", "Gob Raider"),
	}
	require.NoError(t, repo.ReplaceAll(ctx, enemies))

	got, err := repo.GetByID(ctx, "wraith")
	require.NoError(t, err)
	assert.Equal(t, "Wraith", got.Name)
	assert.Equal(t, 10, got.BaseStats.HP)
	require.Len(t, got.BaseAttacks, 1)
	assert.Equal(t, "Melee", got.BaseAttacks[0].Kind)
}

func TestEnemyRepository_GetMissing(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewEnemyRepository(pool)

	_, err := repo.GetByID(context.Background(), "no-such-enemy")
	assert.ErrorIs(t, err, postgres.ErrEnemyNotFound)
}

func TestEnemyRepository_ReplaceAllRemovesStale(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewEnemyRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []bestiary.Enemy{
		makeTestEnemy("wraith", "Wraith"),
		makeTestEnemy("gob-raider", "Gob Raider"),
	}))
	require.NoError(t, repo.ReplaceAll(ctx, []bestiary.Enemy{
		makeTestEnemy("wraith", "Wraith"),
	}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "wraith", list[0].ID)
}

func TestEnemyRepository_SkipsDiagnostics(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewEnemyRepository(pool)
	ctx := context.Background()

	sentinel := bestiary.NewDiagnosticEnemy("error", "bestiary", "could not read file")
	require.NoError(t, repo.ReplaceAll(ctx, []bestiary.Enemy{
		makeTestEnemy("wraith", "Wraith"),
		sentinel,
	}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "wraith", list[0].ID)
}

func TestCardRepository_ReplaceAllAndGet(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCardRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []loadout.LoadoutCard{
		makeTestCard("iron_kit", "Iron Kit"),
		makeTestCard("shadow_kit", "Shadow Kit"),
	}))

	got, err := repo.GetByID(ctx, "iron_kit")
	require.NoError(t, err)
	assert.Equal(t, "Iron Kit", got.Name)
	require.Len(t, got.Items, 1)
	require.Len(t, got.Items[0].StatModifiers, 1)
	assert.Equal(t, stats.KindDef, got.Items[0].StatModifiers[0].Stat)
}

func TestCardRepository_GetMissing(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCardRepository(pool)

	_, err := repo.GetByID(context.Background(), "no_such_card")
	assert.ErrorIs(t, err, postgres.ErrCardNotFound)
}

func TestCardRepository_ListOrdersByName(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewCardRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []loadout.LoadoutCard{
		makeTestCard("zephyr_kit", "Zephyr Kit"),
		makeTestCard("iron_kit", "Iron Kit"),
	}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Iron Kit", list[0].Name)
	assert.Equal(t, "Zephyr Kit", list[1].Name)
}
