package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexmark/grimoire/internal/game/bestiary"
	"github.com/hexmark/grimoire/internal/game/encounter"
	"github.com/hexmark/grimoire/internal/game/stats"
)

func poltergeist() *bestiary.Enemy {
	return &bestiary.Enemy{
		ID:        "poltergeist",
		Name:      "Poltergeist",
		BaseStats: stats.Block{HP: 6, MV: 5, Def: 1},
		BaseAttacks: []bestiary.Attack{
			{Kind: "Melee", Details: "A2/R1"},
		},
		Abilities: []bestiary.AbilityFact{
			{Name: "Passive Dread aura", Kind: "Passive"},
		},
		Variations: []bestiary.Variation{
			{
				Name: "Animated Chair",
				StatChanges: []stats.Modifier{
					{Stat: stats.KindDef, Delta: 1},
					{Stat: stats.KindMV, Delta: -2},
				},
				Abilities: []bestiary.AbilityFact{
					{Name: "Special 1 Flings itself", Kind: "Special"},
				},
			},
		},
	}
}

func TestNewActiveEnemy_BaseForm(t *testing.T) {
	e := poltergeist()
	a, err := encounter.NewActiveEnemy(e, "")
	require.NoError(t, err)

	assert.NotEmpty(t, a.InstanceID)
	assert.Equal(t, "poltergeist", a.EnemyID)
	assert.Equal(t, "Poltergeist", a.Name)
	assert.Equal(t, stats.Block{HP: 6, MV: 5, Def: 1}, a.Stats)
	assert.Equal(t, 6, a.CurrentHP)
	assert.Len(t, a.Abilities, 1)
}

func TestNewActiveEnemy_Variation(t *testing.T) {
	e := poltergeist()
	a, err := encounter.NewActiveEnemy(e, "Animated Chair")
	require.NoError(t, err)

	assert.Equal(t, "Poltergeist (Animated Chair)", a.Name)
	assert.Equal(t, 2, a.Stats.Def)
	assert.Equal(t, 3, a.Stats.MV)
	assert.Len(t, a.Abilities, 2)
	// template untouched
	assert.Equal(t, stats.Block{HP: 6, MV: 5, Def: 1}, e.BaseStats)
}

func TestNewActiveEnemy_UnknownVariation(t *testing.T) {
	_, err := encounter.NewActiveEnemy(poltergeist(), "Haunted Lamp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Haunted Lamp")
}

func TestNewActiveEnemy_RejectsDiagnostic(t *testing.T) {
	sentinel := bestiary.NewDiagnosticEnemy("error", "bestiary", "The document could not be read.")
	_, err := encounter.NewActiveEnemy(&sentinel, "")
	require.Error(t, err)
}

func TestNewActiveEnemy_UniqueInstanceIDs(t *testing.T) {
	e := poltergeist()
	a, err := encounter.NewActiveEnemy(e, "")
	require.NoError(t, err)
	b, err := encounter.NewActiveEnemy(e, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.InstanceID, b.InstanceID)
}

func TestActiveEnemy_DamageAndHeal(t *testing.T) {
	a, err := encounter.NewActiveEnemy(poltergeist(), "")
	require.NoError(t, err)

	a.ApplyDamage(4)
	assert.Equal(t, 2, a.CurrentHP)
	assert.False(t, a.IsDead())

	a.Heal(10)
	assert.Equal(t, 6, a.CurrentHP)

	a.ApplyDamage(99)
	assert.Equal(t, 0, a.CurrentHP)
	assert.True(t, a.IsDead())
	assert.Equal(t, "destroyed", a.HealthDescription())
}

func TestActiveEnemy_SanityCopied(t *testing.T) {
	san := 4
	e := &bestiary.Enemy{
		ID:        "cultist",
		Name:      "Cultist",
		BaseStats: stats.Block{HP: 3, San: &san},
	}
	a, err := encounter.NewActiveEnemy(e, "")
	require.NoError(t, err)
	require.NotNil(t, a.CurrentSan)
	assert.Equal(t, 4, *a.CurrentSan)
	assert.NotSame(t, e.BaseStats.San, a.CurrentSan)
}
