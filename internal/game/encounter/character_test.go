package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexmark/grimoire/internal/game/encounter"
	"github.com/hexmark/grimoire/internal/game/loadout"
	"github.com/hexmark/grimoire/internal/game/stats"
)

func ironKit() *loadout.LoadoutCard {
	return &loadout.LoadoutCard{
		ID:   "iron_kit",
		Name: "Iron Kit",
		GlobalModifiers: []stats.Modifier{
			{Stat: stats.KindMaxHP, Delta: 2},
		},
		Items: []loadout.LoadoutItem{
			{
				ID:          "iron_kit-1",
				AbilityName: "Plating",
				StatModifiers: []stats.Modifier{
					{Stat: stats.KindDef, Delta: 2},
					{Stat: stats.KindMV, Delta: -1},
				},
			},
			{
				ID:          "iron_kit-2",
				AbilityName: "Spikes",
				StatModifiers: []stats.Modifier{
					{Stat: stats.KindMeleeAttack, Delta: 1},
				},
			},
		},
	}
}

func TestNewActiveCharacter(t *testing.T) {
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5, MV: 4, Def: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, c.InstanceID)
	assert.Equal(t, 5, c.CurrentHP)
	assert.Nil(t, c.CurrentSan)
}

func TestNewActiveCharacter_Validation(t *testing.T) {
	_, err := encounter.NewActiveCharacter("", stats.Block{HP: 5})
	require.Error(t, err)
	_, err = encounter.NewActiveCharacter("Mara", stats.Block{})
	require.Error(t, err)
}

func TestEquip_AppliesGlobalAndItemModifiers(t *testing.T) {
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5, MV: 4, Def: 2})
	require.NoError(t, err)

	require.NoError(t, c.Equip(ironKit(), "iron_kit-1", "iron_kit-2"))
	assert.Equal(t, 7, c.Stats.HP)
	assert.Equal(t, 3, c.Stats.MV)
	assert.Equal(t, 4, c.Stats.Def)
	assert.Equal(t, 1, c.Stats.MeleeAttackBonus)
	// undamaged character stays at full health under the new maximum
	assert.Equal(t, 7, c.CurrentHP)
	// base untouched
	assert.Equal(t, 5, c.Base.HP)
}

func TestEquip_PreservesDamageTaken(t *testing.T) {
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5, MV: 4, Def: 2})
	require.NoError(t, err)

	c.ApplyDamage(2)
	require.NoError(t, c.Equip(ironKit()))
	// 2 damage carried over: max 7, current 5
	assert.Equal(t, 7, c.Stats.HP)
	assert.Equal(t, 5, c.CurrentHP)
}

func TestUnequip_ReclampsCurrent(t *testing.T) {
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5, MV: 4, Def: 2})
	require.NoError(t, err)

	require.NoError(t, c.Equip(ironKit()))
	assert.Equal(t, 7, c.CurrentHP)

	c.Unequip()
	assert.Equal(t, stats.Block{HP: 5, MV: 4, Def: 2}, c.Stats)
	assert.LessOrEqual(t, c.CurrentHP, c.Stats.HP)
	assert.Nil(t, c.Card)
}

func TestEquip_UnknownItem(t *testing.T) {
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5})
	require.NoError(t, err)
	err = c.Equip(ironKit(), "iron_kit-99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iron_kit-99")
}

func TestEquip_RejectsDiagnosticCard(t *testing.T) {
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5})
	require.NoError(t, err)
	sentinel := loadout.NewDiagnosticCard("error", "loadout", "The sheet could not be read.")
	require.Error(t, c.Equip(&sentinel))
}

func TestAdjustSanity_Bounded(t *testing.T) {
	san := 4
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5, San: &san})
	require.NoError(t, err)
	require.NotNil(t, c.CurrentSan)

	c.AdjustSanity(-2)
	assert.Equal(t, 2, *c.CurrentSan)
	c.AdjustSanity(-99)
	assert.Equal(t, 0, *c.CurrentSan)
	c.AdjustSanity(99)
	assert.Equal(t, 4, *c.CurrentSan)
}

func TestAdjustSanity_NoTrackIsNoop(t *testing.T) {
	c, err := encounter.NewActiveCharacter("Mara", stats.Block{HP: 5})
	require.NoError(t, err)
	c.AdjustSanity(-3)
	assert.Nil(t, c.CurrentSan)
}
