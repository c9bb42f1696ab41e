package stats_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hexmark/grimoire/internal/game/stats"
)

func TestApply_Additive(t *testing.T) {
	base := stats.Block{HP: 5, MV: 4, Def: 2}
	out := stats.Apply(base, []stats.Modifier{
		{Stat: stats.KindDef, Delta: 2},
		{Stat: stats.KindMV, Delta: -1},
		{Stat: stats.KindHP, Delta: 3},
	})
	assert.Equal(t, 8, out.HP)
	assert.Equal(t, 3, out.MV)
	assert.Equal(t, 4, out.Def)
}

func TestApply_BaseUntouched(t *testing.T) {
	san := 3
	base := stats.Block{HP: 5, MV: 4, Def: 2, San: &san, Armor: &stats.Armor{Name: "Hide"}}
	out := stats.Apply(base, []stats.Modifier{
		{Stat: stats.KindHP, Delta: -10},
		{Stat: stats.KindSanity, Delta: -10},
	})
	assert.Equal(t, 5, base.HP)
	assert.Equal(t, 3, *base.San)
	assert.Equal(t, 1, out.HP)
	assert.Equal(t, 0, *out.San)
	// pointers must not alias
	assert.NotSame(t, base.San, out.San)
	assert.NotSame(t, base.Armor, out.Armor)
}

func TestApply_HPClampsToOne(t *testing.T) {
	out := stats.Apply(stats.Block{HP: 2}, []stats.Modifier{{Stat: stats.KindHP, Delta: -7}})
	assert.Equal(t, 1, out.HP)
}

func TestApply_MaxHPAccumulatesOntoHP(t *testing.T) {
	out := stats.Apply(stats.Block{HP: 5}, []stats.Modifier{
		{Stat: stats.KindMaxHP, Delta: 2},
		{Stat: stats.KindHP, Delta: 1},
	})
	assert.Equal(t, 8, out.HP)
}

func TestApply_SanityInitialisedOnlyWhenTargeted(t *testing.T) {
	out := stats.Apply(stats.Block{HP: 5}, []stats.Modifier{{Stat: stats.KindMV, Delta: 1}})
	assert.Nil(t, out.San)

	out = stats.Apply(stats.Block{HP: 5}, []stats.Modifier{{Stat: stats.KindMaxSanity, Delta: 2}})
	require.NotNil(t, out.San)
	assert.Equal(t, 2, *out.San)
}

func TestApply_AttackBonusesNotClamped(t *testing.T) {
	out := stats.Apply(stats.Block{HP: 5}, []stats.Modifier{
		{Stat: stats.KindMeleeAttack, Delta: -3},
		{Stat: stats.KindRangedAttack, Delta: -1},
	})
	assert.Equal(t, -3, out.MeleeAttackBonus)
	assert.Equal(t, -1, out.RangedAttackBonus)
}

func TestApply_RangedRangeSkipped(t *testing.T) {
	mods := []stats.Modifier{{Stat: stats.KindRangedRange, Delta: 2}}
	out := stats.Apply(stats.Block{HP: 5, MV: 4, Def: 2}, mods)
	assert.Equal(t, stats.Block{HP: 5, MV: 4, Def: 2}, out)
	assert.Equal(t, 2, stats.RangedRangeBonus(mods))
}

// kindGen draws one of the defined statistic kinds.
func kindGen() *rapid.Generator[stats.Kind] {
	return rapid.SampledFrom([]stats.Kind{
		stats.KindHP, stats.KindMaxHP, stats.KindMV, stats.KindDef,
		stats.KindSanity, stats.KindMaxSanity,
		stats.KindMeleeAttack, stats.KindRangedAttack, stats.KindRangedRange,
	})
}

// Property: clamping holds for every base block and modifier list.
func TestPropertyApplyClamping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := stats.Block{
			HP:  rapid.IntRange(1, 50).Draw(t, "hp"),
			MV:  rapid.IntRange(0, 20).Draw(t, "mv"),
			Def: rapid.IntRange(0, 20).Draw(t, "def"),
		}
		if rapid.Bool().Draw(t, "has_san") {
			san := rapid.IntRange(0, 20).Draw(t, "san")
			base.San = &san
		}
		count := rapid.IntRange(0, 12).Draw(t, "count")
		mods := make([]stats.Modifier, count)
		for i := range mods {
			mods[i] = stats.Modifier{
				Stat:  kindGen().Draw(t, "stat"),
				Delta: rapid.IntRange(-30, 30).Draw(t, "delta"),
			}
		}

		out := stats.Apply(base, mods)
		if out.HP < 1 {
			t.Fatalf("HP %d < 1", out.HP)
		}
		if out.MV < 0 {
			t.Fatalf("MV %d < 0", out.MV)
		}
		if out.Def < 0 {
			t.Fatalf("Def %d < 0", out.Def)
		}
		if out.San != nil && *out.San < 0 {
			t.Fatalf("San %d < 0", *out.San)
		}
	})
}

// Property: a single well-formed delta clause round-trips through
// ParseModifiers and Apply, changing exactly the named stat.
func TestPropertyDeltaRoundTrip(t *testing.T) {
	names := map[stats.Kind]string{
		stats.KindMV:  "MV",
		stats.KindDef: "Def",
	}
	rapid.Check(t, func(t *rapid.T) {
		kind := rapid.SampledFrom([]stats.Kind{stats.KindMV, stats.KindDef}).Draw(t, "kind")
		delta := rapid.IntRange(1, 10).Draw(t, "delta")

		raw := names[kind]
		if rapid.Bool().Draw(t, "negative") {
			delta = -delta
			raw += " -"
		} else {
			raw += " +"
		}
		mods, dropped := stats.ParseModifiers(raw + strconv.Itoa(abs(delta)))
		if len(dropped) != 0 {
			t.Fatalf("unexpected dropped clauses %v", dropped)
		}
		if len(mods) != 1 || mods[0].Stat != kind || mods[0].Delta != delta {
			t.Fatalf("parsed %v, want {%s %d}", mods, kind, delta)
		}

		base := stats.Block{HP: 10, MV: 10, Def: 10}
		out := stats.Apply(base, mods)
		switch kind {
		case stats.KindMV:
			if out.MV != 10+delta || out.Def != 10 || out.HP != 10 {
				t.Fatalf("MV delta leaked: %+v", out)
			}
		case stats.KindDef:
			if out.Def != 10+delta || out.MV != 10 || out.HP != 10 {
				t.Fatalf("Def delta leaked: %+v", out)
			}
		}
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
