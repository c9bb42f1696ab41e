package stats

// Apply layers an ordered list of modifiers onto a deep copy of base and
// returns the clamped result. base is never mutated. This is the single
// stat-combination algorithm in the system: variation deltas, equipped-item
// deltas, and card-level global deltas all pass through here.
//
// A base block carries one HP value representing the then-current maximum,
// so both KindHP and KindMaxHP accumulate onto HP; likewise KindSanity and
// KindMaxSanity onto San. San is initialised to zero only when a sanity
// modifier is present, since sanity is optional on many entities.
// KindRangedRange adjusts a weapon profile, not the block, and is skipped.
//
// Postcondition: result.HP >= 1, result.MV >= 0, result.Def >= 0, and
// *result.San >= 0 whenever San is non-nil. Attack bonuses are not clamped.
func Apply(base Block, mods []Modifier) Block {
	out := base.Clone()

	if out.San == nil {
		for _, m := range mods {
			if m.Stat == KindSanity || m.Stat == KindMaxSanity {
				out.San = new(int)
				break
			}
		}
	}

	for _, m := range mods {
		switch m.Stat {
		case KindHP, KindMaxHP:
			out.HP += m.Delta
		case KindMV:
			out.MV += m.Delta
		case KindDef:
			out.Def += m.Delta
		case KindSanity, KindMaxSanity:
			*out.San += m.Delta
		case KindMeleeAttack:
			out.MeleeAttackBonus += m.Delta
		case KindRangedAttack:
			out.RangedAttackBonus += m.Delta
		}
	}

	if out.HP < 1 {
		out.HP = 1
	}
	if out.MV < 0 {
		out.MV = 0
	}
	if out.Def < 0 {
		out.Def = 0
	}
	if out.San != nil && *out.San < 0 {
		*out.San = 0
	}
	return out
}

// RangedRangeBonus returns the net range adjustment carried by mods.
// Range deltas apply to a weapon's range profile rather than the stat block,
// so Apply skips them and consumers sum them here.
func RangedRangeBonus(mods []Modifier) int {
	total := 0
	for _, m := range mods {
		if m.Stat == KindRangedRange {
			total += m.Delta
		}
	}
	return total
}
