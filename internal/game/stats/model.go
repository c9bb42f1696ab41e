// Package stats defines the statistic data model shared by the bestiary and
// loadout parsers, and the single stat-combination engine used by every
// caller that layers modifiers onto a base block.
package stats

// Kind identifies one named statistic targeted by a Modifier.
type Kind string

// The closed set of statistic kinds.
const (
	KindHP           Kind = "hp"
	KindMaxHP        Kind = "max_hp"
	KindMV           Kind = "mv"
	KindDef          Kind = "def"
	KindSanity       Kind = "sanity"
	KindMaxSanity    Kind = "max_sanity"
	KindMeleeAttack  Kind = "melee_attack"
	KindRangedAttack Kind = "ranged_attack"
	KindRangedRange  Kind = "ranged_range"
)

// validKinds is the set of recognised statistic kinds.
var validKinds = map[Kind]bool{
	KindHP:           true,
	KindMaxHP:        true,
	KindMV:           true,
	KindDef:          true,
	KindSanity:       true,
	KindMaxSanity:    true,
	KindMeleeAttack:  true,
	KindRangedAttack: true,
	KindRangedRange:  true,
}

// Valid reports whether k is one of the defined statistic kinds.
func (k Kind) Valid() bool {
	return validKinds[k]
}

// Modifier is a signed integer delta targeting one statistic.
// Immutable once constructed.
type Modifier struct {
	Stat  Kind `yaml:"stat"`
	Delta int  `yaml:"delta"`
}

// Armor is a named armor entry with freeform effect prose. It is owned
// exclusively by the Block or enemy that declares it.
type Armor struct {
	Name   string `yaml:"name"`
	Effect string `yaml:"effect"`
}

// Block is a statistic block. The same shape serves both base (template)
// blocks and effective (post-modifier) blocks; callers track which one they
// hold. San is nil for entities without a sanity track.
type Block struct {
	HP    int    `yaml:"hp"`
	MV    int    `yaml:"mv"`
	Def   int    `yaml:"def"`
	San   *int   `yaml:"san,omitempty"`
	Armor *Armor `yaml:"armor,omitempty"`
	// MeleeAttackBonus and RangedAttackBonus may be negative (a penalty).
	MeleeAttackBonus  int `yaml:"melee_attack_bonus,omitempty"`
	RangedAttackBonus int `yaml:"ranged_attack_bonus,omitempty"`
}

// Clone returns a deep copy of the block. The San and Armor pointers of the
// copy never alias the receiver's.
func (b Block) Clone() Block {
	out := b
	if b.San != nil {
		san := *b.San
		out.San = &san
	}
	if b.Armor != nil {
		armor := *b.Armor
		out.Armor = &armor
	}
	return out
}

// Partial is a sparse statistic block where every field is optional.
// Used for companion stats parsed from loose freeform text.
type Partial struct {
	HP     *int `yaml:"hp,omitempty"`
	MaxHP  *int `yaml:"max_hp,omitempty"`
	MV     *int `yaml:"mv,omitempty"`
	Def    *int `yaml:"def,omitempty"`
	San    *int `yaml:"san,omitempty"`
	MaxSan *int `yaml:"max_san,omitempty"`
}

// IsEmpty reports whether no field of the partial block is set.
func (p Partial) IsEmpty() bool {
	return p.HP == nil && p.MaxHP == nil && p.MV == nil &&
		p.Def == nil && p.San == nil && p.MaxSan == nil
}
