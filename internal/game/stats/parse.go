package stats

import (
	"regexp"
	"strconv"
	"strings"
)

// kindAliases maps normalised stat-name spellings to canonical kinds. Source
// text is hand-authored and drifts across authors; lookup is data-driven so
// new spellings are a table entry, not a new branch.
var kindAliases = map[string]Kind{
	"hp":            KindHP,
	"health":        KindHP,
	"max hp":        KindMaxHP,
	"maxhp":         KindMaxHP,
	"mv":            KindMV,
	"move":          KindMV,
	"movement":      KindMV,
	"def":           KindDef,
	"defense":       KindDef,
	"defence":       KindDef,
	"san":           KindSanity,
	"sanity":        KindSanity,
	"max san":       KindMaxSanity,
	"max sanity":    KindMaxSanity,
	"maxsan":        KindMaxSanity,
	"melee":         KindMeleeAttack,
	"melee attack":  KindMeleeAttack,
	"ranged attack": KindRangedAttack,
	"range attack":  KindRangedAttack,
	"ranged":        KindRangedAttack,
	"ranged range":  KindRangedRange,
	"range":         KindRangedRange,
}

// clausePattern matches one delta clause: a stat name followed by a signed
// integer, e.g. "Def +2" or "max hp-3".
var clausePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*?)\s*([+-]\d+)$`)

// spaceCollapser collapses runs of whitespace for alias lookup.
var spaceCollapser = regexp.MustCompile(`\s+`)

// normalizeName lowercases a stat name and collapses interior whitespace.
func normalizeName(s string) string {
	return spaceCollapser.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// KindForName resolves a freeform stat-name spelling to its canonical Kind.
//
// Postcondition: Returns (kind, true) iff the normalised name is a known alias.
func KindForName(name string) (Kind, bool) {
	k, ok := kindAliases[normalizeName(name)]
	return k, ok
}

// ParseModifiers parses a comma- or semicolon-separated delta string such as
// "Def +2, MV -1" into modifiers. Clauses with unrecognised stat names or
// malformed deltas are dropped, never errored: the source is hand-authored
// prose and rejecting a whole field over one bad clause loses good data.
// The second return value lists the dropped clauses verbatim so callers that
// want a diagnostics channel have one; callers preserving the original
// silent behaviour discard it.
//
// Postcondition: Returns modifiers in clause order; both slices may be empty.
func ParseModifiers(raw string) ([]Modifier, []string) {
	var mods []Modifier
	var dropped []string

	for _, clause := range splitClauses(raw) {
		m := clausePattern.FindStringSubmatch(clause)
		if m == nil {
			dropped = append(dropped, clause)
			continue
		}
		kind, ok := KindForName(m[1])
		if !ok {
			dropped = append(dropped, clause)
			continue
		}
		delta, err := strconv.Atoi(m[2])
		if err != nil {
			dropped = append(dropped, clause)
			continue
		}
		mods = append(mods, Modifier{Stat: kind, Delta: delta})
	}
	return mods, dropped
}

// splitClauses splits a delta string on commas and semicolons, trimming each
// clause and dropping empties.
func splitClauses(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// loosePattern matches "<statname> <N>" or "<statname>: <N>" pairs anywhere
// in a freeform string, e.g. "HP 5, MV: 3 Def 1".
var loosePattern = regexp.MustCompile(`(?i)(max\s+hp|maxhp|max\s+san(?:ity)?|maxsan|hp|health|mv|move(?:ment)?|def(?:en[cs]e)?|san(?:ity)?)[:\s]?\s*(\d+)`)

// ParseLooseStats extracts a sparse stat block from loose freeform text using
// a more forgiving grammar than ParseModifiers (unsigned values, optional
// colon separators). A present HP or sanity value without an explicit max
// implies max = current.
//
// Postcondition: Returns a Partial; IsEmpty() is true when nothing matched.
func ParseLooseStats(raw string) Partial {
	var p Partial
	for _, m := range loosePattern.FindAllStringSubmatch(raw, -1) {
		kind, ok := KindForName(m[1])
		if !ok {
			continue
		}
		value, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		v := value
		switch kind {
		case KindHP:
			p.HP = &v
		case KindMaxHP:
			p.MaxHP = &v
		case KindMV:
			p.MV = &v
		case KindDef:
			p.Def = &v
		case KindSanity:
			p.San = &v
		case KindMaxSanity:
			p.MaxSan = &v
		}
	}
	if p.HP != nil && p.MaxHP == nil {
		max := *p.HP
		p.MaxHP = &max
	}
	if p.San != nil && p.MaxSan == nil {
		max := *p.San
		p.MaxSan = &max
	}
	return p
}
