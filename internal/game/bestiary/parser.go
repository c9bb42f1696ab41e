package bestiary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hexmark/grimoire/internal/game/stats"
)

// Warning is a non-fatal diagnostic about a skipped or malformed source
// line. The document is hand-authored prose, not a strict grammar, so
// warnings are collected and never raised.
type Warning struct {
	Line    int
	Message string
}

// section is the coarse parsing section the walker is inside.
type section int

const (
	sectionNone section = iota
	sectionStats
	sectionAttacks
	sectionLogic
	sectionAbilities
	sectionArmor
)

var (
	statBulletPattern   = regexp.MustCompile(`^(HP|MV|Def|San|CP):\s*(-?\d+)`)
	attackBulletPattern = regexp.MustCompile(`^(Melee|Range|Signature):\s*(.*)$`)
	abilityPattern      = regexp.MustCompile(`^(Special \d+|Signature|Passive(?: \d+)?)\s*[-–—:]?\s*(.*)$`)
)

// parser walks the classified line stream and assembles one Enemy per
// top-level H1. It keeps three orthogonal pieces of context: the coarse
// section, whether a variation table is open, and which variation (if any)
// subsequent ability bullets attach to.
type parser struct {
	lines    []Line
	enemies  []Enemy
	warnings []Warning

	cur       *Enemy
	sec       section
	inTable   bool
	activeVar int // index into cur.Variations; -1 when none
}

// Parse converts the raw bestiary document into enemy templates plus
// non-fatal warnings about skipped lines. Parsing the same text twice
// yields structurally equal results.
func Parse(doc string) ([]Enemy, []Warning) {
	p := &parser{lines: ScanLines(doc), activeVar: -1}
	p.run()
	return p.enemies, p.warnings
}

func (p *parser) run() {
	for i := 0; i < len(p.lines); i++ {
		ln := p.lines[i]
		switch ln.Kind {
		case LineHeading:
			i = p.heading(i)
		case LineTableMarker:
			p.inTable = true
			p.activeVar = -1
		case LineRule:
			p.clearContext()
		case LineBullet:
			p.bullet(i, ln)
		case LineProse:
			// Prose is inert: it is only ever consumed by lookahead from a
			// logic heading or a variation heading.
		}
	}
	p.flush()
}

func (p *parser) flush() {
	if p.cur != nil {
		p.enemies = append(p.enemies, *p.cur)
		p.cur = nil
	}
}

func (p *parser) clearContext() {
	p.sec = sectionNone
	p.inTable = false
	p.activeVar = -1
}

// heading dispatches on heading depth and returns the index of the last
// line consumed (lookahead may consume a condition or delta line).
func (p *parser) heading(i int) int {
	ln := p.lines[i]
	switch {
	case ln.Level == 1:
		p.flush()
		p.clearContext()
		p.cur = &Enemy{ID: EnemyID(ln.Text), Name: strings.TrimSpace(ln.Text)}
		return i
	case ln.Level == 2:
		p.clearContext()
		return p.sectionHeading(i)
	case ln.Level == 3:
		return p.armorHeading(i)
	case ln.Level == 4 || ln.Level == 5:
		return p.variationHeading(i)
	default:
		// Deeper headings are generic sub-headers.
		p.activeVar = -1
		return i
	}
}

func (p *parser) sectionHeading(i int) int {
	text := p.lines[i].Text
	label := strings.TrimSuffix(text, ":")
	switch {
	case strings.EqualFold(label, "Base Stats"):
		p.sec = sectionStats
	case strings.EqualFold(label, "Base Attacks"):
		p.sec = sectionAttacks
	case strings.EqualFold(label, "Abilities"):
		p.sec = sectionAbilities
	case strings.HasPrefix(text, "Logic"):
		p.sec = sectionLogic
		return p.logicHeading(i)
	}
	return i
}

// logicHeading records the activation condition: trailing text after the
// colon when present, otherwise the following non-empty prose or bullet
// line, which is consumed.
func (p *parser) logicHeading(i int) int {
	rest := strings.TrimPrefix(p.lines[i].Text, "Logic")
	cond := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	if cond == "" {
		for j := i + 1; j < len(p.lines); j++ {
			next := p.lines[j]
			if next.Kind == LineHeading || next.Kind == LineRule || next.Kind == LineTableMarker {
				break
			}
			if strings.TrimSpace(next.Raw) == "" {
				continue
			}
			cond = next.Text
			i = j
			break
		}
	}
	if cond != "" && p.cur != nil {
		p.cur.Logic = &Logic{Condition: cond}
	}
	return i
}

func (p *parser) armorHeading(i int) int {
	rest, ok := strings.CutPrefix(p.lines[i].Text, "Armor:")
	if !ok {
		// Generic H3 sub-header: closes variation-ability context only.
		p.activeVar = -1
		return i
	}
	p.sec = sectionArmor
	p.inTable = false
	p.activeVar = -1
	if p.cur != nil {
		p.cur.BaseStats.Armor = &stats.Armor{Name: strings.TrimSpace(rest)}
	}
	return i
}

// variationHeading treats an H4/H5 heading as a variation name. Inside a
// variation table the variation is created; outside, the heading re-opens
// an existing variation or, when no variation by that name exists, falls
// back to "not a variation" rather than guessing.
func (p *parser) variationHeading(i int) int {
	if p.cur == nil {
		return i
	}
	name := strings.TrimSpace(p.lines[i].Text)
	idx := p.findVariation(name)
	if idx < 0 {
		if !p.inTable {
			p.activeVar = -1
			return i
		}
		p.cur.Variations = append(p.cur.Variations, Variation{Name: name})
		idx = len(p.cur.Variations) - 1
	}
	p.activeVar = idx

	// A plain stat-delta prose line immediately after the heading (skipping
	// blanks and table header rows) supplies the variation's stat changes.
	j := i + 1
	for j < len(p.lines) {
		ln := p.lines[j]
		if ln.Kind == LineProse && (ln.Text == "" || isTableHeaderProse(ln.Text)) {
			j++
			continue
		}
		break
	}
	if j < len(p.lines) && p.lines[j].Kind == LineProse {
		mods, dropped := stats.ParseModifiers(p.lines[j].Text)
		if len(mods) > 0 {
			v := &p.cur.Variations[idx]
			v.StatChanges = append(v.StatChanges, mods...)
			for _, clause := range dropped {
				p.warn(j, fmt.Sprintf("unrecognised stat clause %q in variation %q", clause, name))
			}
			return j
		}
	}
	return i
}

func (p *parser) findVariation(name string) int {
	for i := range p.cur.Variations {
		if p.cur.Variations[i].Name == name {
			return i
		}
	}
	return -1
}

// isTableHeaderProse matches the decorative rows that follow a variation
// table marker before the first real entry.
func isTableHeaderProse(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "stat changes over base") ||
		strings.HasPrefix(lower, "**object")
}

func (p *parser) bullet(idx int, ln Line) {
	if p.cur == nil {
		return
	}

	if p.sec == sectionArmor {
		if rest, ok := strings.CutPrefix(ln.Text, "Effect:"); ok {
			if p.cur.BaseStats.Armor != nil {
				p.cur.BaseStats.Armor.Effect = strings.TrimSpace(rest)
			}
			p.sec = sectionNone
		}
		return
	}

	// Variation-ability context wins over the coarse section.
	if p.activeVar >= 0 {
		if fact, ok := parseAbility(ln.Text); ok {
			v := &p.cur.Variations[p.activeVar]
			v.Abilities = append(v.Abilities, fact)
		} else {
			p.warn(idx, fmt.Sprintf("unmatched ability bullet %q", ln.Text))
		}
		return
	}

	switch p.sec {
	case sectionStats:
		p.statBullet(idx, ln.Text)
	case sectionAttacks:
		p.attackBullet(idx, ln.Text)
	case sectionAbilities:
		if fact, ok := parseAbility(ln.Text); ok {
			p.cur.Abilities = append(p.cur.Abilities, fact)
		} else {
			p.warn(idx, fmt.Sprintf("unmatched ability bullet %q", ln.Text))
		}
	}
}

func (p *parser) statBullet(idx int, text string) {
	if m := statBulletPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			p.warn(idx, fmt.Sprintf("unparseable stat bullet %q", text))
			return
		}
		switch m[1] {
		case "HP":
			p.cur.BaseStats.HP = n
		case "MV":
			p.cur.BaseStats.MV = n
		case "Def":
			p.cur.BaseStats.Def = n
		case "San":
			p.cur.BaseStats.San = &n
		case "CP":
			p.cur.CP = &n
		}
		return
	}
	if rest, ok := strings.CutPrefix(text, "Template:"); ok {
		p.cur.Template = strings.TrimSpace(rest)
		return
	}
	p.warn(idx, fmt.Sprintf("unparseable stat bullet %q", text))
}

func (p *parser) attackBullet(idx int, text string) {
	m := attackBulletPattern.FindStringSubmatch(text)
	if m == nil {
		p.warn(idx, fmt.Sprintf("unparseable attack bullet %q", text))
		return
	}
	p.cur.BaseAttacks = append(p.cur.BaseAttacks, Attack{
		Kind:    m[1],
		Details: strings.TrimSpace(m[2]),
	})
}

// parseAbility matches the heading-label grammar for ability bullets. Kind
// is the label's first token; Name concatenates label and remainder.
func parseAbility(text string) (AbilityFact, bool) {
	m := abilityPattern.FindStringSubmatch(text)
	if m == nil {
		return AbilityFact{}, false
	}
	label, remainder := m[1], strings.TrimSpace(m[2])
	name := label
	if remainder != "" {
		name = label + " " + remainder
	}
	return AbilityFact{
		Name:        name,
		Kind:        strings.Fields(label)[0],
		Description: remainder,
	}, true
}

func (p *parser) warn(lineIdx int, msg string) {
	p.warnings = append(p.warnings, Warning{Line: lineIdx + 1, Message: msg})
}
