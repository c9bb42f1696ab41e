// Package bestiary parses a hand-authored Markdown-like bestiary document
// into immutable enemy templates for the encounter tracker.
package bestiary

import (
	"regexp"
	"strings"

	"github.com/hexmark/grimoire/internal/game/stats"
)

// Attack is one attack entry on an enemy. Details is an opaque display
// string; source prose is not guaranteed to be machine-parseable.
type Attack struct {
	Kind    string `yaml:"kind"`
	Details string `yaml:"details"`
}

// AbilityFact is a named effect with freeform prose. Kind is derived from
// the label prefix ("Special", "Signature", "Passive").
type AbilityFact struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Description string `yaml:"description,omitempty"`
}

// Variation is a named alternate form of an enemy, layered onto the enemy's
// base stats via stats.Apply. It is owned by exactly one Enemy and never
// exists independent of its parent.
type Variation struct {
	Name        string           `yaml:"name"`
	StatChanges []stats.Modifier `yaml:"stat_changes,omitempty"`
	Abilities   []AbilityFact    `yaml:"abilities,omitempty"`
}

// Logic is an optional activation condition for an enemy. Condition is prose
// displayed to the operator; when it also happens to be a machine-readable
// expression the trigger package can evaluate it.
type Logic struct {
	Condition string `yaml:"condition"`
}

// Enemy is one parsed bestiary template. Constructed once per parse and
// read-only thereafter; live encounters derive mutable instances elsewhere.
type Enemy struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	CP          *int         `yaml:"cp,omitempty"`
	Template    string       `yaml:"template,omitempty"`
	BaseStats   stats.Block  `yaml:"base_stats"`
	BaseAttacks []Attack     `yaml:"base_attacks,omitempty"`
	Logic       *Logic       `yaml:"logic,omitempty"`
	Abilities   []AbilityFact `yaml:"abilities,omitempty"`
	Variations  []Variation  `yaml:"variations,omitempty"`
}

// Variation returns the named variation, or nil when the enemy has none by
// that name.
func (e *Enemy) Variation(name string) *Variation {
	for i := range e.Variations {
		if e.Variations[i].Name == name {
			return &e.Variations[i]
		}
	}
	return nil
}

// IsDiagnostic reports whether this enemy is a sentinel record carrying an
// error or warning message instead of real parsed data.
func (e *Enemy) IsDiagnostic() bool {
	return strings.HasPrefix(e.ID, "error-") || strings.HasPrefix(e.ID, "warning-")
}

// NewDiagnosticEnemy builds a sentinel enemy whose name holds a
// human-readable message. Both parsers use the same convention: callers
// detect the id prefix to distinguish real data from a placeholder without
// a separate error channel.
//
// Precondition: severity must be "error" or "warning"; message must be a
// complete sentence naming the failing input.
func NewDiagnosticEnemy(severity, subject, message string) Enemy {
	return Enemy{
		ID:        severity + "-" + subject,
		Name:      message,
		BaseStats: stats.Block{HP: 1},
	}
}

var slugStrip = regexp.MustCompile(`\s+`)

// EnemyID derives the deterministic identifier for a display name:
// lowercased, runs of whitespace replaced with a single hyphen. Two parses
// of identical input always yield identical ids.
func EnemyID(name string) string {
	return slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
