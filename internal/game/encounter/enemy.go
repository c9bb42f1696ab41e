// Package encounter derives live, mutable combat instances from the
// immutable parsed templates. Effective maximum stats always come from
// stats.Apply; this package layers bounded current values on top and never
// conflates the two.
package encounter

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hexmark/grimoire/internal/game/bestiary"
	"github.com/hexmark/grimoire/internal/game/stats"
)

// ActiveEnemy is a live enemy occupying an encounter. Stats is the
// effective max-oriented block (base plus variation deltas); CurrentHP and
// CurrentSan are the session-state values bounded by it.
type ActiveEnemy struct {
	// InstanceID uniquely identifies this runtime instance.
	InstanceID string
	// EnemyID is the source template's deterministic id.
	EnemyID string
	// Name is the display name, including the variation when one is active.
	Name string
	// VariationName is empty when the base form is active.
	VariationName string

	Stats     stats.Block
	Attacks   []bestiary.Attack
	Abilities []bestiary.AbilityFact
	Logic     *bestiary.Logic

	CurrentHP  int
	CurrentSan *int
}

// NewActiveEnemy spawns a live instance from a template and an optional
// variation name. The template is read-only and never mutated.
//
// Precondition: e must be non-nil and not a diagnostic sentinel.
// Postcondition: CurrentHP equals the effective max HP; the instance shares
// no mutable state with the template.
func NewActiveEnemy(e *bestiary.Enemy, variation string) (*ActiveEnemy, error) {
	if e == nil {
		return nil, errors.New("encounter: enemy template must not be nil")
	}
	if e.IsDiagnostic() {
		return nil, fmt.Errorf("encounter: cannot spawn diagnostic entry %q", e.ID)
	}

	name := e.Name
	var mods []stats.Modifier
	abilities := append([]bestiary.AbilityFact(nil), e.Abilities...)
	if variation != "" {
		v := e.Variation(variation)
		if v == nil {
			return nil, fmt.Errorf("encounter: enemy %q has no variation %q", e.ID, variation)
		}
		mods = v.StatChanges
		abilities = append(abilities, v.Abilities...)
		name = fmt.Sprintf("%s (%s)", e.Name, v.Name)
	}

	effective := stats.Apply(e.BaseStats, mods)
	inst := &ActiveEnemy{
		InstanceID:    uuid.NewString(),
		EnemyID:       e.ID,
		Name:          name,
		VariationName: variation,
		Stats:         effective,
		Attacks:       append([]bestiary.Attack(nil), e.BaseAttacks...),
		Abilities:     abilities,
		Logic:         e.Logic,
		CurrentHP:     effective.HP,
	}
	if effective.San != nil {
		san := *effective.San
		inst.CurrentSan = &san
	}
	return inst, nil
}

// ApplyDamage reduces current HP, flooring at zero.
//
// Precondition: amount >= 0.
func (a *ActiveEnemy) ApplyDamage(amount int) {
	a.CurrentHP -= amount
	if a.CurrentHP < 0 {
		a.CurrentHP = 0
	}
}

// Heal restores current HP, capped at the effective maximum.
//
// Precondition: amount >= 0.
func (a *ActiveEnemy) Heal(amount int) {
	a.CurrentHP += amount
	if a.CurrentHP > a.Stats.HP {
		a.CurrentHP = a.Stats.HP
	}
}

// IsDead reports whether the instance has zero current hit points.
func (a *ActiveEnemy) IsDead() bool {
	return a.CurrentHP <= 0
}

// HealthDescription returns a visible health state string for the tracker.
//
// Postcondition: Returns a non-empty string.
func (a *ActiveEnemy) HealthDescription() string {
	if a.CurrentHP <= 0 {
		return "destroyed"
	}
	pct := float64(a.CurrentHP) / float64(a.Stats.HP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.60:
		return "wounded"
	case pct >= 0.25:
		return "badly wounded"
	default:
		return "nearly destroyed"
	}
}
