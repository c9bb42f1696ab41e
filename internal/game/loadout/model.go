// Package loadout parses header-driven spreadsheet exports into arsenal
// cards and their items, with free-text stat-delta and weapon-string
// sub-parsers.
package loadout

import (
	"regexp"
	"strings"

	"github.com/hexmark/grimoire/internal/game/stats"
)

// ItemCategory is the closed set of known item categories. Unrecognised raw
// strings pass through uppercased rather than being rejected.
type ItemCategory string

// Known categories.
const (
	CategoryLoadout ItemCategory = "LOADOUT"
	CategoryBonus   ItemCategory = "BONUS"
	CategoryElite   ItemCategory = "ELITE"
	CategoryGear    ItemCategory = "GEAR"
)

// WeaponProfile is a parsed weapon string such as "A3/R4". Range is nil for
// melee-only profiles ("A3").
type WeaponProfile struct {
	Attack int  `yaml:"attack"`
	Range  *int `yaml:"range,omitempty"`
}

// CompanionFacts describes a companion attached to an item. RawStats keeps
// the authored text verbatim for display; CoreStats is the loose-grammar
// parse of it, nil when nothing in it was machine-readable.
type CompanionFacts struct {
	Name      string         `yaml:"name"`
	RawStats  string         `yaml:"raw_stats,omitempty"`
	CoreStats *stats.Partial `yaml:"core_stats,omitempty"`
	Abilities string         `yaml:"abilities,omitempty"`
}

// LoadoutItem is one row of an arsenal card. Level and Qty are nil when the
// source cell was blank or unparsable; absence is not zero.
type LoadoutItem struct {
	ID              string           `yaml:"id"`
	Category        ItemCategory     `yaml:"category,omitempty"`
	Level           *int             `yaml:"level,omitempty"`
	Qty             *int             `yaml:"qty,omitempty"`
	Cooldown        string           `yaml:"cooldown,omitempty"`
	AbilityName     string           `yaml:"ability_name"`
	Description     string           `yaml:"description,omitempty"`
	Effect          string           `yaml:"effect,omitempty"`
	SecondaryEffect string           `yaml:"secondary_effect,omitempty"`
	StatModifiers   []stats.Modifier `yaml:"stat_modifiers,omitempty"`
	// Weapon is the parsed weapon profile; WeaponRaw keeps the source cell
	// for display when no attack number could be extracted.
	Weapon    *WeaponProfile  `yaml:"weapon,omitempty"`
	WeaponRaw string          `yaml:"weapon_raw,omitempty"`
	IsWeapon  bool            `yaml:"is_weapon,omitempty"`
	Companion *CompanionFacts `yaml:"companion,omitempty"`
}

// LoadoutCard aggregates all rows sharing one normalized name. A card with
// zero items is still valid: it then carries only global modifiers.
type LoadoutCard struct {
	ID              string           `yaml:"id"`
	Name            string           `yaml:"name"`
	Description     string           `yaml:"description,omitempty"`
	ImageFront      string           `yaml:"image_front,omitempty"`
	ImageBack       string           `yaml:"image_back,omitempty"`
	GlobalModifiers []stats.Modifier `yaml:"global_modifiers,omitempty"`
	Items           []LoadoutItem    `yaml:"items,omitempty"`
}

// Item returns the item with the given id, or nil.
func (c *LoadoutCard) Item(id string) *LoadoutItem {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// IsDiagnostic reports whether this card is a sentinel record carrying an
// error or warning message instead of real parsed data.
func (c *LoadoutCard) IsDiagnostic() bool {
	return strings.HasPrefix(c.ID, "error-") || strings.HasPrefix(c.ID, "warning-")
}

// NewDiagnosticCard builds a sentinel card whose description holds a
// human-readable message, following the same id-prefix convention as the
// bestiary parser.
//
// Precondition: severity must be "error" or "warning"; message must be a
// complete sentence naming the missing column or file.
func NewDiagnosticCard(severity, subject, message string) LoadoutCard {
	return LoadoutCard{
		ID:          severity + "-" + subject,
		Name:        "Import " + severity,
		Description: message,
	}
}

var cardSlug = regexp.MustCompile(`\s+`)

// CardID derives the deterministic identifier for a card display name:
// lowercased, runs of whitespace replaced with a single underscore.
func CardID(name string) string {
	return cardSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// normalizeCardName is the case/space normalization used to decide whether
// two rows belong to the same card.
func normalizeCardName(name string) string {
	return cardSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), " ")
}
