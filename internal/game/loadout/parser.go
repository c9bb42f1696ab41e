package loadout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hexmark/grimoire/internal/game/stats"
)

// Warning is a non-fatal diagnostic about a skipped cell. Row is the
// physical row number in the source sheet (the header is row 0).
type Warning struct {
	Row     int
	Message string
}

// Column spelling tables. Ordered: the first alias found in the header wins.
var (
	colName          = []string{"arsenal name", "name", "title"}
	colDescription   = []string{"description", "card description"}
	colImageFront    = []string{"image front", "front image", "image"}
	colImageBack     = []string{"image back", "back image"}
	colCategory      = []string{"category", "type"}
	colLevel         = []string{"level", "lvl"}
	colQty           = []string{"qty", "quantity", "count"}
	colCooldown      = []string{"cooldown", "cd"}
	colAbilityName   = []string{"ability name", "ability", "item name"}
	colItemDesc      = []string{"item description", "ability description"}
	colEffect        = []string{"effect", "primary effect"}
	colSecondary     = []string{"secondary effect", "effect 2"}
	colStatChange    = []string{"effect stat change", "stat change", "stat changes"}
	colWeapon        = []string{"weapon stats", "weapon"}
	colCompanion     = []string{"companion", "is companion"}
	colCompanionName = []string{"companion name"}
	colCompanionStat = []string{"companion stats"}
	colCompanionAbil = []string{"companion abilities"}
)

// globalModifierColumns are the card-level numeric modifier columns, one per
// statistic kind. A blank or unparsable cell means "no modifier", not zero.
var globalModifierColumns = []struct {
	kind    stats.Kind
	aliases []string
}{
	{stats.KindHP, []string{"hp"}},
	{stats.KindMaxHP, []string{"max hp", "maxhp"}},
	{stats.KindMV, []string{"mv", "move"}},
	{stats.KindDef, []string{"def", "defense", "defence"}},
	{stats.KindSanity, []string{"san", "sanity"}},
	{stats.KindMaxSanity, []string{"max san", "max sanity"}},
	{stats.KindMeleeAttack, []string{"melee attack", "melee"}},
	{stats.KindRangedAttack, []string{"ranged attack", "range attack"}},
	{stats.KindRangedRange, []string{"ranged range", "range bonus"}},
}

// weaponPattern matches weapon strings such as "A3/R4", "a2-r6", or "A1".
var weaponPattern = regexp.MustCompile(`(?i)A(\d+)(?:[/-]?R(\d+))?`)

// truthy values accepted by the companion flag column.
var truthy = map[string]bool{"true": true, "yes": true, "1": true, "y": true}

// ParseRows converts a rectangular cell array (first row = headers) into
// arsenal cards. When the mandatory name column cannot be resolved the
// result is a single sentinel card describing the problem; every other
// column-resolution failure degrades gracefully.
//
// Postcondition: Item ids are unique within their card and derived from
// (card id, row index), so re-parsing identical input is idempotent.
func ParseRows(rows [][]string) ([]LoadoutCard, []Warning) {
	if len(rows) == 0 {
		msg := "The loadout sheet is empty; expected a header row with a " +
			"\"Arsenal Name\", \"Name\", or \"Title\" column."
		return []LoadoutCard{NewDiagnosticCard("error", "loadout", msg)}, nil
	}

	hm := NewHeaderMap(rows[0])
	if _, ok := hm.Resolve(colName...); !ok {
		msg := fmt.Sprintf("The loadout sheet has no name column; expected one of "+
			"\"Arsenal Name\", \"Name\", or \"Title\" among the headers %q.", rows[0])
		return []LoadoutCard{NewDiagnosticCard("error", "loadout", msg)}, nil
	}

	var warnings []Warning
	var cards []LoadoutCard
	byName := make(map[string]int)

	for ri, row := range rows[1:] {
		rowIdx := ri + 1

		name := hm.Cell(row, colName...)
		if name == "" {
			name = fmt.Sprintf("Unnamed Arsenal %d", rowIdx)
		}

		norm := normalizeCardName(name)
		ci, seen := byName[norm]
		if !seen {
			cards = append(cards, newCard(hm, row, name))
			ci = len(cards) - 1
			byName[norm] = ci
		}
		card := &cards[ci]

		item, ws := buildItem(hm, row, card, rowIdx)
		warnings = append(warnings, ws...)
		if item != nil {
			card.Items = append(card.Items, *item)
		}
	}
	return cards, warnings
}

// newCard populates card-level fields from the first row bearing this name:
// description, image references, and the global numeric modifiers.
func newCard(hm HeaderMap, row []string, name string) LoadoutCard {
	card := LoadoutCard{
		ID:          CardID(name),
		Name:        strings.TrimSpace(name),
		Description: hm.Cell(row, colDescription...),
		ImageFront:  hm.Cell(row, colImageFront...),
		ImageBack:   hm.Cell(row, colImageBack...),
	}
	for _, gc := range globalModifierColumns {
		cell := hm.Cell(row, gc.aliases...)
		if cell == "" {
			continue
		}
		n, err := strconv.Atoi(cell)
		if err != nil {
			continue
		}
		card.GlobalModifiers = append(card.GlobalModifiers, stats.Modifier{Stat: gc.kind, Delta: n})
	}
	return card
}

// buildItem assembles one LoadoutItem from a data row, returning nil when
// the row carries nothing meaningful (filters fully-blank trailing rows
// without discarding legitimately sparse items).
func buildItem(hm HeaderMap, row []string, card *LoadoutCard, rowIdx int) (*LoadoutItem, []Warning) {
	var warnings []Warning

	item := LoadoutItem{
		ID:       fmt.Sprintf("%s-%d", card.ID, rowIdx),
		Cooldown: hm.Cell(row, colCooldown...),
	}

	if raw := hm.Cell(row, colCategory...); raw != "" {
		item.Category = ItemCategory(strings.ToUpper(raw))
	}
	item.Level = optionalInt(hm.Cell(row, colLevel...))
	item.Qty = optionalInt(hm.Cell(row, colQty...))

	placeholder := fmt.Sprintf("Item %d", rowIdx+1)
	item.AbilityName = hm.Cell(row, colAbilityName...)
	if item.AbilityName == "" {
		item.AbilityName = placeholder
	}

	// An item-specific description wins over the generic column; the
	// generic column is ignored entirely when it duplicates the card's own
	// blurb.
	if desc := hm.Cell(row, colItemDesc...); desc != "" {
		item.Description = desc
	} else if desc := hm.Cell(row, colDescription...); desc != "" && desc != card.Description {
		item.Description = desc
	}

	item.Effect = hm.Cell(row, colEffect...)
	item.SecondaryEffect = hm.Cell(row, colSecondary...)

	if raw := hm.Cell(row, colStatChange...); raw != "" {
		mods, dropped := stats.ParseModifiers(raw)
		item.StatModifiers = mods
		for _, clause := range dropped {
			warnings = append(warnings, Warning{
				Row:     rowIdx,
				Message: fmt.Sprintf("unrecognised stat clause %q in item %q", clause, item.AbilityName),
			})
		}
	}

	if raw := hm.Cell(row, colWeapon...); raw != "" {
		item.WeaponRaw = raw
		item.IsWeapon = true
		if m := weaponPattern.FindStringSubmatch(raw); m != nil {
			attack, _ := strconv.Atoi(m[1])
			profile := &WeaponProfile{Attack: attack}
			if m[2] != "" {
				r, _ := strconv.Atoi(m[2])
				profile.Range = &r
			}
			item.Weapon = profile
		} else {
			warnings = append(warnings, Warning{
				Row:     rowIdx,
				Message: fmt.Sprintf("weapon string %q has no attack number; kept for display only", raw),
			})
		}
	}

	if truthy[strings.ToLower(hm.Cell(row, colCompanion...))] {
		companion := &CompanionFacts{
			Name:      hm.Cell(row, colCompanionName...),
			RawStats:  hm.Cell(row, colCompanionStat...),
			Abilities: hm.Cell(row, colCompanionAbil...),
		}
		if companion.Name == "" {
			companion.Name = item.AbilityName
		}
		if partial := stats.ParseLooseStats(companion.RawStats); !partial.IsEmpty() {
			companion.CoreStats = &partial
		}
		item.Companion = companion
	}

	meaningful := item.AbilityName != placeholder ||
		item.Category != "" ||
		item.Companion != nil ||
		item.IsWeapon ||
		item.Description != "" ||
		item.Effect != "" ||
		len(item.StatModifiers) > 0
	if !meaningful {
		return nil, warnings
	}
	return &item, warnings
}

// optionalInt parses a cell as an integer, returning nil for blank or
// unparsable values. Absence means "not set", never zero.
func optionalInt(cell string) *int {
	if cell == "" {
		return nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return nil
	}
	return &n
}
