package encounter

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hexmark/grimoire/internal/game/loadout"
	"github.com/hexmark/grimoire/internal/game/stats"
)

// ActiveCharacter is a live player character. Base is the character's own
// template block; Stats is the effective block after the equipped card's
// global modifiers and the chosen items' modifiers, recomputed through
// stats.Apply on every equipment change.
type ActiveCharacter struct {
	InstanceID string
	Name       string

	Base stats.Block
	// Card is the equipped arsenal card; nil when unequipped.
	Card *loadout.LoadoutCard
	// EquippedItemIDs lists the card items contributing modifiers, in
	// equip order.
	EquippedItemIDs []string

	Stats      stats.Block
	CurrentHP  int
	CurrentSan *int
}

// NewActiveCharacter creates a live character at full health from a base
// block, with no equipment.
//
// Precondition: name must be non-empty; base.HP >= 1.
func NewActiveCharacter(name string, base stats.Block) (*ActiveCharacter, error) {
	if name == "" {
		return nil, errors.New("encounter: character name must not be empty")
	}
	if base.HP < 1 {
		return nil, fmt.Errorf("encounter: character %q must have at least 1 HP", name)
	}

	effective := base.Clone()
	c := &ActiveCharacter{
		InstanceID: uuid.NewString(),
		Name:       name,
		Base:       base.Clone(),
		Stats:      effective,
		CurrentHP:  effective.HP,
	}
	if effective.San != nil {
		san := *effective.San
		c.CurrentSan = &san
	}
	return c, nil
}

// Equip applies an arsenal card to the character: the card's global
// modifiers plus the modifiers of the chosen items, in order, layered onto
// the base block. Damage already taken is preserved against the new
// maximums and current values are re-clamped.
//
// Precondition: card must be non-nil and not a diagnostic sentinel; every
// id in itemIDs must name an item on the card.
func (c *ActiveCharacter) Equip(card *loadout.LoadoutCard, itemIDs ...string) error {
	if card == nil {
		return errors.New("encounter: card must not be nil")
	}
	if card.IsDiagnostic() {
		return fmt.Errorf("encounter: cannot equip diagnostic entry %q", card.ID)
	}

	mods := append([]stats.Modifier(nil), card.GlobalModifiers...)
	for _, id := range itemIDs {
		item := card.Item(id)
		if item == nil {
			return fmt.Errorf("encounter: card %q has no item %q", card.ID, id)
		}
		mods = append(mods, item.StatModifiers...)
	}

	c.Card = card
	c.EquippedItemIDs = append([]string(nil), itemIDs...)
	c.recompute(mods)
	return nil
}

// Unequip removes the card and reverts the effective block to the base.
func (c *ActiveCharacter) Unequip() {
	c.Card = nil
	c.EquippedItemIDs = nil
	c.recompute(nil)
}

// recompute rebuilds the effective block through the stat engine and
// carries damage taken across the change in maximums.
func (c *ActiveCharacter) recompute(mods []stats.Modifier) {
	hpDamage := c.Stats.HP - c.CurrentHP
	var sanDamage int
	if c.Stats.San != nil && c.CurrentSan != nil {
		sanDamage = *c.Stats.San - *c.CurrentSan
	}

	c.Stats = stats.Apply(c.Base, mods)

	c.CurrentHP = clamp(c.Stats.HP-hpDamage, 0, c.Stats.HP)
	if c.Stats.San == nil {
		c.CurrentSan = nil
	} else {
		san := clamp(*c.Stats.San-sanDamage, 0, *c.Stats.San)
		c.CurrentSan = &san
	}
}

// ApplyDamage reduces current HP, flooring at zero.
//
// Precondition: amount >= 0.
func (c *ActiveCharacter) ApplyDamage(amount int) {
	c.CurrentHP = clamp(c.CurrentHP-amount, 0, c.Stats.HP)
}

// Heal restores current HP, capped at the effective maximum.
//
// Precondition: amount >= 0.
func (c *ActiveCharacter) Heal(amount int) {
	c.CurrentHP = clamp(c.CurrentHP+amount, 0, c.Stats.HP)
}

// AdjustSanity moves current sanity by delta (negative = loss), bounded by
// [0, max]. No-op for characters without a sanity track.
func (c *ActiveCharacter) AdjustSanity(delta int) {
	if c.Stats.San == nil || c.CurrentSan == nil {
		return
	}
	san := clamp(*c.CurrentSan+delta, 0, *c.Stats.San)
	c.CurrentSan = &san
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
