package engine

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// MaxAttunedItems is the attunement pool size
const MaxAttunedItems = 3

// AssignEquipmentSlotInput moves one entry. Attune nil keeps the current
// attunement when the entry stays equipped.
type AssignEquipmentSlotInput struct {
	Entries  []dnd5e.EquipmentEntry
	Items    map[string]*dnd5e.Item
	EntryID  string
	Location dnd5e.Location
	Attune   *bool
}

// AssignEquipmentSlotOutput returns the updated entries and who got evicted
type AssignEquipmentSlotOutput struct {
	Entries []dnd5e.EquipmentEntry
	Evicted []string
}

func (e *engine) AssignEquipmentSlot(
	_ context.Context,
	input *AssignEquipmentSlotInput,
) (*AssignEquipmentSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	return AssignSlot(input)
}

// AssignSlot validates the move against every slot rule before touching any
// entry, then applies it with cascading evictions. The input slice is not
// modified.
func AssignSlot(input *AssignEquipmentSlotInput) (*AssignEquipmentSlotOutput, error) {
	entries := make([]dnd5e.EquipmentEntry, len(input.Entries))
	copy(entries, input.Entries)

	idx := -1
	for i := range entries {
		if entries[i].ID == input.EntryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.NotFoundf("equipment entry %s not found", input.EntryID)
	}
	entry := &entries[idx]
	loc := input.Location

	if !loc.IsValid() {
		return nil, errors.Rulef(errors.ReasonInvalidLocation, "%s is not an equipment location", loc)
	}

	var item *dnd5e.Item
	if !entry.IsCustom() {
		item = input.Items[entry.Item]
		if item == nil {
			return nil, errors.NotFoundf("item %s not found", entry.Item)
		}
	}

	if loc.IsEquipped() {
		if item == nil {
			return nil, errors.Rulef(errors.ReasonInvalidItemType, "custom items cannot be equipped")
		}
		if !CanOccupy(item, loc) {
			return nil, errors.Rulef(errors.ReasonInvalidItemType, "%s cannot be placed in %s", item.Name, loc).
				WithMeta("item", item.Slug).
				WithMeta("location", string(loc))
		}
	}

	// The backpack always clears attunement, whatever was asked for
	attune := entry.IsAttuned && loc.IsEquipped()
	if input.Attune != nil && loc.IsEquipped() {
		attune = *input.Attune
	}
	if attune {
		if item == nil || !item.RequiresAttunement {
			return nil, errors.Rulef(errors.ReasonInvalidAttunement, "%s does not require attunement", entryName(entry, item))
		}
		if !loc.IsEquipped() {
			return nil, errors.Rulef(errors.ReasonInvalidAttunement, "%s must be equipped to attune", item.Name)
		}
	}

	if loc == dnd5e.LocationOffHand {
		for i := range entries {
			if i == idx || entries[i].Location != dnd5e.LocationMainHand {
				continue
			}
			if main := input.Items[entries[i].Item]; main != nil && main.TwoHanded {
				return nil, errors.Rulef(errors.ReasonSlotConflict,
					"%s occupies both hands; move it out of main_hand first", main.Name).
					WithMeta("blocking_entry", entries[i].ID)
			}
		}
	}

	evict := make(map[int]bool)
	if loc.IsEquipped() {
		for i := range entries {
			if i == idx {
				continue
			}
			if entries[i].Location == loc {
				evict[i] = true
			}
			if loc == dnd5e.LocationMainHand && item.TwoHanded && entries[i].Location == dnd5e.LocationOffHand {
				evict[i] = true
			}
		}
	}

	if attune && !entry.IsAttuned {
		attuned := 0
		for i := range entries {
			if i != idx && !evict[i] && entries[i].IsAttuned {
				attuned++
			}
		}
		if attuned >= MaxAttunedItems {
			return nil, errors.Rulef(errors.ReasonAttunementLimitReached,
				"already attuned to %d items", MaxAttunedItems)
		}
	}

	out := &AssignEquipmentSlotOutput{}
	for i := range entries {
		if !evict[i] {
			continue
		}
		entries[i].Location = dnd5e.LocationBackpack
		entries[i].Equipped = false
		entries[i].IsAttuned = false
		out.Evicted = append(out.Evicted, entries[i].ID)
	}

	entry.Location = loc
	entry.Equipped = loc.IsEquipped()
	entry.IsAttuned = attune && entry.Equipped

	out.Entries = entries
	return out, nil
}

// CanOccupy reports whether an item category fits a location. The backpack
// takes anything.
func CanOccupy(item *dnd5e.Item, loc dnd5e.Location) bool {
	if loc == dnd5e.LocationBackpack {
		return true
	}
	switch item.Category {
	case dnd5e.ItemWeapon:
		if item.TwoHanded {
			return loc == dnd5e.LocationMainHand
		}
		return loc == dnd5e.LocationMainHand || loc == dnd5e.LocationOffHand
	case dnd5e.ItemArmor:
		return loc == dnd5e.LocationArmor
	case dnd5e.ItemShield:
		return loc == dnd5e.LocationOffHand
	case dnd5e.ItemRing:
		return loc == dnd5e.LocationRing1 || loc == dnd5e.LocationRing2
	case dnd5e.ItemClothing:
		return loc == dnd5e.LocationClothes
	case dnd5e.ItemWondrous:
		if item.Slot != "" {
			return loc == item.Slot
		}
		return loc != dnd5e.LocationMainHand && loc != dnd5e.LocationOffHand
	default:
		return false
	}
}

// DefaultLocation picks where a newly equipped item goes: armor to the armor
// slot, shields to the off hand, rings to the first free ring slot, anything
// else that can be wielded to the main hand.
func DefaultLocation(item *dnd5e.Item, entries []dnd5e.EquipmentEntry) dnd5e.Location {
	if item == nil {
		return dnd5e.LocationBackpack
	}
	switch item.Category {
	case dnd5e.ItemArmor:
		return dnd5e.LocationArmor
	case dnd5e.ItemShield:
		return dnd5e.LocationOffHand
	case dnd5e.ItemRing:
		for _, e := range entries {
			if e.Location == dnd5e.LocationRing1 {
				return dnd5e.LocationRing2
			}
		}
		return dnd5e.LocationRing1
	case dnd5e.ItemClothing:
		return dnd5e.LocationClothes
	case dnd5e.ItemWondrous:
		if item.Slot != "" {
			return item.Slot
		}
		return dnd5e.LocationBackpack
	case dnd5e.ItemWeapon:
		return dnd5e.LocationMainHand
	default:
		return dnd5e.LocationBackpack
	}
}

func entryName(entry *dnd5e.EquipmentEntry, item *dnd5e.Item) string {
	if item != nil {
		return item.Name
	}
	return entry.CustomName
}
