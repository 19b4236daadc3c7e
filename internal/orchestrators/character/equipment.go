package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-character-api/internal/engine"
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/character"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

// AddEquipment puts a catalog item or a custom line in the backpack
func (o *Orchestrator) AddEquipment(
	ctx context.Context,
	input *character.AddEquipmentInput,
) (*character.AddEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "AddEquipment", input.CharacterID)
	defer span.End()

	out, err := o.addEquipment(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) addEquipment(
	ctx context.Context,
	input *character.AddEquipmentInput,
) (*character.AddEquipmentOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	switch {
	case input.Item == "" && input.CustomName == "":
		vb.Field("item", "item or custom_name is required")
	case input.Item != "" && input.CustomName != "":
		vb.Field("item", "item and custom_name are mutually exclusive")
	}
	if input.Quantity < 0 {
		vb.Field("quantity", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if input.Item != "" {
		if _, err := o.catalog.GetItem(ctx, input.Item); err != nil {
			return nil, err
		}
	}

	qty := input.Quantity
	if qty == 0 {
		qty = 1
	}
	entry := dnd5e.EquipmentEntry{
		ID:         o.idGen.Generate(),
		Item:       input.Item,
		CustomName: input.CustomName,
		Quantity:   qty,
		Location:   dnd5e.LocationBackpack,
	}

	_, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: input.CharacterID,
		Mutate: func(char *dnd5e.Character) error {
			char.Equipment = append(char.Equipment, entry)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	o.invalidateStats(ctx, input.CharacterID)

	slog.InfoContext(ctx, "equipment added",
		"character_id", input.CharacterID,
		"entry_id", entry.ID,
		"item", input.Item)

	return &character.AddEquipmentOutput{Entry: &entry}, nil
}

// UpdateEquipment moves an entry between slots and changes attunement. Slot
// rules are checked before anything changes; occupants of the target slot
// are moved to the backpack.
func (o *Orchestrator) UpdateEquipment(
	ctx context.Context,
	input *character.UpdateEquipmentInput,
) (*character.UpdateEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "UpdateEquipment", input.CharacterID)
	defer span.End()

	out, err := o.updateEquipment(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) updateEquipment(
	ctx context.Context,
	input *character.UpdateEquipmentInput,
) (*character.UpdateEquipmentOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("entryID", input.EntryID, vb)
	if input.Location == nil && input.IsAttuned == nil {
		vb.Field("location", "location or is_attuned is required")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var evictedIDs []string
	updated, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: input.CharacterID,
		Mutate: func(char *dnd5e.Character) error {
			evictedIDs = nil

			entry := findEntry(char.Equipment, input.EntryID)
			if entry == nil {
				return errors.NotFoundf("equipment entry %s not found", input.EntryID)
			}
			loc := entry.Location
			if input.Location != nil {
				loc = *input.Location
			}

			items, err := o.loadItems(ctx, char.Equipment)
			if err != nil {
				return err
			}

			out, err := o.engine.AssignEquipmentSlot(ctx, &engine.AssignEquipmentSlotInput{
				Entries:  char.Equipment,
				Items:    items,
				EntryID:  input.EntryID,
				Location: loc,
				Attune:   input.IsAttuned,
			})
			if err != nil {
				return err
			}

			char.Equipment = out.Entries
			evictedIDs = out.Evicted
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	o.invalidateStats(ctx, input.CharacterID)

	equipment := updated.Character.Equipment
	result := &character.UpdateEquipmentOutput{Entry: findEntry(equipment, input.EntryID)}
	for _, id := range evictedIDs {
		if e := findEntry(equipment, id); e != nil {
			result.Evicted = append(result.Evicted, e)
		}
	}

	slog.InfoContext(ctx, "equipment moved",
		"character_id", input.CharacterID,
		"entry_id", input.EntryID,
		"location", string(result.Entry.Location),
		"evicted", len(result.Evicted))

	return result, nil
}

// loadItems fetches the catalog rows for every non-custom entry. Entries
// whose item left the catalog are skipped; the slot rules only need the
// moved entry and the current occupants.
func (o *Orchestrator) loadItems(ctx context.Context, entries []dnd5e.EquipmentEntry) (map[string]*dnd5e.Item, error) {
	items := make(map[string]*dnd5e.Item)
	for i := range entries {
		slug := entries[i].Item
		if slug == "" || items[slug] != nil {
			continue
		}
		item, err := o.catalog.GetItem(ctx, slug)
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to load item %s", slug)
		}
		items[slug] = item
	}
	return items, nil
}

func findEntry(entries []dnd5e.EquipmentEntry, id string) *dnd5e.EquipmentEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}
