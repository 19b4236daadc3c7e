package character

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/character"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

func backgroundItemSource(background string) string {
	return string(dnd5e.KindBackground) + ":" + background
}

// PopulateFixedGrants materializes every fixed grant not yet stored, then
// hands out the background's gold and starting items. Running it twice
// creates nothing the second time.
func (o *Orchestrator) PopulateFixedGrants(
	ctx context.Context,
	input *character.PopulateFixedGrantsInput,
) (*character.PopulateFixedGrantsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "PopulateFixedGrants", input.CharacterID)
	defer span.End()

	out, err := o.populateFixedGrants(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) populateFixedGrants(
	ctx context.Context,
	input *character.PopulateFixedGrantsInput,
) (*character.PopulateFixedGrantsOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	result := &character.PopulateFixedGrantsOutput{}
	updated, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: input.CharacterID,
		Mutate: func(char *dnd5e.Character) error {
			*result = character.PopulateFixedGrantsOutput{}

			if _, err := o.pruneDetached(ctx, char); err != nil {
				return err
			}
			set, err := o.collectGrants(ctx, char)
			if err != nil {
				return err
			}

			planned := planFixed(set, char.Selections)
			char.Selections = append(char.Selections, planned...)
			result.Selections = len(planned)

			if char.Background == "" {
				return nil
			}
			bg, err := o.catalog.GetBackground(ctx, char.Background)
			if err != nil {
				return errors.Wrapf(err, "failed to load background %s", char.Background)
			}

			if bg.Gold > 0 && !char.Wallet.Has(dnd5e.CurrencyGold, dnd5e.WalletSourceBackground) {
				char.Wallet.Set(dnd5e.CurrencyGold, dnd5e.WalletSourceBackground, bg.Gold)
				result.Gold = bg.Gold
			}

			source := backgroundItemSource(bg.Slug)
			if hasItemsFrom(char, source) {
				return nil
			}
			for _, si := range bg.StartingItems {
				qty := si.Quantity
				if qty < 1 {
					qty = 1
				}
				char.Equipment = append(char.Equipment, dnd5e.EquipmentEntry{
					ID:       o.idGen.Generate(),
					Item:     si.Item,
					Quantity: qty,
					Location: dnd5e.LocationBackpack,
					Source:   source,
				})
				result.Items++
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	o.invalidateStats(ctx, input.CharacterID)

	slog.InfoContext(ctx, "fixed grants populated",
		"character_id", input.CharacterID,
		"selections", result.Selections,
		"items", result.Items,
		"gold", result.Gold)

	result.Character = updated.Character
	return result, nil
}

func hasItemsFrom(char *dnd5e.Character, source string) bool {
	for i := range char.Equipment {
		if char.Equipment[i].Source == source {
			return true
		}
	}
	return false
}

// clearBackgroundGrants removes the gold and items a background handed out
func clearBackgroundGrants(char *dnd5e.Character) {
	char.Wallet.Remove(dnd5e.CurrencyGold, dnd5e.WalletSourceBackground)

	prefix := string(dnd5e.KindBackground) + ":"
	kept := make([]dnd5e.EquipmentEntry, 0, len(char.Equipment))
	for _, e := range char.Equipment {
		if !strings.HasPrefix(e.Source, prefix) {
			kept = append(kept, e)
		}
	}
	char.Equipment = kept
}
