package character

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/engine"
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// equipmentModeHandler decides between the class starting equipment and
// starting gold. Gold lands in the wallet as its own contribution, so undo
// takes back exactly what it added and leaves background gold alone.
type equipmentModeHandler struct {
	baseHandler
	o *Orchestrator
}

func classItemSource(class string) string {
	return string(dnd5e.KindClass) + ":" + class
}

func (h *equipmentModeHandler) options(
	ctx context.Context,
	_ *choiceContext,
	g activeGrant,
) (dnd5e.OptionSet, map[string]bool, error) {
	names := map[string]string{
		dnd5e.EquipmentModeEquipment: "Starting equipment",
		dnd5e.EquipmentModeGold:      "Starting gold",
	}
	class, err := h.o.catalog.GetClass(ctx, g.source.Slug)
	if err == nil && class.StartingWealth != nil {
		names[dnd5e.EquipmentModeGold] = "Starting gold (" + class.StartingWealth.Formula() + ")"
	}

	values := g.grant.Options
	if len(values) == 0 {
		values = []string{dnd5e.EquipmentModeEquipment, dnd5e.EquipmentModeGold}
	}
	opts, allowed := explicitOptions(values, names, nil)
	return opts, allowed, nil
}

func (h *equipmentModeHandler) metadata(activeGrant) map[string]interface{} {
	return map[string]interface{}{
		"max_gold_amount": h.o.maxGold,
	}
}

func (h *equipmentModeHandler) apply(
	ctx context.Context,
	cc *choiceContext,
	g activeGrant,
	selected []string,
	extras resolveExtras,
) error {
	class, err := h.o.catalog.GetClass(ctx, g.source.Slug)
	if err != nil {
		return errors.Wrapf(err, "failed to load class %s", g.source.Slug)
	}
	mode := selected[0]

	if mode != dnd5e.EquipmentModeGold {
		if extras.goldAmount != nil || extras.rollGold {
			return errors.InvalidArgument("gold_amount and roll_gold only apply when choosing gold")
		}
		for _, si := range class.StartingItems {
			qty := si.Quantity
			if qty < 1 {
				qty = 1
			}
			cc.char.Equipment = append(cc.char.Equipment, dnd5e.EquipmentEntry{
				ID:       h.o.idGen.Generate(),
				Item:     si.Item,
				Quantity: qty,
				Location: dnd5e.LocationBackpack,
				Source:   classItemSource(class.Slug),
			})
		}
		cc.char.EquipmentMode = &dnd5e.EquipmentModeMarker{Mode: mode, Source: class.Slug}
		return nil
	}

	amount, err := h.goldAmount(ctx, class, extras)
	if err != nil {
		return err
	}
	cc.char.Wallet.Set(dnd5e.CurrencyGold, dnd5e.WalletSourceStartingWealth, amount)
	cc.char.EquipmentMode = &dnd5e.EquipmentModeMarker{Mode: mode, GoldAmount: amount, Source: class.Slug}
	return nil
}

// goldAmount takes an explicit amount, a roll, or the catalog average, in
// that order
func (h *equipmentModeHandler) goldAmount(ctx context.Context, class *dnd5e.Class, extras resolveExtras) (int, error) {
	if extras.goldAmount != nil {
		if extras.rollGold {
			return 0, errors.InvalidArgument("gold_amount and roll_gold cannot both be set")
		}
		amount := *extras.goldAmount
		if amount < 1 || amount > h.o.maxGold {
			return 0, errors.Rulef(errors.ReasonInvalidAmount,
				"gold_amount must be between 1 and %d, got %d", h.o.maxGold, amount).
				WithMeta("gold_amount", amount)
		}
		return amount, nil
	}

	wealth := class.StartingWealth
	if wealth == nil {
		return 0, errors.Rulef(errors.ReasonInvalidAmount, "%s has no starting wealth", class.Name)
	}

	if extras.rollGold {
		out, err := h.o.engine.RollStartingWealth(ctx, &engine.RollStartingWealthInput{Wealth: wealth})
		if err != nil {
			return 0, err
		}
		return out.Amount, nil
	}

	if wealth.Average > 0 {
		return wealth.Average, nil
	}
	multiplier := wealth.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	return wealth.Dice * (wealth.Sides + 1) / 2 * multiplier, nil
}

func (h *equipmentModeHandler) revert(_ context.Context, cc *choiceContext, g activeGrant) {
	char := cc.char
	char.Wallet.Remove(dnd5e.CurrencyGold, dnd5e.WalletSourceStartingWealth)

	source := classItemSource(g.source.Slug)
	kept := char.Equipment[:0]
	for _, e := range char.Equipment {
		if e.Source != source {
			kept = append(kept, e)
		}
	}
	char.Equipment = kept

	if char.EquipmentMode != nil && char.EquipmentMode.Source == g.source.Slug {
		char.EquipmentMode = nil
	}
}
