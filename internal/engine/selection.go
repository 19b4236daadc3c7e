package engine

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// ValidateChoiceSelectionInput is a selection against one choice group
type ValidateChoiceSelectionInput struct {
	Grant    *dnd5e.GrantRecord
	Selected []string

	// Allowed is the resolved option set; lookup-variant choices are resolved
	// by the caller before validating
	Allowed map[string]bool
}

// ValidateChoiceSelectionOutput is empty on success
type ValidateChoiceSelectionOutput struct{}

func (e *engine) ValidateChoiceSelection(
	_ context.Context,
	input *ValidateChoiceSelectionInput,
) (*ValidateChoiceSelectionOutput, error) {
	if input == nil || input.Grant == nil {
		return nil, errors.InvalidArgument("grant is required")
	}
	if err := ValidateSelection(input.Grant, input.Selected, input.Allowed); err != nil {
		return nil, err
	}
	return &ValidateChoiceSelectionOutput{}, nil
}

// ValidateSelection applies the choice rules in order: non-empty, exact
// quantity, distinctness when the grant asks for it, then option membership.
func ValidateSelection(grant *dnd5e.GrantRecord, selected []string, allowed map[string]bool) error {
	if len(selected) == 0 {
		return errors.Rulef(errors.ReasonEmptySelection,
			"choice %s requires %d selection(s), none given", grant.ChoiceGroup, grant.Quantity)
	}

	if len(selected) != grant.Quantity {
		return errors.Rulef(errors.ReasonInvalidQuantity,
			"choice %s requires exactly %d selection(s), got %d", grant.ChoiceGroup, grant.Quantity, len(selected)).
			WithMeta("expected", grant.Quantity).
			WithMeta("actual", len(selected))
	}

	if grant.RequiresDistinct() {
		seen := make(map[string]bool, len(selected))
		for _, target := range selected {
			if seen[target] {
				return errors.Rulef(errors.ReasonDuplicateSelection,
					"%s selected more than once; choice %s requires different selections", target, grant.ChoiceGroup).
					WithMeta("target", target)
			}
			seen[target] = true
		}
	}

	for _, target := range selected {
		if !allowed[target] {
			return errors.Rulef(errors.ReasonInvalidOption,
				"%s is not a valid option for choice %s", target, grant.ChoiceGroup).
				WithMeta("target", target)
		}
	}

	return nil
}
