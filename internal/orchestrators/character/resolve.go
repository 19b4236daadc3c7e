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

// maxPrunePasses bounds the detach cascade (a feat granted by a feat granted
// by a race, and so on)
const maxPrunePasses = 8

// ResolveChoice validates a selection and replaces whatever the choice group
// held before. Validation, the revert of the previous resolution and the new
// side effects run inside one optimistic transaction, so a rejected request
// leaves nothing behind.
func (o *Orchestrator) ResolveChoice(
	ctx context.Context,
	input *character.ResolveChoiceInput,
) (*character.ResolveChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "ResolveChoice", input.CharacterID)
	defer span.End()

	out, err := o.resolveChoice(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) resolveChoice(
	ctx context.Context,
	input *character.ResolveChoiceInput,
) (*character.ResolveChoiceOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("choiceID", input.ChoiceID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	id, err := parseChoiceID(input.ChoiceID)
	if err != nil {
		return nil, err
	}
	extras := resolveExtras{goldAmount: input.GoldAmount, rollGold: input.RollGold}

	var resolved activeGrant
	updated, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: input.CharacterID,
		Mutate: func(char *dnd5e.Character) error {
			cc, err := o.newChoiceContext(ctx, char)
			if err != nil {
				return err
			}
			g, err := findChoice(cc, id)
			if err != nil {
				return err
			}
			resolved = g
			h := o.handlers[g.grant.Domain]

			_, allowed, err := h.options(ctx, cc, g)
			if err != nil {
				return err
			}
			_, err = o.engine.ValidateChoiceSelection(ctx, &engine.ValidateChoiceSelectionInput{
				Grant:    validationGrant(g.grant),
				Selected: input.Selected,
				Allowed:  allowed,
			})
			if err != nil {
				return err
			}

			o.clearGroup(ctx, cc, g)
			for _, target := range input.Selected {
				char.Selections = append(char.Selections, dnd5e.ResolvedSelection{
					Domain:        g.grant.Domain,
					Source:        g.source.Kind,
					SourceSlug:    g.source.Slug,
					ChoiceGroup:   g.grant.ChoiceGroup,
					GrantRecordID: g.grant.ID,
					Target:        target,
					Value:         g.grant.Value,
					Subtype:       h.subtype(cc, g, target),
				})
			}
			if err := h.apply(ctx, cc, g, input.Selected, extras); err != nil {
				return err
			}

			_, err = o.pruneDetached(ctx, char)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	o.invalidateStats(ctx, input.CharacterID)

	slog.InfoContext(ctx, "choice resolved",
		"character_id", input.CharacterID,
		"choice_id", input.ChoiceID,
		"selected", input.Selected)

	choice := o.describeCommitted(ctx, updated.Character, id, resolved)
	return &character.ResolveChoiceOutput{Choice: choice, Character: updated.Character}, nil
}

// validationGrant turns on the distinctness rule for domains where holding
// a target twice grants nothing
func validationGrant(grant *dnd5e.GrantRecord) *dnd5e.GrantRecord {
	if !uniqueDomains[grant.Domain] || grant.RequiresDistinct() {
		return grant
	}
	distinct := *grant
	distinct.Constraint = dnd5e.ConstraintDifferent
	return &distinct
}

// UndoChoice removes every selection of a choice group and reverses its side
// effects. Undoing an unresolved group succeeds and changes nothing.
func (o *Orchestrator) UndoChoice(
	ctx context.Context,
	input *character.UndoChoiceInput,
) (*character.UndoChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "UndoChoice", input.CharacterID)
	defer span.End()

	out, err := o.undoChoice(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) undoChoice(
	ctx context.Context,
	input *character.UndoChoiceInput,
) (*character.UndoChoiceOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("choiceID", input.ChoiceID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	id, err := parseChoiceID(input.ChoiceID)
	if err != nil {
		return nil, err
	}

	removed := 0
	var undone activeGrant
	updated, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: input.CharacterID,
		Mutate: func(char *dnd5e.Character) error {
			// Mutate can rerun on conflict
			removed = 0

			cc, err := o.newChoiceContext(ctx, char)
			if err != nil {
				return err
			}
			g, err := findChoice(cc, id)
			if err != nil {
				return err
			}
			undone = g

			removed = o.clearGroup(ctx, cc, g)
			pruned, err := o.pruneDetached(ctx, char)
			removed += pruned
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	o.invalidateStats(ctx, input.CharacterID)

	slog.InfoContext(ctx, "choice undone",
		"character_id", input.CharacterID,
		"choice_id", input.ChoiceID,
		"removed", removed)

	choice := o.describeCommitted(ctx, updated.Character, id, undone)
	return &character.UndoChoiceOutput{Choice: choice, Character: updated.Character, Removed: removed}, nil
}

// clearGroup reverts the group's side effects and deletes its selections,
// returning how many selections were removed
func (o *Orchestrator) clearGroup(ctx context.Context, cc *choiceContext, g activeGrant) int {
	char := cc.char
	kept := make([]dnd5e.ResolvedSelection, 0, len(char.Selections))
	removed := 0
	for i := range char.Selections {
		if g.owns(&char.Selections[i]) {
			removed++
			continue
		}
		kept = append(kept, char.Selections[i])
	}
	if removed > 0 {
		o.handlers[g.grant.Domain].revert(ctx, cc, g)
	}
	char.Selections = kept
	return removed
}

// pruneDetached drops selections whose grant is no longer active on the
// character (source detached, level dropped, feat replaced) and reverses
// their side effects. Detaching a feat can detach what it granted, so the
// scan repeats until nothing changes.
func (o *Orchestrator) pruneDetached(ctx context.Context, char *dnd5e.Character) (int, error) {
	removed := 0
	for pass := 0; pass < maxPrunePasses; pass++ {
		set, err := o.collectGrants(ctx, char)
		if err != nil {
			return removed, err
		}

		kept := make([]dnd5e.ResolvedSelection, 0, len(char.Selections))
		var dropped []dnd5e.ResolvedSelection
		for i := range char.Selections {
			if _, ok := set.owner(&char.Selections[i]); ok {
				kept = append(kept, char.Selections[i])
				continue
			}
			dropped = append(dropped, char.Selections[i])
		}
		if len(dropped) == 0 {
			return removed, nil
		}

		char.Selections = kept
		removed += len(dropped)

		cc := &choiceContext{char: char, set: set}
		reverted := make(map[dnd5e.ChoiceID]bool)
		for _, sel := range dropped {
			g := activeGrant{
				grant: &dnd5e.GrantRecord{
					ID:          sel.GrantRecordID,
					Domain:      sel.Domain,
					IsChoice:    !sel.IsFixed(),
					ChoiceGroup: sel.ChoiceGroup,
				},
				source: sel.SourceRef(),
			}
			if reverted[g.choiceID()] {
				continue
			}
			reverted[g.choiceID()] = true
			if h, ok := o.handlers[sel.Domain]; ok {
				h.revert(ctx, cc, g)
			}
		}

		slog.DebugContext(ctx, "dropped detached selections",
			"character_id", char.ID,
			"count", len(dropped))
	}
	return removed, nil
}

// describeCommitted describes a choice after its write landed. Some choices
// only stay attached while they hold a selection (equipment mode past level
// 1), so a detached choice is described from the grant the write used. The
// write already succeeded, so a failure here only drops the descriptor.
func (o *Orchestrator) describeCommitted(
	ctx context.Context,
	char *dnd5e.Character,
	id dnd5e.ChoiceID,
	g activeGrant,
) *dnd5e.PendingChoice {
	choice, err := o.describeByID(ctx, char, id)
	if err == nil {
		return choice
	}
	if errors.HasReason(err, errors.ReasonChoiceNotFound) {
		cc, ccErr := o.newChoiceContext(ctx, char)
		if ccErr == nil {
			choice, err = o.describe(ctx, cc, g)
			if err == nil {
				return choice
			}
		} else {
			err = ccErr
		}
	}
	slog.WarnContext(ctx, "failed to describe choice after write",
		"character_id", char.ID,
		"choice_id", id.String(),
		"error", err.Error())
	return nil
}

func (o *Orchestrator) describeByID(ctx context.Context, char *dnd5e.Character, id dnd5e.ChoiceID) (*dnd5e.PendingChoice, error) {
	cc, err := o.newChoiceContext(ctx, char)
	if err != nil {
		return nil, err
	}
	g, err := findChoice(cc, id)
	if err != nil {
		return nil, err
	}
	return o.describe(ctx, cc, g)
}
