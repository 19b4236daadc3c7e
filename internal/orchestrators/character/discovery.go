package character

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/character"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

// ListPendingChoices discovers every choice group the character's granting
// entities expose. Groups from different entities are never merged.
func (o *Orchestrator) ListPendingChoices(
	ctx context.Context,
	input *character.ListPendingChoicesInput,
) (*character.ListPendingChoicesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "ListPendingChoices", input.CharacterID)
	defer span.End()

	out, err := o.listPendingChoices(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) listPendingChoices(
	ctx context.Context,
	input *character.ListPendingChoicesInput,
) (*character.ListPendingChoicesOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if input.Domain != "" && !input.Domain.IsValid() {
		vb.Fieldf("domain", "unknown choice domain %q", input.Domain)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	cc, err := o.newChoiceContext(ctx, char)
	if err != nil {
		return nil, err
	}

	choices := []*dnd5e.PendingChoice{}
	seen := make(map[string]bool)
	for _, g := range cc.set.grants {
		if !g.grant.IsChoice {
			continue
		}
		if input.Domain != "" && g.grant.Domain != input.Domain {
			continue
		}

		choice, err := o.describe(ctx, cc, g)
		if err != nil {
			return nil, err
		}
		if seen[choice.ID] {
			continue
		}
		seen[choice.ID] = true

		if input.IncludeResolved || choice.IsPending() {
			choices = append(choices, choice)
		}
	}

	return &character.ListPendingChoicesOutput{Choices: choices}, nil
}

// GetPendingChoice returns one choice group, resolved or not
func (o *Orchestrator) GetPendingChoice(
	ctx context.Context,
	input *character.GetPendingChoiceInput,
) (*character.GetPendingChoiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "GetPendingChoice", input.CharacterID)
	defer span.End()

	out, err := o.getPendingChoice(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) getPendingChoice(
	ctx context.Context,
	input *character.GetPendingChoiceInput,
) (*character.GetPendingChoiceOutput, error) {
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

	char, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	cc, err := o.newChoiceContext(ctx, char)
	if err != nil {
		return nil, err
	}

	g, err := findChoice(cc, id)
	if err != nil {
		return nil, err
	}

	choice, err := o.describe(ctx, cc, g)
	if err != nil {
		return nil, err
	}

	return &character.GetPendingChoiceOutput{Choice: choice}, nil
}

// describe builds the descriptor for one choice grant
func (o *Orchestrator) describe(ctx context.Context, cc *choiceContext, g activeGrant) (*dnd5e.PendingChoice, error) {
	h, ok := o.handlers[g.grant.Domain]
	if !ok {
		return nil, errors.Internalf("no handler for choice domain %s", g.grant.Domain)
	}

	opts, _, err := h.options(ctx, cc, g)
	if err != nil {
		return nil, err
	}

	selected := cc.selectedBy(g)
	remaining := g.grant.Quantity - len(selected)
	if remaining < 0 {
		remaining = 0
	}

	return &dnd5e.PendingChoice{
		ID:           g.choiceID().String(),
		Domain:       g.grant.Domain,
		Subtype:      g.grant.Subtype,
		Source:       g.source.Kind,
		SourceSlug:   g.source.Slug,
		SourceName:   g.sourceName,
		ChoiceGroup:  g.grant.ChoiceGroup,
		LevelGranted: g.grant.LevelGranted,
		Required:     true,
		Quantity:     g.grant.Quantity,
		Remaining:    remaining,
		Selected:     selected,
		Options:      opts,
		Metadata:     h.metadata(g),
	}, nil
}

func parseChoiceID(raw string) (dnd5e.ChoiceID, error) {
	id, err := dnd5e.ParseChoiceID(raw)
	if err != nil {
		return dnd5e.ChoiceID{}, errors.ChoiceNotFoundf("choice %s not found: %s", raw, err.Error())
	}
	return id, nil
}

// findChoice resolves an id against the character's current grants. A stale
// id (race changed, level dropped, wrong character) is a ChoiceNotFound.
func findChoice(cc *choiceContext, id dnd5e.ChoiceID) (activeGrant, error) {
	g, ok := cc.set.findChoice(id)
	if !ok {
		return activeGrant{}, errors.ChoiceNotFoundf("choice %s not found on character %s", id, cc.char.ID).
			WithMeta("choice_id", id.String())
	}
	return g, nil
}

func (o *Orchestrator) getCharacter(ctx context.Context, id string) (*dnd5e.Character, error) {
	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(entityAttributes(out.Character)...)
	return out.Character, nil
}
