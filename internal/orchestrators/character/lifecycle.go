package character

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/character"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

// Character building limits
const (
	MinAbilityScore     = 1
	MaxAbilityScore     = 30
	DefaultAbilityScore = 10
	MaxCharacterLevel   = 20
)

// CreateCharacter stores a new character. Everything but the name and the
// player can be filled in later.
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *character.CreateCharacterInput,
) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "CreateCharacter", "")
	defer span.End()

	out, err := o.createCharacter(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) createCharacter(
	ctx context.Context,
	input *character.CreateCharacterInput,
) (*character.CreateCharacterOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	validateAbilityScores(input.AbilityScores, vb)
	if err := o.validateRace(ctx, input.Race, vb); err != nil {
		return nil, err
	}
	if err := o.validateBackground(ctx, input.Background, vb); err != nil {
		return nil, err
	}
	classes, err := o.normalizeClasses(ctx, input.Classes, vb)
	if err != nil {
		return nil, err
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	scores := make(map[dnd5e.Ability]int, len(dnd5e.Abilities))
	for _, a := range dnd5e.Abilities {
		scores[a] = DefaultAbilityScore
	}
	for a, v := range input.AbilityScores {
		scores[a] = v
	}

	char := &dnd5e.Character{
		ID:            o.idGen.Generate(),
		Name:          input.Name,
		PlayerID:      input.PlayerID,
		Race:          input.Race,
		Background:    input.Background,
		Classes:       classes,
		AbilityScores: scores,
	}

	out, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "character created",
		"character_id", out.Character.ID,
		"player_id", input.PlayerID)

	return &character.CreateCharacterOutput{Character: out.Character}, nil
}

// GetCharacter loads a character
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *character.GetCharacterInput,
) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	char, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	return &character.GetCharacterOutput{Character: char}, nil
}

// ListCharacters returns a player's characters
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *character.ListCharactersInput,
) (*character.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	return &character.ListCharactersOutput{Characters: out.Characters}, nil
}

// DeleteCharacter removes a character with everything it owns and drops its
// cached stats
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *character.DeleteCharacterInput,
) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "DeleteCharacter", input.CharacterID)
	defer span.End()

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, recordError(span, err)
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, recordError(span, err)
	}
	o.invalidateStats(ctx, input.CharacterID)

	slog.InfoContext(ctx, "character deleted", "character_id", input.CharacterID)

	return &character.DeleteCharacterOutput{
		Message: fmt.Sprintf("character %s deleted", input.CharacterID),
	}, nil
}

// UpdateRace changes race or subrace. Choices the old race offered are
// dropped with their side effects.
func (o *Orchestrator) UpdateRace(
	ctx context.Context,
	input *character.UpdateRaceInput,
) (*character.UpdateRaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "UpdateRace", input.CharacterID)
	defer span.End()

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("race", input.Race, vb)
	if err := o.validateRace(ctx, input.Race, vb); err != nil {
		return nil, recordError(span, err)
	}
	if err := vb.Build(); err != nil {
		return nil, recordError(span, err)
	}

	char, dropped, err := o.updateAttachments(ctx, input.CharacterID, func(char *dnd5e.Character) {
		char.Race = input.Race
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	return &character.UpdateRaceOutput{Character: char, Dropped: dropped}, nil
}

// UpdateBackground changes background. The old background's gold and items
// go with it.
func (o *Orchestrator) UpdateBackground(
	ctx context.Context,
	input *character.UpdateBackgroundInput,
) (*character.UpdateBackgroundOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "UpdateBackground", input.CharacterID)
	defer span.End()

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("background", input.Background, vb)
	if err := o.validateBackground(ctx, input.Background, vb); err != nil {
		return nil, recordError(span, err)
	}
	if err := vb.Build(); err != nil {
		return nil, recordError(span, err)
	}

	char, dropped, err := o.updateAttachments(ctx, input.CharacterID, func(char *dnd5e.Character) {
		if char.Background != input.Background {
			clearBackgroundGrants(char)
		}
		char.Background = input.Background
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	return &character.UpdateBackgroundOutput{Character: char, Dropped: dropped}, nil
}

// UpdateClasses replaces the class list. Lowering a level detaches choices
// granted above it.
func (o *Orchestrator) UpdateClasses(
	ctx context.Context,
	input *character.UpdateClassesInput,
) (*character.UpdateClassesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "UpdateClasses", input.CharacterID)
	defer span.End()

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	classes, err := o.normalizeClasses(ctx, input.Classes, vb)
	if err != nil {
		return nil, recordError(span, err)
	}
	if err := vb.Build(); err != nil {
		return nil, recordError(span, err)
	}

	char, dropped, err := o.updateAttachments(ctx, input.CharacterID, func(char *dnd5e.Character) {
		char.Classes = classes
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	return &character.UpdateClassesOutput{Character: char, Dropped: dropped}, nil
}

// updateAttachments applies change and drops whatever it detached, in one
// write
func (o *Orchestrator) updateAttachments(
	ctx context.Context,
	characterID string,
	change func(char *dnd5e.Character),
) (*dnd5e.Character, int, error) {
	dropped := 0
	out, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: characterID,
		Mutate: func(char *dnd5e.Character) error {
			change(char)
			var err error
			dropped, err = o.pruneDetached(ctx, char)
			return err
		},
	})
	if err != nil {
		return nil, 0, err
	}
	o.invalidateStats(ctx, characterID)

	if dropped > 0 {
		slog.InfoContext(ctx, "selections dropped after source change",
			"character_id", characterID,
			"dropped", dropped)
	}
	return out.Character, dropped, nil
}

// UpdateAbilityScores sets raw scores; abilities not in the input keep
// their value
func (o *Orchestrator) UpdateAbilityScores(
	ctx context.Context,
	input *character.UpdateAbilityScoresInput,
) (*character.UpdateAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "UpdateAbilityScores", input.CharacterID)
	defer span.End()

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if len(input.AbilityScores) == 0 {
		vb.RequiredField("abilityScores")
	}
	validateAbilityScores(input.AbilityScores, vb)
	if err := vb.Build(); err != nil {
		return nil, recordError(span, err)
	}

	out, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		ID: input.CharacterID,
		Mutate: func(char *dnd5e.Character) error {
			for a, v := range input.AbilityScores {
				char.AbilityScores[a] = v
			}
			return nil
		},
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	o.invalidateStats(ctx, input.CharacterID)

	return &character.UpdateAbilityScoresOutput{Character: out.Character}, nil
}

func validateAbilityScores(scores map[dnd5e.Ability]int, vb *errors.ValidationBuilder) {
	for a, v := range scores {
		if !a.IsValid() {
			vb.Fieldf("abilityScores", "unknown ability %q", a)
			continue
		}
		errors.ValidateRange("abilityScores."+string(a), v, MinAbilityScore, MaxAbilityScore, vb)
	}
}

func (o *Orchestrator) validateRace(ctx context.Context, race string, vb *errors.ValidationBuilder) error {
	if race == "" {
		return nil
	}
	_, err := o.catalog.GetRace(ctx, race)
	if errors.IsNotFound(err) {
		vb.Fieldf("race", "unknown race %q", race)
		return nil
	}
	return err
}

func (o *Orchestrator) validateBackground(ctx context.Context, background string, vb *errors.ValidationBuilder) error {
	if background == "" {
		return nil
	}
	_, err := o.catalog.GetBackground(ctx, background)
	if errors.IsNotFound(err) {
		vb.Fieldf("background", "unknown background %q", background)
		return nil
	}
	return err
}

// normalizeClasses checks class levels against the catalog and marks exactly
// one class primary, the first one when none is flagged. Field problems go to
// vb; catalog failures are returned.
func (o *Orchestrator) normalizeClasses(
	ctx context.Context,
	classes []dnd5e.ClassLevel,
	vb *errors.ValidationBuilder,
) ([]dnd5e.ClassLevel, error) {
	out := make([]dnd5e.ClassLevel, len(classes))
	copy(out, classes)

	seen := make(map[string]bool, len(out))
	total := 0
	primaries := 0
	for i := range out {
		cl := &out[i]
		field := fmt.Sprintf("classes[%d]", i)

		if cl.Class == "" {
			vb.RequiredField(field + ".class")
			continue
		}
		if seen[cl.Class] {
			vb.Fieldf(field+".class", "%s listed more than once", cl.Class)
		}
		seen[cl.Class] = true
		errors.ValidateRange(field+".level", cl.Level, 1, MaxCharacterLevel, vb)
		total += cl.Level
		if cl.IsPrimary {
			primaries++
		}

		class, err := o.catalog.GetClass(ctx, cl.Class)
		if errors.IsNotFound(err) {
			vb.Fieldf(field+".class", "unknown class %q", cl.Class)
			continue
		}
		if err != nil {
			return nil, err
		}
		if class.Parent != "" {
			vb.Fieldf(field+".class", "%s is a subclass of %s", cl.Class, class.Parent)
			continue
		}

		if cl.Subclass == "" {
			continue
		}
		sub, err := o.catalog.GetClass(ctx, cl.Subclass)
		if errors.IsNotFound(err) {
			vb.Fieldf(field+".subclass", "unknown subclass %q", cl.Subclass)
			continue
		}
		if err != nil {
			return nil, err
		}
		if sub.Parent != class.Slug {
			vb.Fieldf(field+".subclass", "%s is not a subclass of %s", cl.Subclass, cl.Class)
		}
	}

	if total > MaxCharacterLevel {
		vb.Fieldf("classes", "total level %d exceeds %d", total, MaxCharacterLevel)
	}
	if primaries > 1 {
		vb.Field("classes", "only one class can be primary")
	}
	if primaries == 0 && len(out) > 0 {
		out[0].IsPrimary = true
	}
	return out, nil
}
