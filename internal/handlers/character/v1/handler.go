// Package v1 handles the character gRPC service interface
package v1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements the character gRPC service
type Handler struct {
	characterService character.Service
}

var _ CharacterServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
	}, nil
}

// respond encodes a response or maps the service error onto a gRPC status
func respond(v any, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	out, err := encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

// CreateCharacter creates a character with its race, background and classes
func (h *Handler) CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createCharacterRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.CreateCharacter(ctx, &character.CreateCharacterInput{
		PlayerID:      in.PlayerID,
		Name:          in.Name,
		Race:          in.Race,
		Background:    in.Background,
		Classes:       in.Classes,
		AbilityScores: in.AbilityScores,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(characterResponse{Character: out.Character}, nil)
}

// GetCharacter returns one character
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in characterRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{
		CharacterID: in.CharacterID,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(characterResponse{Character: out.Character}, nil)
}

// ListCharacters returns a player's characters
func (h *Handler) ListCharacters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listCharactersRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.ListCharacters(ctx, &character.ListCharactersInput{
		PlayerID: in.PlayerID,
	})
	if err != nil {
		return respond(nil, err)
	}
	characters := out.Characters
	if characters == nil {
		characters = []*dnd5e.Character{}
	}
	return respond(listCharactersResponse{Characters: characters}, nil)
}

// DeleteCharacter removes a character and its cached stats
func (h *Handler) DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in characterRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.DeleteCharacter(ctx, &character.DeleteCharacterInput{
		CharacterID: in.CharacterID,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(deleteCharacterResponse{Message: out.Message}, nil)
}

// UpdateRace changes race or subrace
func (h *Handler) UpdateRace(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateRaceRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.UpdateRace(ctx, &character.UpdateRaceInput{
		CharacterID: in.CharacterID,
		Race:        in.Race,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(updateResponse{Character: out.Character, Dropped: out.Dropped}, nil)
}

// UpdateBackground changes background
func (h *Handler) UpdateBackground(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateBackgroundRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.UpdateBackground(ctx, &character.UpdateBackgroundInput{
		CharacterID: in.CharacterID,
		Background:  in.Background,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(updateResponse{Character: out.Character, Dropped: out.Dropped}, nil)
}

// UpdateClasses replaces class levels
func (h *Handler) UpdateClasses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateClassesRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.UpdateClasses(ctx, &character.UpdateClassesInput{
		CharacterID: in.CharacterID,
		Classes:     in.Classes,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(updateResponse{Character: out.Character, Dropped: out.Dropped}, nil)
}

// UpdateAbilityScores sets raw ability scores
func (h *Handler) UpdateAbilityScores(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateAbilityScoresRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.UpdateAbilityScores(ctx, &character.UpdateAbilityScoresInput{
		CharacterID:   in.CharacterID,
		AbilityScores: in.AbilityScores,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(characterResponse{Character: out.Character}, nil)
}

// ListPendingChoices returns the choice groups the character still has to make
func (h *Handler) ListPendingChoices(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in listPendingChoicesRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.ListPendingChoices(ctx, &character.ListPendingChoicesInput{
		CharacterID:     in.CharacterID,
		Domain:          in.Domain,
		IncludeResolved: in.IncludeResolved,
	})
	if err != nil {
		return respond(nil, err)
	}

	choices := make([]*choiceView, 0, len(out.Choices))
	for _, c := range out.Choices {
		choices = append(choices, newChoiceView(c))
	}
	return respond(listPendingChoicesResponse{Choices: choices}, nil)
}

// GetPendingChoice returns one choice group, resolved or not
func (h *Handler) GetPendingChoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in choiceRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.GetPendingChoice(ctx, &character.GetPendingChoiceInput{
		CharacterID: in.CharacterID,
		ChoiceID:    in.ChoiceID,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(choiceResponse{Choice: newChoiceView(out.Choice)}, nil)
}

// ResolveChoice replaces a choice group's selections
func (h *Handler) ResolveChoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in resolveChoiceRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.ResolveChoice(ctx, &character.ResolveChoiceInput{
		CharacterID: in.CharacterID,
		ChoiceID:    in.ChoiceID,
		Selected:    in.Selected,
		GoldAmount:  in.GoldAmount,
		RollGold:    in.RollGold,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(choiceResponse{
		Choice:    newChoiceView(out.Choice),
		Character: out.Character,
	}, nil)
}

// UndoChoice clears a choice group and its side effects
func (h *Handler) UndoChoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in choiceRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.UndoChoice(ctx, &character.UndoChoiceInput{
		CharacterID: in.CharacterID,
		ChoiceID:    in.ChoiceID,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(choiceResponse{
		Choice:    newChoiceView(out.Choice),
		Character: out.Character,
		Removed:   &out.Removed,
	}, nil)
}

// PopulateFixedGrants materializes fixed grants, background items and gold
func (h *Handler) PopulateFixedGrants(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in characterRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.PopulateFixedGrants(ctx, &character.PopulateFixedGrantsInput{
		CharacterID: in.CharacterID,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(populateResponse{
		Character:  out.Character,
		Selections: out.Selections,
		Items:      out.Items,
		Gold:       out.Gold,
	}, nil)
}

// AddEquipment adds an item to the backpack
func (h *Handler) AddEquipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in addEquipmentRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.AddEquipment(ctx, &character.AddEquipmentInput{
		CharacterID: in.CharacterID,
		Item:        in.Item,
		CustomName:  in.CustomName,
		Quantity:    in.Quantity,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(equipmentResponse{Entry: out.Entry}, nil)
}

// UpdateEquipment moves an entry between slots or changes its attunement
func (h *Handler) UpdateEquipment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in updateEquipmentRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.UpdateEquipment(ctx, &character.UpdateEquipmentInput{
		CharacterID: in.CharacterID,
		EntryID:     in.EntryID,
		Location:    in.Location,
		IsAttuned:   in.IsAttuned,
	})
	if err != nil {
		return respond(nil, err)
	}
	evicted := out.Evicted
	if evicted == nil {
		evicted = []*dnd5e.EquipmentEntry{}
	}
	return respond(equipmentResponse{Entry: out.Entry, Evicted: evicted}, nil)
}

// GetStats returns the derived stat view
func (h *Handler) GetStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in characterRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.GetStats(ctx, &character.GetStatsInput{
		CharacterID: in.CharacterID,
	})
	if err != nil {
		return respond(nil, err)
	}
	return respond(statsResponse{Stats: out.Stats, Cached: out.Cached}, nil)
}
