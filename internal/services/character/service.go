// Package character defines the interface for character operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-character-api/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

// Service defines the interface for character operations
type Service interface {
	// Character lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Granting entity updates. Selections whose source is no longer
	// attached are dropped together with their side effects.
	UpdateRace(ctx context.Context, input *UpdateRaceInput) (*UpdateRaceOutput, error)
	UpdateBackground(ctx context.Context, input *UpdateBackgroundInput) (*UpdateBackgroundOutput, error)
	UpdateClasses(ctx context.Context, input *UpdateClassesInput) (*UpdateClassesOutput, error)
	UpdateAbilityScores(ctx context.Context, input *UpdateAbilityScoresInput) (*UpdateAbilityScoresOutput, error)

	// Choices
	ListPendingChoices(ctx context.Context, input *ListPendingChoicesInput) (*ListPendingChoicesOutput, error)
	GetPendingChoice(ctx context.Context, input *GetPendingChoiceInput) (*GetPendingChoiceOutput, error)
	ResolveChoice(ctx context.Context, input *ResolveChoiceInput) (*ResolveChoiceOutput, error)
	UndoChoice(ctx context.Context, input *UndoChoiceInput) (*UndoChoiceOutput, error)
	PopulateFixedGrants(ctx context.Context, input *PopulateFixedGrantsInput) (*PopulateFixedGrantsOutput, error)

	// Equipment
	AddEquipment(ctx context.Context, input *AddEquipmentInput) (*AddEquipmentOutput, error)
	UpdateEquipment(ctx context.Context, input *UpdateEquipmentInput) (*UpdateEquipmentOutput, error)

	// Derived stats
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)
}

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	PlayerID      string
	Name          string
	Race          string
	Background    string
	Classes       []dnd5e.ClassLevel
	AbilityScores map[dnd5e.Ability]int
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *dnd5e.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Character *dnd5e.Character
}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*dnd5e.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	Message string
}

// UpdateRaceInput defines the request for changing race or subrace
type UpdateRaceInput struct {
	CharacterID string
	Race        string
}

// UpdateRaceOutput defines the response for changing race
type UpdateRaceOutput struct {
	Character *dnd5e.Character
	// Dropped counts selections removed because their source detached
	Dropped int
}

// UpdateBackgroundInput defines the request for changing background
type UpdateBackgroundInput struct {
	CharacterID string
	Background  string
}

// UpdateBackgroundOutput defines the response for changing background
type UpdateBackgroundOutput struct {
	Character *dnd5e.Character
	Dropped   int
}

// UpdateClassesInput replaces the character's class levels
type UpdateClassesInput struct {
	CharacterID string
	Classes     []dnd5e.ClassLevel
}

// UpdateClassesOutput defines the response for changing classes
type UpdateClassesOutput struct {
	Character *dnd5e.Character
	Dropped   int
}

// UpdateAbilityScoresInput sets raw ability scores. Abilities not present
// keep their current value.
type UpdateAbilityScoresInput struct {
	CharacterID   string
	AbilityScores map[dnd5e.Ability]int
}

// UpdateAbilityScoresOutput defines the response for updating ability scores
type UpdateAbilityScoresOutput struct {
	Character *dnd5e.Character
}

// ListPendingChoicesInput defines the request for choice discovery
type ListPendingChoicesInput struct {
	CharacterID string
	// Domain filters to one domain when set
	Domain dnd5e.Domain
	// IncludeResolved also returns groups with nothing remaining
	IncludeResolved bool
}

// ListPendingChoicesOutput defines the response for choice discovery
type ListPendingChoicesOutput struct {
	Choices []*dnd5e.PendingChoice
}

// GetPendingChoiceInput defines the request for one choice group
type GetPendingChoiceInput struct {
	CharacterID string
	ChoiceID    string
}

// GetPendingChoiceOutput returns the descriptor whether or not it is resolved
type GetPendingChoiceOutput struct {
	Choice *dnd5e.PendingChoice
}

// ResolveChoiceInput defines the request for resolving a choice group
type ResolveChoiceInput struct {
	CharacterID string
	ChoiceID    string
	Selected    []string

	// GoldAmount sets the gold taken instead of equipment
	GoldAmount *int
	// RollGold rolls the class starting wealth instead of taking the average
	RollGold bool
}

// ResolveChoiceOutput defines the response for resolving a choice group
type ResolveChoiceOutput struct {
	Choice    *dnd5e.PendingChoice
	Character *dnd5e.Character
}

// UndoChoiceInput defines the request for undoing a choice group
type UndoChoiceInput struct {
	CharacterID string
	ChoiceID    string
}

// UndoChoiceOutput defines the response for undoing a choice group
type UndoChoiceOutput struct {
	Choice    *dnd5e.PendingChoice
	Character *dnd5e.Character
	// Removed is zero when there was nothing to undo
	Removed int
}

// PopulateFixedGrantsInput defines the request for materializing fixed grants
type PopulateFixedGrantsInput struct {
	CharacterID string
}

// PopulateFixedGrantsOutput reports what was created
type PopulateFixedGrantsOutput struct {
	Character  *dnd5e.Character
	Selections int
	Items      int
	Gold       int
}

// AddEquipmentInput adds an inventory entry. Exactly one of Item and
// CustomName is set.
type AddEquipmentInput struct {
	CharacterID string
	Item        string
	CustomName  string
	Quantity    int
}

// AddEquipmentOutput defines the response for adding equipment
type AddEquipmentOutput struct {
	Entry *dnd5e.EquipmentEntry
}

// UpdateEquipmentInput moves an entry and/or changes its attunement
type UpdateEquipmentInput struct {
	CharacterID string
	EntryID     string
	Location    *dnd5e.Location
	IsAttuned   *bool
}

// UpdateEquipmentOutput returns the entry and any entries evicted to the
// backpack
type UpdateEquipmentOutput struct {
	Entry   *dnd5e.EquipmentEntry
	Evicted []*dnd5e.EquipmentEntry
}

// GetStatsInput defines the request for derived stats
type GetStatsInput struct {
	CharacterID string
}

// GetStatsOutput returns the stat view
type GetStatsOutput struct {
	Stats  *dnd5e.Stats
	Cached bool
}
