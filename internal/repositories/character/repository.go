// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-character-api/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

// MutateFunc changes a character in place. Returning an error aborts the
// write and nothing is persisted.
type MutateFunc func(character *dnd5e.Character) error

// Repository defines the interface for character persistence. The character
// aggregate owns its selections, equipment and wallet, so deleting it
// cascades to all of them.
type Repository interface {
	// Create stores a new character
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a character with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	// Returns errors.NotFound if the character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update applies Mutate to the latest stored character atomically.
	// Concurrent updates of one character serialize; the loser re-runs
	// Mutate against the winner's state.
	// Returns errors.NotFound if the character doesn't exist
	// Returns the Mutate error unchanged when Mutate rejects the change
	// Returns errors.Aborted if retries are exhausted
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character and everything it owns
	// Returns errors.NotFound if the character doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID retrieves all characters for a player
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *dnd5e.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *dnd5e.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *dnd5e.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	ID     string
	Mutate MutateFunc
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *dnd5e.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing characters by player
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing characters by player
type ListByPlayerIDOutput struct {
	Characters []*dnd5e.Character
}
