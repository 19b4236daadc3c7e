// Package stats caches derived character stats in Redis
package stats

//go:generate mockgen -destination=mock/mock_repository.go -package=statsmock github.com/KirkDiggler/rpg-character-api/internal/repositories/stats Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

// Repository is the derived stat cache, keyed by character id
type Repository interface {
	// Get returns errors.NotFound on a cache miss
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Invalidate drops the cached entry; a missing entry is not an error
	Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error)
}

// GetInput defines the input for reading cached stats
type GetInput struct {
	CharacterID string
}

// GetOutput defines the output for reading cached stats
type GetOutput struct {
	Stats *dnd5e.Stats
}

// PutInput defines the input for caching stats
type PutInput struct {
	Stats *dnd5e.Stats
}

// PutOutput defines the output for caching stats
type PutOutput struct{}

// InvalidateInput defines the input for invalidating cached stats
type InvalidateInput struct {
	CharacterID string
}

// InvalidateOutput defines the output for invalidating cached stats
type InvalidateOutput struct{}
