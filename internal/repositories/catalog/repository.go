// Package catalog provides the read-only rule catalog: granting entities,
// their grant records, and the lookup tables choices draw options from.
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

// Repository is the catalog query surface. Every Get returns
// errors.NotFound for an unknown slug.
type Repository interface {
	GetRace(ctx context.Context, slug string) (*dnd5e.Race, error)

	// GetRaceChain returns the race followed by its parents, nearest first
	GetRaceChain(ctx context.Context, slug string) ([]*dnd5e.Race, error)

	GetClass(ctx context.Context, slug string) (*dnd5e.Class, error)
	GetBackground(ctx context.Context, slug string) (*dnd5e.Background, error)
	GetFeat(ctx context.Context, slug string) (*dnd5e.Feat, error)
	GetItem(ctx context.Context, slug string) (*dnd5e.Item, error)

	// ListClassFeatures returns features of a class or subclass unlocked at
	// or below level, ordered by level then slug
	ListClassFeatures(ctx context.Context, class string, level int) ([]*dnd5e.ClassFeature, error)

	ListLanguages(ctx context.Context) ([]*dnd5e.Language, error)
	ListFeats(ctx context.Context) ([]*dnd5e.Feat, error)
	ListFightingStyles(ctx context.Context) ([]*dnd5e.FightingStyle, error)

	// ListProficiencies filters catalog proficiencies by type and, when set,
	// subcategory. Skills are synthesized from the built-in skill table.
	ListProficiencies(ctx context.Context, profType, subcategory string) ([]*dnd5e.Proficiency, error)
}

// Catalog is the document a catalog file decodes into
type Catalog struct {
	Races          []*dnd5e.Race          `yaml:"races"`
	Classes        []*dnd5e.Class         `yaml:"classes"`
	ClassFeatures  []*dnd5e.ClassFeature  `yaml:"class_features"`
	Backgrounds    []*dnd5e.Background    `yaml:"backgrounds"`
	Feats          []*dnd5e.Feat          `yaml:"feats"`
	FightingStyles []*dnd5e.FightingStyle `yaml:"fighting_styles"`
	Languages      []*dnd5e.Language      `yaml:"languages"`
	Proficiencies  []*dnd5e.Proficiency   `yaml:"proficiencies"`
	Items          []*dnd5e.Item          `yaml:"items"`
}
