package engine

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// maxRaceDepth is a subrace plus its parent
const maxRaceDepth = 2

// SourcedGrant is a grant record together with the entity that declares it
type SourcedGrant struct {
	Grant      *dnd5e.GrantRecord
	Source     core.Entity
	SourceName string
}

// SourcedTrait is a defensive trait with the race or feat that grants it
type SourcedTrait struct {
	Trait      dnd5e.DefensiveTrait
	Source     core.Entity
	SourceName string
}

type grantKey struct {
	domain dnd5e.Domain
	group  string
}

type traitKey struct {
	kind dnd5e.TraitKind
	typ  string
}

// MergeRaceGrantsInput is the race chain, nearest first
type MergeRaceGrantsInput struct {
	Chain []*dnd5e.Race
}

// MergeRaceGrantsOutput holds the effective grants and traits
type MergeRaceGrantsOutput struct {
	Grants []SourcedGrant
	Traits []SourcedTrait
}

func (e *engine) MergeRaceGrants(_ context.Context, input *MergeRaceGrantsInput) (*MergeRaceGrantsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	return MergeRaceChain(input.Chain)
}

// MergeRaceChain walks the chain nearest first. Fixed grants are unioned.
// A choice group or defensive trait already declared closer to the subrace
// shadows the parent's version of it.
func MergeRaceChain(chain []*dnd5e.Race) (*MergeRaceGrantsOutput, error) {
	if len(chain) > maxRaceDepth {
		return nil, errors.Internalf("race chain of %d exceeds depth %d", len(chain), maxRaceDepth)
	}

	out := &MergeRaceGrantsOutput{}
	seen := make(map[string]bool, len(chain))
	groups := make(map[grantKey]bool)
	traits := make(map[traitKey]bool)

	for _, race := range chain {
		if race == nil {
			continue
		}
		if seen[race.Slug] {
			return nil, errors.Internalf("race chain repeats %s", race.Slug)
		}
		seen[race.Slug] = true

		declared := make(map[grantKey]bool)
		for i := range race.Grants {
			g := &race.Grants[i]
			if g.IsChoice {
				key := grantKey{domain: g.Domain, group: g.ChoiceGroup}
				if groups[key] {
					continue
				}
				declared[key] = true
			}
			out.Grants = append(out.Grants, SourcedGrant{Grant: g, Source: race, SourceName: race.Name})
		}
		for key := range declared {
			groups[key] = true
		}

		declaredTraits := make(map[traitKey]bool)
		for _, t := range race.DefensiveTraits {
			key := traitKey{kind: t.Kind, typ: t.Type}
			if traits[key] {
				continue
			}
			declaredTraits[key] = true
			out.Traits = append(out.Traits, SourcedTrait{Trait: t, Source: race, SourceName: race.Name})
		}
		for key := range declaredTraits {
			traits[key] = true
		}
	}

	return out, nil
}
