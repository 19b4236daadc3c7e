// Package engine holds the D&D 5e rules used by character building: ability
// math, slot tables, race inheritance, choice validation, the equipment slot
// allocator and the derived stat aggregator. It has no storage dependencies.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-character-api/internal/engine Engine

import (
	"context"
)

// Engine provides game mechanics and rules calculations
type Engine interface {
	// ValidateChoiceSelection checks a selection against one choice group.
	// Returns an Unprocessable error whose reason names the broken rule.
	ValidateChoiceSelection(ctx context.Context, input *ValidateChoiceSelectionInput) (*ValidateChoiceSelectionOutput, error)

	// MergeRaceGrants flattens a race chain, letting the subrace override its
	// parent per (domain, choice group)
	MergeRaceGrants(ctx context.Context, input *MergeRaceGrantsInput) (*MergeRaceGrantsOutput, error)

	// AssignEquipmentSlot moves an inventory entry, evicting occupants
	AssignEquipmentSlot(ctx context.Context, input *AssignEquipmentSlotInput) (*AssignEquipmentSlotOutput, error)

	// CalculateCharacterStats computes the derived stat view
	CalculateCharacterStats(
		ctx context.Context,
		input *CalculateCharacterStatsInput,
	) (*CalculateCharacterStatsOutput, error)

	// RollStartingWealth rolls a class starting wealth formula
	RollStartingWealth(ctx context.Context, input *RollStartingWealthInput) (*RollStartingWealthOutput, error)

	CalculateAbilityModifier(score int) int
	CalculateProficiencyBonus(totalLevel int) int
}
