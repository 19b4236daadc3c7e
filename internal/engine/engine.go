package engine

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

type engine struct {
	roller dice.Roller
}

// Config configures the rules engine
type Config struct {
	// Roller rolls starting wealth; defaults to the crypto-backed roller
	Roller dice.Roller
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	return nil
}

// New creates the rules engine
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}

	return &engine{roller: roller}, nil
}

func (e *engine) CalculateAbilityModifier(score int) int {
	return AbilityModifier(score)
}

func (e *engine) CalculateProficiencyBonus(totalLevel int) int {
	return ProficiencyBonus(totalLevel)
}

// RollStartingWealthInput is a class starting wealth formula
type RollStartingWealthInput struct {
	Wealth *dnd5e.StartingWealth
}

// RollStartingWealthOutput is the rolled gold and the individual dice
type RollStartingWealthOutput struct {
	Amount int
	Rolls  []int
}

func (e *engine) RollStartingWealth(
	_ context.Context,
	input *RollStartingWealthInput,
) (*RollStartingWealthOutput, error) {
	if input == nil || input.Wealth == nil {
		return nil, errors.InvalidArgument("starting wealth is required")
	}
	w := input.Wealth
	if w.Dice < 1 || w.Sides < 1 {
		return nil, errors.InvalidArgumentf("invalid starting wealth formula %s", w.Formula())
	}

	rolls, err := e.roller.RollN(w.Dice, w.Sides)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", w.Formula())
	}

	sum := 0
	for _, r := range rolls {
		sum += r
	}
	multiplier := w.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	return &RollStartingWealthOutput{Amount: sum * multiplier, Rolls: rolls}, nil
}
