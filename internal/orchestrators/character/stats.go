package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-character-api/internal/engine"
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	statsrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/stats"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

// GetStats returns the derived stat view, from cache when one is present.
// Cache failures fall through to a fresh computation.
func (o *Orchestrator) GetStats(
	ctx context.Context,
	input *character.GetStatsInput,
) (*character.GetStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := startSpan(ctx, "GetStats", input.CharacterID)
	defer span.End()

	out, err := o.getStats(ctx, input)
	return out, recordError(span, err)
}

func (o *Orchestrator) getStats(
	ctx context.Context,
	input *character.GetStatsInput,
) (*character.GetStatsOutput, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	cached, err := o.statsCache.Get(ctx, statsrepo.GetInput{CharacterID: input.CharacterID})
	switch {
	case err == nil:
		return &character.GetStatsOutput{Stats: cached.Stats, Cached: true}, nil
	case !errors.IsNotFound(err):
		slog.WarnContext(ctx, "stats cache read failed",
			"character_id", input.CharacterID,
			"error", err.Error())
	}

	char, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	stats, err := o.computeStats(ctx, char)
	if err != nil {
		return nil, err
	}

	if _, err := o.statsCache.Put(ctx, statsrepo.PutInput{Stats: stats}); err != nil {
		slog.WarnContext(ctx, "failed to cache stats",
			"character_id", input.CharacterID,
			"error", err.Error())
		return &character.GetStatsOutput{Stats: stats}, nil
	}

	// A write that landed between the read and the put would leave a stale
	// entry behind
	latest, err := o.getCharacter(ctx, input.CharacterID)
	if err != nil || latest.Version != char.Version {
		o.invalidateStats(ctx, input.CharacterID)
	}

	return &character.GetStatsOutput{Stats: stats}, nil
}

// computeStats runs the aggregator over what the character holds right now,
// fixed grants included whether or not they were populated
func (o *Orchestrator) computeStats(ctx context.Context, char *dnd5e.Character) (*dnd5e.Stats, error) {
	set, err := o.collectGrants(ctx, char)
	if err != nil {
		return nil, err
	}

	view := *char
	view.Selections = effectiveSelections(set, char)

	items, err := o.loadItems(ctx, char.Equipment)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.CalculateCharacterStats(ctx, &engine.CalculateCharacterStatsInput{
		Character: &view,
		RaceChain: set.raceChain,
		Classes:   set.classes,
		Feats:     set.feats,
		Items:     items,
	})
	if err != nil {
		return nil, err
	}
	return out.Stats, nil
}
