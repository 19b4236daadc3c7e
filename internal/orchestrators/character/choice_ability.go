package character

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

var abilityNames = map[string]string{
	string(dnd5e.AbilityStrength):     "Strength",
	string(dnd5e.AbilityDexterity):    "Dexterity",
	string(dnd5e.AbilityConstitution): "Constitution",
	string(dnd5e.AbilityIntelligence): "Intelligence",
	string(dnd5e.AbilityWisdom):       "Wisdom",
	string(dnd5e.AbilityCharisma):     "Charisma",
}

// abilityScoreHandler offers ability bonuses. Bonuses stack across sources,
// so nothing already held is excluded.
type abilityScoreHandler struct {
	baseHandler
}

func (h *abilityScoreHandler) options(
	_ context.Context,
	_ *choiceContext,
	g activeGrant,
) (dnd5e.OptionSet, map[string]bool, error) {
	values := g.grant.Options
	if len(values) == 0 {
		values = make([]string, 0, len(dnd5e.Abilities))
		for _, a := range dnd5e.Abilities {
			values = append(values, string(a))
		}
	}
	opts, allowed := explicitOptions(values, abilityNames, nil)
	return opts, allowed, nil
}

func (h *abilityScoreHandler) metadata(g activeGrant) map[string]interface{} {
	return map[string]interface{}{
		"bonus":      g.grant.Value,
		"constraint": string(g.grant.Constraint),
		"distinct":   g.grant.RequiresDistinct(),
	}
}
