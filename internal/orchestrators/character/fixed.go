package character

import (
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

// uniqueDomains are domains where a target is held once no matter how many
// sources grant it. Ability score bonuses stack instead.
var uniqueDomains = map[dnd5e.Domain]bool{
	dnd5e.DomainLanguage:      true,
	dnd5e.DomainProficiency:   true,
	dnd5e.DomainExpertise:     true,
	dnd5e.DomainFeat:          true,
	dnd5e.DomainFightingStyle: true,
}

// targetKey identifies what a selection grants, independent of its source
func targetKey(domain dnd5e.Domain, subtype, target string) string {
	return string(domain) + "/" + subtype + "/" + target
}

type fixedKey struct {
	source dnd5e.EntityRef
	grant  string
}

// planFixed returns selections for fixed grants not yet materialized. Grants
// are taken in processing order and a unique target already held, from any
// source, is skipped: the first writer wins.
func planFixed(set *grantSet, existing []dnd5e.ResolvedSelection) []dnd5e.ResolvedSelection {
	have := make(map[fixedKey]bool, len(existing))
	taken := make(map[string]bool, len(existing))
	for i := range existing {
		sel := &existing[i]
		if sel.IsFixed() {
			have[fixedKey{source: sel.SourceRef(), grant: sel.GrantRecordID}] = true
		}
		taken[targetKey(sel.Domain, sel.Subtype, sel.Target)] = true
	}

	var planned []dnd5e.ResolvedSelection
	for _, g := range set.grants {
		if g.grant.IsChoice || g.grant.Target == "" {
			continue
		}
		key := fixedKey{source: g.source, grant: g.grant.ID}
		if have[key] {
			continue
		}
		if uniqueDomains[g.grant.Domain] {
			tk := targetKey(g.grant.Domain, g.grant.Subtype, g.grant.Target)
			if taken[tk] {
				continue
			}
			taken[tk] = true
		}
		have[key] = true

		planned = append(planned, dnd5e.ResolvedSelection{
			Domain:        g.grant.Domain,
			Source:        g.source.Kind,
			SourceSlug:    g.source.Slug,
			GrantRecordID: g.grant.ID,
			Target:        g.grant.Target,
			Value:         g.grant.Value,
			Subtype:       g.grant.Subtype,
		})
	}
	return planned
}

// attachedSelections keeps the persisted selections whose grant is still
// active on the character
func attachedSelections(set *grantSet, selections []dnd5e.ResolvedSelection) []dnd5e.ResolvedSelection {
	kept := make([]dnd5e.ResolvedSelection, 0, len(selections))
	for i := range selections {
		if _, ok := set.owner(&selections[i]); ok {
			kept = append(kept, selections[i])
		}
	}
	return kept
}

// effectiveSelections is what the character holds right now: attached
// persisted selections plus fixed grants that were never materialized
func effectiveSelections(set *grantSet, char *dnd5e.Character) []dnd5e.ResolvedSelection {
	attached := attachedSelections(set, char.Selections)
	return append(attached, planFixed(set, attached)...)
}
