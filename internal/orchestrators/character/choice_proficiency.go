package character

import (
	"context"
	"net/url"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	catalogrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
)

// thievesTools is the one tool expertise can be taken in
const thievesTools = "thieves-tools"

// proficiencyHandler covers skill, tool, weapon, armor and instrument
// choices. A choice with no option list and a non-skill subtype is presented
// as a catalog lookup rather than an expanded list.
type proficiencyHandler struct {
	baseHandler
	catalog catalogrepo.Repository
}

func (h *proficiencyHandler) options(
	ctx context.Context,
	cc *choiceContext,
	g activeGrant,
) (dnd5e.OptionSet, map[string]bool, error) {
	subtype := g.grant.Subtype
	held := cc.heldElsewhere(g, dnd5e.DomainProficiency, subtype)

	if len(g.grant.Options) > 0 {
		names, err := h.names(ctx, subtype)
		if err != nil {
			return nil, nil, err
		}
		opts, allowed := explicitOptions(g.grant.Options, names, held)
		return opts, allowed, nil
	}

	profs, err := h.catalog.ListProficiencies(ctx, subtype, g.grant.Subcategory)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list proficiencies")
	}

	if subtype == dnd5e.ProficiencySkill {
		values := make([]string, 0, len(profs))
		names := make(map[string]string, len(profs))
		for _, p := range profs {
			values = append(values, p.Slug)
			names[p.Slug] = p.Name
		}
		opts, allowed := explicitOptions(values, names, held)
		return opts, allowed, nil
	}

	allowed := make(map[string]bool, len(profs))
	for _, p := range profs {
		if !held[p.Slug] {
			allowed[p.Slug] = true
		}
	}
	return dnd5e.LookupOptions{
		ProficiencyType: subtype,
		Subcategory:     g.grant.Subcategory,
		Endpoint:        lookupEndpoint(subtype, g.grant.Subcategory),
	}, allowed, nil
}

func (h *proficiencyHandler) names(ctx context.Context, subtype string) (map[string]string, error) {
	profs, err := h.catalog.ListProficiencies(ctx, subtype, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list proficiencies")
	}
	names := make(map[string]string, len(profs))
	for _, p := range profs {
		names[p.Slug] = p.Name
	}
	return names, nil
}

func (h *proficiencyHandler) metadata(g activeGrant) map[string]interface{} {
	md := map[string]interface{}{
		"proficiency_type": g.grant.Subtype,
	}
	if g.grant.Subcategory != "" {
		md["subcategory"] = g.grant.Subcategory
	}
	return md
}

func lookupEndpoint(subtype, subcategory string) string {
	q := url.Values{}
	if subtype != "" {
		q.Set("type", subtype)
	}
	if subcategory != "" {
		q.Set("subcategory", subcategory)
	}
	return "proficiencies?" + q.Encode()
}

// expertiseHandler doubles proficiency in skills (or thieves' tools) the
// character is already proficient in
type expertiseHandler struct {
	baseHandler
	catalog catalogrepo.Repository
}

func (h *expertiseHandler) options(
	ctx context.Context,
	cc *choiceContext,
	g activeGrant,
) (dnd5e.OptionSet, map[string]bool, error) {
	proficient := make(map[string]bool)
	var candidates []string
	for _, sel := range cc.effective {
		if sel.Domain != dnd5e.DomainProficiency {
			continue
		}
		isSkill := sel.Subtype == dnd5e.ProficiencySkill
		isTools := sel.Subtype == dnd5e.ProficiencyTool && sel.Target == thievesTools
		if (isSkill || isTools) && !proficient[sel.Target] {
			proficient[sel.Target] = true
			candidates = append(candidates, sel.Target)
		}
	}

	if len(g.grant.Options) > 0 {
		candidates = candidates[:0]
		for _, v := range g.grant.Options {
			if proficient[v] {
				candidates = append(candidates, v)
			}
		}
	}

	held := cc.heldElsewhere(g, dnd5e.DomainExpertise, dnd5e.ProficiencySkill)
	for target := range cc.heldElsewhere(g, dnd5e.DomainExpertise, dnd5e.ProficiencyTool) {
		held[target] = true
	}

	skills, err := h.catalog.ListProficiencies(ctx, dnd5e.ProficiencySkill, "")
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list skills")
	}
	names := map[string]string{thievesTools: "Thieves' Tools"}
	for _, p := range skills {
		names[p.Slug] = p.Name
	}

	opts, allowed := explicitOptions(candidates, names, held)
	return opts, allowed, nil
}

func (h *expertiseHandler) subtype(_ *choiceContext, _ activeGrant, target string) string {
	if _, ok := dnd5e.SkillAbilities[target]; ok {
		return dnd5e.ProficiencySkill
	}
	return dnd5e.ProficiencyTool
}
