package character

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	catalogrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
)

// featHandler offers feats the character does not own. A chosen feat becomes
// a granting entity on the next traversal; replacing or undoing it detaches
// whatever it granted.
type featHandler struct {
	baseHandler
	catalog catalogrepo.Repository
}

func (h *featHandler) options(
	ctx context.Context,
	cc *choiceContext,
	g activeGrant,
) (dnd5e.OptionSet, map[string]bool, error) {
	feats, err := h.catalog.ListFeats(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list feats")
	}

	names := make(map[string]string, len(feats))
	var values []string
	fromCatalog := len(g.grant.Options) == 0
	if !fromCatalog {
		values = g.grant.Options
	}
	for _, f := range feats {
		names[f.Slug] = f.Name
		if fromCatalog {
			values = append(values, f.Slug)
		}
	}

	opts, allowed := explicitOptions(values, names, cc.heldElsewhere(g, dnd5e.DomainFeat, ""))
	return opts, allowed, nil
}

// fightingStyleHandler offers fighting styles not already taken
type fightingStyleHandler struct {
	baseHandler
	catalog catalogrepo.Repository
}

func (h *fightingStyleHandler) options(
	ctx context.Context,
	cc *choiceContext,
	g activeGrant,
) (dnd5e.OptionSet, map[string]bool, error) {
	styles, err := h.catalog.ListFightingStyles(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list fighting styles")
	}

	names := make(map[string]string, len(styles))
	var values []string
	fromCatalog := len(g.grant.Options) == 0
	if !fromCatalog {
		values = g.grant.Options
	}
	for _, st := range styles {
		names[st.Slug] = st.Name
		if fromCatalog {
			values = append(values, st.Slug)
		}
	}

	opts, allowed := explicitOptions(values, names, cc.heldElsewhere(g, dnd5e.DomainFightingStyle, ""))
	return opts, allowed, nil
}
