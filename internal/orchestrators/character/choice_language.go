package character

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	catalogrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
)

// languageHandler offers catalog languages the character does not know yet
type languageHandler struct {
	baseHandler
	catalog catalogrepo.Repository
}

func (h *languageHandler) options(
	ctx context.Context,
	cc *choiceContext,
	g activeGrant,
) (dnd5e.OptionSet, map[string]bool, error) {
	languages, err := h.catalog.ListLanguages(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to list languages")
	}

	names := make(map[string]string, len(languages))
	var values []string
	fromCatalog := len(g.grant.Options) == 0
	if !fromCatalog {
		values = g.grant.Options
	}
	for _, l := range languages {
		names[l.Slug] = l.Name
		if fromCatalog {
			values = append(values, l.Slug)
		}
	}

	opts, allowed := explicitOptions(values, names, cc.heldElsewhere(g, dnd5e.DomainLanguage, ""))
	return opts, allowed, nil
}

func (h *languageHandler) subtype(*choiceContext, activeGrant, string) string {
	return ""
}
