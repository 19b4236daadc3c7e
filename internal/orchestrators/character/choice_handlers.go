package character

import (
	"context"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

// choiceContext is the character state a handler reads while discovering or
// resolving one choice
type choiceContext struct {
	char      *dnd5e.Character
	set       *grantSet
	effective []dnd5e.ResolvedSelection
}

func (o *Orchestrator) newChoiceContext(ctx context.Context, char *dnd5e.Character) (*choiceContext, error) {
	set, err := o.collectGrants(ctx, char)
	if err != nil {
		return nil, err
	}
	return &choiceContext{
		char:      char,
		set:       set,
		effective: effectiveSelections(set, char),
	}, nil
}

// heldElsewhere lists targets of a domain and subtype the character already
// holds through any source other than g's own group
func (cc *choiceContext) heldElsewhere(g activeGrant, domain dnd5e.Domain, subtype string) map[string]bool {
	held := make(map[string]bool)
	for i := range cc.effective {
		sel := &cc.effective[i]
		if sel.Domain != domain || sel.Subtype != subtype {
			continue
		}
		if g.owns(sel) {
			continue
		}
		held[sel.Target] = true
	}
	return held
}

// selectedBy returns the targets g's group currently holds, in stored order
func (cc *choiceContext) selectedBy(g activeGrant) []string {
	selected := []string{}
	for i := range cc.char.Selections {
		if g.owns(&cc.char.Selections[i]) {
			selected = append(selected, cc.char.Selections[i].Target)
		}
	}
	return selected
}

// resolveExtras carries domain specific request fields
type resolveExtras struct {
	goldAmount *int
	rollGold   bool
}

// domainHandler implements one choice domain. options feeds both discovery
// and validation; apply and revert own the domain's side effects beyond the
// selection records.
type domainHandler interface {
	// options returns the descriptor option set and the allowed targets.
	// Lookup variants return the lookup key with the resolved targets.
	options(ctx context.Context, cc *choiceContext, g activeGrant) (dnd5e.OptionSet, map[string]bool, error)

	metadata(g activeGrant) map[string]interface{}

	// subtype is stored on each selection record
	subtype(cc *choiceContext, g activeGrant, target string) string

	apply(ctx context.Context, cc *choiceContext, g activeGrant, selected []string, extras resolveExtras) error

	revert(ctx context.Context, cc *choiceContext, g activeGrant)
}

// baseHandler supplies the no-op parts most domains share
type baseHandler struct{}

func (baseHandler) metadata(activeGrant) map[string]interface{} {
	return nil
}

func (baseHandler) subtype(_ *choiceContext, g activeGrant, _ string) string {
	return g.grant.Subtype
}

func (baseHandler) apply(context.Context, *choiceContext, activeGrant, []string, resolveExtras) error {
	return nil
}

func (baseHandler) revert(context.Context, *choiceContext, activeGrant) {}

func newDomainHandlers(o *Orchestrator) map[dnd5e.Domain]domainHandler {
	return map[dnd5e.Domain]domainHandler{
		dnd5e.DomainAbilityScore:  &abilityScoreHandler{},
		dnd5e.DomainLanguage:      &languageHandler{catalog: o.catalog},
		dnd5e.DomainProficiency:   &proficiencyHandler{catalog: o.catalog},
		dnd5e.DomainExpertise:     &expertiseHandler{catalog: o.catalog},
		dnd5e.DomainEquipmentMode: &equipmentModeHandler{o: o},
		dnd5e.DomainFeat:          &featHandler{catalog: o.catalog},
		dnd5e.DomainFightingStyle: &fightingStyleHandler{catalog: o.catalog},
	}
}

// explicitOptions builds an option set from values, dropping excluded ones
// and labeling with names where known
func explicitOptions(values []string, names map[string]string, exclude map[string]bool) (dnd5e.ExplicitOptions, map[string]bool) {
	opts := dnd5e.ExplicitOptions{Options: make([]dnd5e.Option, 0, len(values))}
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		if exclude[v] || allowed[v] {
			continue
		}
		label := names[v]
		if label == "" {
			label = v
		}
		opts.Options = append(opts.Options, dnd5e.Option{Value: v, Label: label})
		allowed[v] = true
	}
	return opts, allowed
}
