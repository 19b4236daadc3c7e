package character

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-character-api/internal/engine"
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

const equipmentModeGroup = "equipment-mode"

// activeGrant is a grant record reachable from the character, tagged with
// the granting entity that declares it
type activeGrant struct {
	grant      *dnd5e.GrantRecord
	source     dnd5e.EntityRef
	sourceName string
}

func (g activeGrant) choiceID() dnd5e.ChoiceID {
	return dnd5e.ChoiceID{
		Domain:       g.grant.Domain,
		Source:       g.source.Kind,
		SourceSlug:   g.source.Slug,
		LevelGranted: g.grant.LevelGranted,
		Group:        g.grant.ChoiceGroup,
	}
}

// owns reports whether sel was produced by this grant
func (g activeGrant) owns(sel *dnd5e.ResolvedSelection) bool {
	if sel.Domain != g.grant.Domain || sel.Source != g.source.Kind || sel.SourceSlug != g.source.Slug {
		return false
	}
	if g.grant.IsChoice {
		return sel.ChoiceGroup == g.grant.ChoiceGroup
	}
	return sel.IsFixed() && sel.GrantRecordID == g.grant.ID
}

// grantSet is everything the character's granting entities contribute, in
// processing order: race chain, background, classes (primary first) with
// their subclass and features, then feats as they are reached
type grantSet struct {
	grants    []activeGrant
	raceChain []*dnd5e.Race
	classes   []engine.ClassInput
	feats     []*dnd5e.Feat
}

func (s *grantSet) add(grant *dnd5e.GrantRecord, source dnd5e.EntityRef, name string, level int) {
	if grant.LevelGranted > level {
		return
	}
	s.grants = append(s.grants, activeGrant{grant: grant, source: source, sourceName: name})
}

// findChoice returns the choice grant an id points at
func (s *grantSet) findChoice(id dnd5e.ChoiceID) (activeGrant, bool) {
	for _, g := range s.grants {
		if g.grant.IsChoice && g.choiceID() == id {
			return g, true
		}
	}
	return activeGrant{}, false
}

// owner returns the active grant a persisted selection belongs to
func (s *grantSet) owner(sel *dnd5e.ResolvedSelection) (activeGrant, bool) {
	for _, g := range s.grants {
		if g.owns(sel) {
			return g, true
		}
	}
	return activeGrant{}, false
}

// collectGrants walks every granting entity attached to the character. Each
// grant is gated on the level relevant to its source: the class level for
// class, subclass and feature grants, the total level otherwise.
func (o *Orchestrator) collectGrants(ctx context.Context, char *dnd5e.Character) (*grantSet, error) {
	set := &grantSet{}
	characterLevel := char.TotalLevel()
	if characterLevel < 1 {
		characterLevel = 1
	}

	if char.Race != "" {
		chain, err := o.catalog.GetRaceChain(ctx, char.Race)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load race %s", char.Race)
		}
		merged, err := o.engine.MergeRaceGrants(ctx, &engine.MergeRaceGrantsInput{Chain: chain})
		if err != nil {
			return nil, err
		}
		set.raceChain = chain
		for _, g := range merged.Grants {
			set.add(g.Grant, dnd5e.RefOf(g.Source), g.SourceName, characterLevel)
		}
	}

	if char.Background != "" {
		bg, err := o.catalog.GetBackground(ctx, char.Background)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load background %s", char.Background)
		}
		ref := dnd5e.EntityRef{Kind: dnd5e.KindBackground, Slug: bg.Slug}
		for i := range bg.Grants {
			set.add(&bg.Grants[i], ref, bg.Name, characterLevel)
		}
	}

	if err := o.collectClasses(ctx, char, set); err != nil {
		return nil, err
	}

	if err := o.collectFeats(ctx, char, set, characterLevel); err != nil {
		return nil, err
	}

	return set, nil
}

func (o *Orchestrator) collectClasses(ctx context.Context, char *dnd5e.Character, set *grantSet) error {
	levels := make([]dnd5e.ClassLevel, len(char.Classes))
	copy(levels, char.Classes)
	primary := char.PrimaryClass()
	sort.SliceStable(levels, func(i, j int) bool {
		return primary != nil && levels[i].Class == primary.Class && levels[j].Class != primary.Class
	})

	for idx, cl := range levels {
		isPrimary := idx == 0
		class, err := o.catalog.GetClass(ctx, cl.Class)
		if err != nil {
			return errors.Wrapf(err, "failed to load class %s", cl.Class)
		}
		input := engine.ClassInput{Level: cl, Class: class}
		input.Level.IsPrimary = isPrimary

		ref := dnd5e.EntityRef{Kind: dnd5e.KindClass, Slug: class.Slug}
		hasModeGrant := false
		for i := range class.Grants {
			g := &class.Grants[i]
			// Multiclassing into a class does not grant its saving throws
			if !isPrimary && !g.IsChoice && g.Subtype == dnd5e.ProficiencySavingThrow {
				continue
			}
			if g.Domain == dnd5e.DomainEquipmentMode {
				hasModeGrant = true
			}
			set.add(g, ref, class.Name, cl.Level)
		}
		if isPrimary && !hasModeGrant {
			if g := equipmentModeGrant(class, char.TotalLevel(), hasModeSelection(char, class.Slug)); g != nil {
				set.add(g, ref, class.Name, cl.Level)
			}
		}

		featureOwners := []string{class.Slug}
		if cl.Subclass != "" {
			sub, err := o.catalog.GetClass(ctx, cl.Subclass)
			if err != nil {
				return errors.Wrapf(err, "failed to load subclass %s", cl.Subclass)
			}
			input.Subclass = sub
			subRef := dnd5e.EntityRef{Kind: dnd5e.KindClass, Slug: sub.Slug}
			for i := range sub.Grants {
				set.add(&sub.Grants[i], subRef, sub.Name, cl.Level)
			}
			featureOwners = append(featureOwners, sub.Slug)
		}

		for _, owner := range featureOwners {
			features, err := o.catalog.ListClassFeatures(ctx, owner, cl.Level)
			if err != nil {
				return errors.Wrapf(err, "failed to list features for %s", owner)
			}
			for _, feature := range features {
				featureRef := dnd5e.EntityRef{Kind: dnd5e.KindClassFeature, Slug: feature.Slug}
				for i := range feature.Grants {
					set.add(&feature.Grants[i], featureRef, feature.Name, cl.Level)
				}
			}
		}

		set.classes = append(set.classes, input)
	}
	return nil
}

// equipmentModeGrant is the equipment-or-gold choice a level 1 character
// gets from a primary class that has both starting wealth and equipment
// choices. Once resolved it stays attached past level 1 so leveling up does
// not take the starting kit away.
func equipmentModeGrant(class *dnd5e.Class, totalLevel int, resolved bool) *dnd5e.GrantRecord {
	if class.StartingWealth == nil || class.EquipmentChoices < 1 {
		return nil
	}
	if totalLevel != 1 && !resolved {
		return nil
	}
	return &dnd5e.GrantRecord{
		ID:           class.Slug + "-" + string(dnd5e.DomainEquipmentMode),
		Domain:       dnd5e.DomainEquipmentMode,
		IsChoice:     true,
		ChoiceGroup:  equipmentModeGroup,
		Quantity:     1,
		Options:      []string{dnd5e.EquipmentModeEquipment, dnd5e.EquipmentModeGold},
		LevelGranted: 1,
	}
}

func hasModeSelection(char *dnd5e.Character, class string) bool {
	for i := range char.Selections {
		sel := &char.Selections[i]
		if sel.Domain == dnd5e.DomainEquipmentMode && sel.Source == dnd5e.KindClass && sel.SourceSlug == class {
			return true
		}
	}
	return false
}

// collectFeats attaches feats reached through fixed feat grants and feat
// selections. Feats can grant feats, so the scan runs over the growing grant
// list; visited guards against a feat reaching itself.
func (o *Orchestrator) collectFeats(ctx context.Context, char *dnd5e.Character, set *grantSet, level int) error {
	visited := make(map[string]bool)

	for i := 0; i < len(set.grants); i++ {
		g := set.grants[i]
		if g.grant.Domain != dnd5e.DomainFeat {
			continue
		}

		var slugs []string
		if g.grant.IsChoice {
			for j := range char.Selections {
				if g.owns(&char.Selections[j]) {
					slugs = append(slugs, char.Selections[j].Target)
				}
			}
		} else {
			slugs = []string{g.grant.Target}
		}

		for _, slug := range slugs {
			if visited[slug] {
				continue
			}
			visited[slug] = true

			feat, err := o.catalog.GetFeat(ctx, slug)
			if err != nil {
				if errors.IsNotFound(err) {
					slog.WarnContext(ctx, "character references unknown feat",
						"character_id", char.ID,
						"feat", slug)
					continue
				}
				return errors.Wrapf(err, "failed to load feat %s", slug)
			}

			set.feats = append(set.feats, feat)
			ref := dnd5e.EntityRef{Kind: dnd5e.KindFeat, Slug: feat.Slug}
			for k := range feat.Grants {
				set.add(&feat.Grants[k], ref, feat.Name, level)
			}
		}
	}
	return nil
}
