package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// maxParentDepth bounds race and class parent chains (entity plus one parent)
const maxParentDepth = 2

type memoryRepository struct {
	races          map[string]*dnd5e.Race
	classes        map[string]*dnd5e.Class
	backgrounds    map[string]*dnd5e.Background
	feats          map[string]*dnd5e.Feat
	items          map[string]*dnd5e.Item
	features       []*dnd5e.ClassFeature
	featList       []*dnd5e.Feat
	fightingStyles []*dnd5e.FightingStyle
	languages      []*dnd5e.Language
	proficiencies  []*dnd5e.Proficiency
}

// MemoryConfig contains configuration for the in-memory catalog
type MemoryConfig struct {
	Catalog *Catalog
}

// Validate validates the MemoryConfig
func (cfg *MemoryConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Catalog == nil {
		return errors.InvalidArgument("catalog cannot be nil")
	}
	return nil
}

// NewMemory indexes a decoded catalog. Grant records are normalized and the
// parent chains checked, so a bad catalog fails here rather than mid-request.
func NewMemory(cfg *MemoryConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Catalog
	r := &memoryRepository{
		races:          make(map[string]*dnd5e.Race, len(c.Races)),
		classes:        make(map[string]*dnd5e.Class, len(c.Classes)),
		backgrounds:    make(map[string]*dnd5e.Background, len(c.Backgrounds)),
		feats:          make(map[string]*dnd5e.Feat, len(c.Feats)),
		items:          make(map[string]*dnd5e.Item, len(c.Items)),
		featList:       c.Feats,
		fightingStyles: c.FightingStyles,
		languages:      c.Languages,
		proficiencies:  c.Proficiencies,
	}

	for _, race := range c.Races {
		if err := checkSlug("race", race.Slug); err != nil {
			return nil, err
		}
		if err := normalizeGrants(race.Slug, race.Grants, 1); err != nil {
			return nil, err
		}
		r.races[race.Slug] = race
	}
	for _, class := range c.Classes {
		if err := checkSlug("class", class.Slug); err != nil {
			return nil, err
		}
		if err := normalizeGrants(class.Slug, class.Grants, 1); err != nil {
			return nil, err
		}
		r.classes[class.Slug] = class
	}
	for _, bg := range c.Backgrounds {
		if err := checkSlug("background", bg.Slug); err != nil {
			return nil, err
		}
		if err := normalizeGrants(bg.Slug, bg.Grants, 1); err != nil {
			return nil, err
		}
		r.backgrounds[bg.Slug] = bg
	}
	for _, feat := range c.Feats {
		if err := checkSlug("feat", feat.Slug); err != nil {
			return nil, err
		}
		if err := normalizeGrants(feat.Slug, feat.Grants, 1); err != nil {
			return nil, err
		}
		r.feats[feat.Slug] = feat
	}
	for _, feature := range c.ClassFeatures {
		if err := checkSlug("class feature", feature.Slug); err != nil {
			return nil, err
		}
		if _, ok := r.classes[feature.Class]; !ok {
			return nil, errors.InvalidArgumentf("class feature %s references unknown class %s", feature.Slug, feature.Class)
		}
		if err := normalizeGrants(feature.Slug, feature.Grants, feature.Level); err != nil {
			return nil, err
		}
		r.features = append(r.features, feature)
	}
	for _, item := range c.Items {
		r.items[item.Slug] = item
	}

	sort.SliceStable(r.features, func(i, j int) bool {
		if r.features[i].Level != r.features[j].Level {
			return r.features[i].Level < r.features[j].Level
		}
		return r.features[i].Slug < r.features[j].Slug
	})

	for slug := range r.races {
		if _, err := r.raceChain(slug); err != nil {
			return nil, err
		}
	}
	for slug, class := range r.classes {
		if class.Parent == "" {
			continue
		}
		parent, ok := r.classes[class.Parent]
		if !ok {
			return nil, errors.InvalidArgumentf("class %s references unknown parent %s", slug, class.Parent)
		}
		if parent.Parent != "" {
			return nil, errors.InvalidArgumentf("class %s: subclass parent %s is itself a subclass", slug, parent.Slug)
		}
	}

	slog.Info("catalog loaded",
		"races", len(r.races),
		"classes", len(r.classes),
		"backgrounds", len(r.backgrounds),
		"feats", len(r.feats),
		"class_features", len(r.features),
		"items", len(r.items))

	return r, nil
}

func checkSlug(kind, slug string) error {
	if slug == "" {
		return errors.InvalidArgumentf("%s slug cannot be empty", kind)
	}
	if strings.Contains(slug, ":") {
		return errors.InvalidArgumentf("%s slug %q cannot contain ':'", kind, slug)
	}
	return nil
}

// normalizeGrants fills ids, default choice groups and levels in place
func normalizeGrants(owner string, grants []dnd5e.GrantRecord, minLevel int) error {
	if minLevel < 1 {
		minLevel = 1
	}
	groups := make(map[string]bool)
	for i := range grants {
		g := &grants[i]
		if !g.Domain.IsValid() {
			return errors.InvalidArgumentf("%s grant %d: unknown domain %q", owner, i, g.Domain)
		}
		if g.ID == "" {
			g.ID = fmt.Sprintf("%s-%s-%d", owner, g.Domain, i)
		}
		if g.LevelGranted < minLevel {
			g.LevelGranted = minLevel
		}
		if !g.IsChoice {
			if g.ChoiceGroup != "" {
				return errors.InvalidArgumentf("%s grant %s: fixed grants cannot have a choice group", owner, g.ID)
			}
			if g.Target == "" && g.Domain != dnd5e.DomainEquipmentMode {
				return errors.InvalidArgumentf("%s grant %s: fixed grant needs a target", owner, g.ID)
			}
			continue
		}
		if g.Quantity < 1 {
			return errors.InvalidArgumentf("%s grant %s: choice quantity must be at least 1", owner, g.ID)
		}
		if g.ChoiceGroup == "" {
			g.ChoiceGroup = g.ID
		}
		if strings.Contains(g.ChoiceGroup, ":") {
			return errors.InvalidArgumentf("%s grant %s: choice group cannot contain ':'", owner, g.ID)
		}
		key := string(g.Domain) + "/" + g.ChoiceGroup
		if groups[key] {
			return errors.InvalidArgumentf("%s declares choice group %s twice for %s", owner, g.ChoiceGroup, g.Domain)
		}
		groups[key] = true
	}
	return nil
}

func (r *memoryRepository) raceChain(slug string) ([]*dnd5e.Race, error) {
	chain := make([]*dnd5e.Race, 0, maxParentDepth)
	visited := make(map[string]bool, maxParentDepth)

	for current := slug; current != ""; {
		if visited[current] {
			return nil, errors.InvalidArgumentf("race %s: parent cycle through %s", slug, current)
		}
		if len(chain) == maxParentDepth {
			return nil, errors.InvalidArgumentf("race %s: parent chain deeper than %d", slug, maxParentDepth)
		}
		visited[current] = true

		race, ok := r.races[current]
		if !ok {
			if current == slug {
				return nil, errors.NotFoundf("race %s not found", slug)
			}
			return nil, errors.InvalidArgumentf("race %s references unknown parent %s", slug, current)
		}
		chain = append(chain, race)
		current = race.Parent
	}
	return chain, nil
}

func (r *memoryRepository) GetRace(_ context.Context, slug string) (*dnd5e.Race, error) {
	race, ok := r.races[slug]
	if !ok {
		return nil, errors.NotFoundf("race %s not found", slug)
	}
	return race, nil
}

func (r *memoryRepository) GetRaceChain(_ context.Context, slug string) ([]*dnd5e.Race, error) {
	return r.raceChain(slug)
}

func (r *memoryRepository) GetClass(_ context.Context, slug string) (*dnd5e.Class, error) {
	class, ok := r.classes[slug]
	if !ok {
		return nil, errors.NotFoundf("class %s not found", slug)
	}
	return class, nil
}

func (r *memoryRepository) GetBackground(_ context.Context, slug string) (*dnd5e.Background, error) {
	bg, ok := r.backgrounds[slug]
	if !ok {
		return nil, errors.NotFoundf("background %s not found", slug)
	}
	return bg, nil
}

func (r *memoryRepository) GetFeat(_ context.Context, slug string) (*dnd5e.Feat, error) {
	feat, ok := r.feats[slug]
	if !ok {
		return nil, errors.NotFoundf("feat %s not found", slug)
	}
	return feat, nil
}

func (r *memoryRepository) GetItem(_ context.Context, slug string) (*dnd5e.Item, error) {
	item, ok := r.items[slug]
	if !ok {
		return nil, errors.NotFoundf("item %s not found", slug)
	}
	return item, nil
}

func (r *memoryRepository) ListClassFeatures(_ context.Context, class string, level int) ([]*dnd5e.ClassFeature, error) {
	var out []*dnd5e.ClassFeature
	for _, feature := range r.features {
		if feature.Class == class && feature.Level <= level {
			out = append(out, feature)
		}
	}
	return out, nil
}

func (r *memoryRepository) ListLanguages(_ context.Context) ([]*dnd5e.Language, error) {
	return r.languages, nil
}

func (r *memoryRepository) ListFeats(_ context.Context) ([]*dnd5e.Feat, error) {
	return r.featList, nil
}

func (r *memoryRepository) ListFightingStyles(_ context.Context) ([]*dnd5e.FightingStyle, error) {
	return r.fightingStyles, nil
}

func (r *memoryRepository) ListProficiencies(
	_ context.Context,
	profType, subcategory string,
) ([]*dnd5e.Proficiency, error) {
	if profType == dnd5e.ProficiencySkill {
		return skillProficiencies(), nil
	}

	var out []*dnd5e.Proficiency
	for _, p := range r.proficiencies {
		if profType != "" && p.Type != profType {
			continue
		}
		if subcategory != "" && p.Subcategory != subcategory {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func skillProficiencies() []*dnd5e.Proficiency {
	skills := make([]*dnd5e.Proficiency, 0, len(dnd5e.SkillAbilities))
	for slug := range dnd5e.SkillAbilities {
		skills = append(skills, &dnd5e.Proficiency{
			Slug: slug,
			Name: skillName(slug),
			Type: dnd5e.ProficiencySkill,
		})
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Slug < skills[j].Slug })
	return skills
}

// skillName turns sleight_of_hand into Sleight Of Hand
func skillName(slug string) string {
	words := strings.Split(slug, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
