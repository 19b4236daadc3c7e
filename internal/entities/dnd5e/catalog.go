package dnd5e

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityKind tags which catalog table a granting entity lives in
type EntityKind string

// Granting entity kinds
const (
	KindRace         EntityKind = "race"
	KindClass        EntityKind = "class"
	KindBackground   EntityKind = "background"
	KindFeat         EntityKind = "feat"
	KindClassFeature EntityKind = "class_feature"
)

// EntityRef identifies one granting entity. Discovery dispatches on Kind only
// to pick a traversal.
type EntityRef struct {
	Kind EntityKind `json:"kind" yaml:"kind"`
	Slug string     `json:"slug" yaml:"slug"`
}

var _ core.Entity = EntityRef{}

// GetID returns the slug
func (r EntityRef) GetID() string {
	return r.Slug
}

// GetType returns the entity kind
func (r EntityRef) GetType() string {
	return string(r.Kind)
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.Slug)
}

// RefOf reduces any core entity to the kind and slug selections record
func RefOf(e core.Entity) EntityRef {
	if ref, ok := e.(EntityRef); ok {
		return ref
	}
	return EntityRef{Kind: EntityKind(e.GetType()), Slug: e.GetID()}
}

// GrantRecord is one fixed grant or choice definition declared by a
// granting entity. Records are immutable catalog data.
type GrantRecord struct {
	ID       string `json:"id" yaml:"id"`
	Domain   Domain `json:"domain" yaml:"domain"`
	IsChoice bool   `json:"is_choice" yaml:"is_choice"`

	// ChoiceGroup separates independent buckets within one entity and domain
	ChoiceGroup string `json:"choice_group,omitempty" yaml:"choice_group,omitempty"`
	Quantity    int    `json:"quantity,omitempty" yaml:"quantity,omitempty"`

	// Value is the per-selection bonus for ability score grants
	Value int `json:"value,omitempty" yaml:"value,omitempty"`

	// Target is the fixed target; empty on choices
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Options restricts a choice to an explicit list. Empty means any
	// catalog member of the domain (narrowed by Subtype/Subcategory).
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	Subtype      string     `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Subcategory  string     `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Constraint   Constraint `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	LevelGranted int        `json:"level_granted,omitempty" yaml:"level_granted,omitempty"`
}

// RequiresDistinct reports whether duplicate selections are rejected.
// Only an explicit "different" constraint turns the check on.
func (g *GrantRecord) RequiresDistinct() bool {
	return g.Constraint == ConstraintDifferent
}

// Race is a race or subrace. Subraces point at exactly one parent.
type Race struct {
	Slug            string           `yaml:"slug"`
	Name            string           `yaml:"name"`
	Parent          string           `yaml:"parent,omitempty"`
	Speed           int              `yaml:"speed,omitempty"`
	Size            string           `yaml:"size,omitempty"`
	Grants          []GrantRecord    `yaml:"grants,omitempty"`
	DefensiveTraits []DefensiveTrait `yaml:"defensive_traits,omitempty"`
}

var _ core.Entity = (*Race)(nil)

// GetID returns the race slug
func (r *Race) GetID() string { return r.Slug }

// GetType returns KindRace
func (r *Race) GetType() string { return string(KindRace) }

// CasterType describes how a class progresses spell slots
type CasterType string

// Caster types
const (
	CasterNone CasterType = ""
	CasterFull CasterType = "full"
	CasterHalf CasterType = "half"
	CasterPact CasterType = "pact"
)

// Preparation describes how a class readies spells
type Preparation string

// Preparation methods
const (
	PreparationNone     Preparation = ""
	PreparationPrepared Preparation = "prepared"
	PreparationKnown    Preparation = "known"
)

// StartingWealth is the dice formula for rolled starting gold, e.g. 5d4 x 10
type StartingWealth struct {
	Dice       int `yaml:"dice"`
	Sides      int `yaml:"sides"`
	Multiplier int `yaml:"multiplier"`
	Average    int `yaml:"average"`
}

// Formula renders the wealth roll the way players write it
func (w *StartingWealth) Formula() string {
	if w.Multiplier > 1 {
		return fmt.Sprintf("%dd%d x %d", w.Dice, w.Sides, w.Multiplier)
	}
	return fmt.Sprintf("%dd%d", w.Dice, w.Sides)
}

// StartingItem is a fixed item handed out on population
type StartingItem struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// Class is a class or subclass. Subclasses point at their class.
type Class struct {
	Slug                string          `yaml:"slug"`
	Name                string          `yaml:"name"`
	Parent              string          `yaml:"parent,omitempty"`
	HitDie              int             `yaml:"hit_die,omitempty"`
	SpellcastingAbility Ability         `yaml:"spellcasting_ability,omitempty"`
	Caster              CasterType      `yaml:"caster,omitempty"`
	Preparation         Preparation     `yaml:"preparation,omitempty"`
	StartingWealth      *StartingWealth `yaml:"starting_wealth,omitempty"`
	EquipmentChoices    int             `yaml:"equipment_choices,omitempty"`
	StartingItems       []StartingItem  `yaml:"starting_items,omitempty"`
	Grants              []GrantRecord   `yaml:"grants,omitempty"`
}

// ClassFeature is a class or subclass feature unlocked at a class level
type ClassFeature struct {
	Slug   string        `yaml:"slug"`
	Name   string        `yaml:"name"`
	Class  string        `yaml:"class"`
	Level  int           `yaml:"level"`
	Grants []GrantRecord `yaml:"grants,omitempty"`
}

// Background is a character background
type Background struct {
	Slug          string         `yaml:"slug"`
	Name          string         `yaml:"name"`
	Gold          int            `yaml:"gold,omitempty"`
	StartingItems []StartingItem `yaml:"starting_items,omitempty"`
	Grants        []GrantRecord  `yaml:"grants,omitempty"`
}

// Feat is a feat; owning one attaches it as a granting entity
type Feat struct {
	Slug            string           `yaml:"slug"`
	Name            string           `yaml:"name"`
	Grants          []GrantRecord    `yaml:"grants,omitempty"`
	DefensiveTraits []DefensiveTrait `yaml:"defensive_traits,omitempty"`
}

var _ core.Entity = (*Feat)(nil)

func (f *Feat) GetID() string   { return f.Slug }
func (f *Feat) GetType() string { return string(KindFeat) }

// FightingStyle is a selectable fighting style
type FightingStyle struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

// Language is a learnable language
type Language struct {
	Slug   string `yaml:"slug"`
	Name   string `yaml:"name"`
	Exotic bool   `yaml:"exotic,omitempty"`
}

// Proficiency is a catalog proficiency such as a tool or weapon group.
// Skills are built in and do not need catalog rows.
type Proficiency struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Subcategory string `yaml:"subcategory,omitempty"`
}

// ItemCategory groups items for slot rules
type ItemCategory string

// Item categories
const (
	ItemWeapon    ItemCategory = "weapon"
	ItemArmor     ItemCategory = "armor"
	ItemShield    ItemCategory = "shield"
	ItemRing      ItemCategory = "ring"
	ItemWondrous  ItemCategory = "wondrous"
	ItemClothing  ItemCategory = "clothing"
	ItemGear      ItemCategory = "gear"
	ItemContainer ItemCategory = "container"
)

// ArmorType is the armor weight class
type ArmorType string

// Armor types
const (
	ArmorLight  ArmorType = "light"
	ArmorMedium ArmorType = "medium"
	ArmorHeavy  ArmorType = "heavy"
)

// Item is a catalog item
type Item struct {
	Slug               string       `yaml:"slug"`
	Name               string       `yaml:"name"`
	Category           ItemCategory `yaml:"category"`
	ArmorType          ArmorType    `yaml:"armor_type,omitempty"`
	ArmorClass         int          `yaml:"armor_class,omitempty"`
	TwoHanded          bool         `yaml:"two_handed,omitempty"`
	Ranged             bool         `yaml:"ranged,omitempty"`
	RequiresAttunement bool         `yaml:"requires_attunement,omitempty"`
	Slot               Location     `yaml:"slot,omitempty"`
	Weight             float64      `yaml:"weight,omitempty"`
}

// TraitKind classifies a defensive trait
type TraitKind string

// Defensive trait kinds
const (
	TraitResistance            TraitKind = "resistance"
	TraitImmunity              TraitKind = "immunity"
	TraitVulnerability         TraitKind = "vulnerability"
	TraitConditionAdvantage    TraitKind = "condition_advantage"
	TraitConditionImmunity     TraitKind = "condition_immunity"
	TraitConditionDisadvantage TraitKind = "condition_disadvantage"
)

// DefensiveTrait is a resistance, immunity, vulnerability or condition effect
type DefensiveTrait struct {
	Kind      TraitKind `json:"kind" yaml:"kind"`
	Type      string    `json:"type" yaml:"type"`
	Qualifier string    `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
}
