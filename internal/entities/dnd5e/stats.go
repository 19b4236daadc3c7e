package dnd5e

// Stats is the derived stat view computed from a character and the catalog
type Stats struct {
	CharacterID      string                  `json:"character_id"`
	TotalLevel       int                     `json:"total_level"`
	ProficiencyBonus int                     `json:"proficiency_bonus"`
	Abilities        map[Ability]AbilityStat `json:"abilities"`
	SavingThrows     map[Ability]SavingThrow `json:"saving_throws"`
	Skills           map[string]SkillStat    `json:"skills"`
	Passive          PassiveScores           `json:"passive"`
	Initiative       int                     `json:"initiative"`
	Speed            int                     `json:"speed"`
	MaxHP            int                     `json:"max_hp"`
	ArmorClass       int                     `json:"armor_class"`
	Carrying         CarryingCapacity        `json:"carrying"`
	Spellcasting     []ClassSpellcasting     `json:"spellcasting,omitempty"`
	SpellSlots       map[int]int             `json:"spell_slots,omitempty"`
	PactMagic        *PactMagic              `json:"pact_magic,omitempty"`
	PreparationLimit *int                    `json:"preparation_limit,omitempty"`
	DefensiveTraits  []DefensiveTraitEntry   `json:"defensive_traits"`
	FightingStyles   []string                `json:"fighting_styles,omitempty"`
	CombatBonuses    CombatBonuses           `json:"combat_bonuses"`
	Languages        []string                `json:"languages,omitempty"`
	Proficiencies    map[string][]string     `json:"proficiencies,omitempty"`
	Currency         []CurrencyLine          `json:"currency,omitempty"`
}

// AbilityStat is one ability's base, bonus, final score and modifier
type AbilityStat struct {
	Base     int `json:"base"`
	Bonus    int `json:"bonus"`
	Score    int `json:"score"`
	Modifier int `json:"modifier"`
}

// SavingThrow is one saving throw line
type SavingThrow struct {
	Modifier   int  `json:"modifier"`
	Proficient bool `json:"proficient"`
	Total      int  `json:"total"`
}

// SkillStat is one skill line
type SkillStat struct {
	Ability    Ability `json:"ability"`
	Modifier   int     `json:"modifier"`
	Proficient bool    `json:"proficient"`
	Expertise  bool    `json:"expertise"`
	Total      int     `json:"total"`
}

// PassiveScores are the passive skill checks
type PassiveScores struct {
	Perception    int `json:"perception"`
	Investigation int `json:"investigation"`
	Insight       int `json:"insight"`
}

// CarryingCapacity is weight limits derived from strength
type CarryingCapacity struct {
	Capacity     int `json:"capacity"`
	PushDragLift int `json:"push_drag_lift"`
}

// ClassSpellcasting is the per-class spellcasting line
type ClassSpellcasting struct {
	Class            string  `json:"class"`
	Ability          Ability `json:"ability"`
	AbilityModifier  int     `json:"ability_modifier"`
	SaveDC           int     `json:"save_dc"`
	AttackBonus      int     `json:"attack_bonus"`
	MaxSpellLevel    int     `json:"max_spell_level"`
	PreparationLimit *int    `json:"preparation_limit,omitempty"`
}

// PactMagic is the warlock slot pool, tracked apart from standard slots
type PactMagic struct {
	SlotLevel int `json:"slot_level"`
	Slots     int `json:"slots"`
}

// DefensiveTraitEntry is a defensive trait tagged with where it came from
type DefensiveTraitEntry struct {
	DefensiveTrait
	Source     string     `json:"source"`
	SourceKind EntityKind `json:"source_kind"`
	SourceSlug string     `json:"source_slug"`
}

// CombatBonuses are fighting style adjustments
type CombatBonuses struct {
	RangedAttack int `json:"ranged_attack"`
	MeleeDamage  int `json:"melee_damage"`
	ArmorClass   int `json:"armor_class"`
}
