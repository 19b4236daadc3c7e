// Package dnd5e holds the catalog and character entities for D&D 5e
// character building. Entities are data only; rules live in internal/engine.
package dnd5e

// Ability is a three letter ability code
type Ability string

// Ability codes
const (
	AbilityStrength     Ability = "str"
	AbilityDexterity    Ability = "dex"
	AbilityConstitution Ability = "con"
	AbilityIntelligence Ability = "int"
	AbilityWisdom       Ability = "wis"
	AbilityCharisma     Ability = "cha"
)

// Abilities lists every ability in sheet order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// IsValid reports whether a is one of the six abilities
func (a Ability) IsValid() bool {
	for _, known := range Abilities {
		if a == known {
			return true
		}
	}
	return false
}

// Domain names the kind of thing a grant hands out
type Domain string

// Grant domains
const (
	DomainAbilityScore  Domain = "ability_score"
	DomainLanguage      Domain = "language"
	DomainProficiency   Domain = "proficiency"
	DomainExpertise     Domain = "expertise"
	DomainEquipmentMode Domain = "equipment_mode"
	DomainFeat          Domain = "feat"
	DomainFightingStyle Domain = "fighting_style"
)

// Domains lists every domain discovery walks, in presentation order
var Domains = []Domain{
	DomainAbilityScore,
	DomainLanguage,
	DomainProficiency,
	DomainExpertise,
	DomainEquipmentMode,
	DomainFeat,
	DomainFightingStyle,
}

// IsValid reports whether d is a known domain
func (d Domain) IsValid() bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

// Constraint restricts how selections within one choice group relate
type Constraint string

const (
	// ConstraintNone applies no cross-selection rule
	ConstraintNone Constraint = ""
	// ConstraintDifferent requires pairwise distinct selections
	ConstraintDifferent Constraint = "different"
)

// Proficiency subtypes
const (
	ProficiencySkill       = "skill"
	ProficiencyTool        = "tool"
	ProficiencyWeapon      = "weapon"
	ProficiencyArmor       = "armor"
	ProficiencyInstrument  = "instrument"
	ProficiencySavingThrow = "saving_throw"
)

// Equipment modes offered at level 1
const (
	EquipmentModeEquipment = "equipment"
	EquipmentModeGold      = "gold"
)

// CurrencyGold is the currency code for gold pieces
const CurrencyGold = "gp"

// Currency contribution sources
const (
	WalletSourceBackground     = "background"
	WalletSourceStartingWealth = "starting_wealth"
)

// Skill slugs
const (
	SkillAcrobatics     = "acrobatics"
	SkillAnimalHandling = "animal_handling"
	SkillArcana         = "arcana"
	SkillAthletics      = "athletics"
	SkillDeception      = "deception"
	SkillHistory        = "history"
	SkillInsight        = "insight"
	SkillIntimidation   = "intimidation"
	SkillInvestigation  = "investigation"
	SkillMedicine       = "medicine"
	SkillNature         = "nature"
	SkillPerception     = "perception"
	SkillPerformance    = "performance"
	SkillPersuasion     = "persuasion"
	SkillReligion       = "religion"
	SkillSleightOfHand  = "sleight_of_hand"
	SkillStealth        = "stealth"
	SkillSurvival       = "survival"
)

// SkillAbilities maps each skill to the ability it keys off
var SkillAbilities = map[string]Ability{
	SkillAcrobatics:     AbilityDexterity,
	SkillAnimalHandling: AbilityWisdom,
	SkillArcana:         AbilityIntelligence,
	SkillAthletics:      AbilityStrength,
	SkillDeception:      AbilityCharisma,
	SkillHistory:        AbilityIntelligence,
	SkillInsight:        AbilityWisdom,
	SkillIntimidation:   AbilityCharisma,
	SkillInvestigation:  AbilityIntelligence,
	SkillMedicine:       AbilityWisdom,
	SkillNature:         AbilityIntelligence,
	SkillPerception:     AbilityWisdom,
	SkillPerformance:    AbilityCharisma,
	SkillPersuasion:     AbilityCharisma,
	SkillReligion:       AbilityIntelligence,
	SkillSleightOfHand:  AbilityDexterity,
	SkillStealth:        AbilityDexterity,
	SkillSurvival:       AbilityWisdom,
}

// Fighting style slugs with mechanical effects
const (
	FightingStyleArchery = "archery"
	FightingStyleDefense = "defense"
	FightingStyleDueling = "dueling"
)
