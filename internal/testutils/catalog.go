package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
)

// NewCatalogRepository indexes a fresh copy of the test catalog
func NewCatalogRepository(t *testing.T) catalog.Repository {
	repo, err := catalog.NewMemory(&catalog.MemoryConfig{Catalog: NewCatalog()})
	require.NoError(t, err, "failed to index test catalog")
	return repo
}

func fixed(domain dnd5e.Domain, target string) dnd5e.GrantRecord {
	return dnd5e.GrantRecord{Domain: domain, Target: target}
}

func ability(code dnd5e.Ability, value int) dnd5e.GrantRecord {
	return dnd5e.GrantRecord{Domain: dnd5e.DomainAbilityScore, Target: string(code), Value: value}
}

func proficiency(subtype, target string) dnd5e.GrantRecord {
	return dnd5e.GrantRecord{Domain: dnd5e.DomainProficiency, Subtype: subtype, Target: target}
}

func choice(domain dnd5e.Domain, group string, quantity int) dnd5e.GrantRecord {
	return dnd5e.GrantRecord{Domain: domain, IsChoice: true, ChoiceGroup: group, Quantity: quantity}
}

// NewCatalog builds the test rule catalog. NewMemory normalizes grants in
// place, so every call returns new values.
func NewCatalog() *catalog.Catalog {
	halfElfBonus := choice(dnd5e.DomainAbilityScore, "ability-bonus", 2)
	halfElfBonus.Value = 1
	halfElfBonus.Constraint = dnd5e.ConstraintDifferent
	halfElfBonus.Options = []string{"str", "dex", "con", "int", "wis"}

	halfElfSkills := choice(dnd5e.DomainProficiency, "skill-versatility", 2)
	halfElfSkills.Subtype = dnd5e.ProficiencySkill

	humanBonus := choice(dnd5e.DomainAbilityScore, "ability-bonus", 2)
	humanBonus.Value = 1

	dwarfTool := choice(dnd5e.DomainProficiency, "artisan-tool", 1)
	dwarfTool.Subtype = dnd5e.ProficiencyTool
	dwarfTool.Options = []string{"smiths-tools", "brewers-supplies", "masons-tools"}

	fighterSkills := choice(dnd5e.DomainProficiency, "skills", 2)
	fighterSkills.Subtype = dnd5e.ProficiencySkill
	fighterSkills.Options = []string{
		dnd5e.SkillAcrobatics, dnd5e.SkillAnimalHandling, dnd5e.SkillAthletics, dnd5e.SkillHistory,
		dnd5e.SkillInsight, dnd5e.SkillIntimidation, dnd5e.SkillPerception, dnd5e.SkillSurvival,
	}

	wizardSkills := choice(dnd5e.DomainProficiency, "skills", 2)
	wizardSkills.Subtype = dnd5e.ProficiencySkill
	wizardSkills.Options = []string{
		dnd5e.SkillArcana, dnd5e.SkillHistory, dnd5e.SkillInsight,
		dnd5e.SkillInvestigation, dnd5e.SkillMedicine, dnd5e.SkillReligion,
	}

	rogueSkills := choice(dnd5e.DomainProficiency, "skills", 4)
	rogueSkills.Subtype = dnd5e.ProficiencySkill
	rogueSkills.Options = []string{
		dnd5e.SkillAcrobatics, dnd5e.SkillAthletics, dnd5e.SkillDeception, dnd5e.SkillInsight,
		dnd5e.SkillIntimidation, dnd5e.SkillInvestigation, dnd5e.SkillPerception,
		dnd5e.SkillPerformance, dnd5e.SkillPersuasion, dnd5e.SkillSleightOfHand, dnd5e.SkillStealth,
	}

	asi := choice(dnd5e.DomainAbilityScore, "asi-4", 2)
	asi.Value = 1

	gamingSet := choice(dnd5e.DomainProficiency, "gaming-set", 1)
	gamingSet.Subtype = dnd5e.ProficiencyTool
	gamingSet.Subcategory = "gaming-set"

	skilled := choice(dnd5e.DomainProficiency, "skills", 3)
	skilled.Subtype = dnd5e.ProficiencySkill

	return &catalog.Catalog{
		Races: []*dnd5e.Race{
			{
				Slug: "elf", Name: "Elf", Speed: 30, Size: "medium",
				Grants: []dnd5e.GrantRecord{
					ability(dnd5e.AbilityDexterity, 2),
					fixed(dnd5e.DomainLanguage, "common"),
					fixed(dnd5e.DomainLanguage, "elvish"),
					proficiency(dnd5e.ProficiencySkill, dnd5e.SkillPerception),
					choice(dnd5e.DomainLanguage, "bonus-language", 1),
				},
				DefensiveTraits: []dnd5e.DefensiveTrait{
					{Kind: dnd5e.TraitConditionAdvantage, Type: "charmed"},
					{Kind: dnd5e.TraitConditionImmunity, Type: "sleep", Qualifier: "magical sleep only"},
				},
			},
			{
				Slug: "high-elf", Name: "High Elf", Parent: "elf",
				Grants: []dnd5e.GrantRecord{
					ability(dnd5e.AbilityIntelligence, 1),
					choice(dnd5e.DomainLanguage, "bonus-language", 2),
				},
			},
			{
				Slug: "wood-elf", Name: "Wood Elf", Parent: "elf", Speed: 35,
				Grants: []dnd5e.GrantRecord{
					ability(dnd5e.AbilityWisdom, 1),
				},
			},
			{
				Slug: "dwarf", Name: "Dwarf", Speed: 25, Size: "medium",
				Grants: []dnd5e.GrantRecord{
					ability(dnd5e.AbilityConstitution, 2),
					fixed(dnd5e.DomainLanguage, "common"),
					fixed(dnd5e.DomainLanguage, "dwarvish"),
					dwarfTool,
				},
				DefensiveTraits: []dnd5e.DefensiveTrait{
					{Kind: dnd5e.TraitResistance, Type: "poison"},
					{Kind: dnd5e.TraitConditionAdvantage, Type: "poisoned"},
				},
			},
			{
				Slug: "half-elf", Name: "Half-Elf", Speed: 30, Size: "medium",
				Grants: []dnd5e.GrantRecord{
					ability(dnd5e.AbilityCharisma, 2),
					halfElfBonus,
					fixed(dnd5e.DomainLanguage, "common"),
					fixed(dnd5e.DomainLanguage, "elvish"),
					choice(dnd5e.DomainLanguage, "extra-language", 1),
					halfElfSkills,
				},
				DefensiveTraits: []dnd5e.DefensiveTrait{
					{Kind: dnd5e.TraitConditionAdvantage, Type: "charmed"},
				},
			},
			{
				Slug: "variant-human", Name: "Variant Human", Speed: 30, Size: "medium",
				Grants: []dnd5e.GrantRecord{
					humanBonus,
					fixed(dnd5e.DomainLanguage, "common"),
					choice(dnd5e.DomainLanguage, "extra-language", 1),
					choice(dnd5e.DomainFeat, "bonus-feat", 1),
				},
			},
			{
				Slug: "tiefling", Name: "Tiefling", Speed: 30, Size: "medium",
				Grants: []dnd5e.GrantRecord{
					ability(dnd5e.AbilityCharisma, 2),
					ability(dnd5e.AbilityIntelligence, 1),
					fixed(dnd5e.DomainLanguage, "common"),
					fixed(dnd5e.DomainLanguage, "infernal"),
				},
				DefensiveTraits: []dnd5e.DefensiveTrait{
					{Kind: dnd5e.TraitResistance, Type: "fire"},
				},
			},
		},
		Classes: []*dnd5e.Class{
			{
				Slug: "fighter", Name: "Fighter", HitDie: 10,
				StartingWealth:   &dnd5e.StartingWealth{Dice: 5, Sides: 4, Multiplier: 10, Average: 125},
				EquipmentChoices: 2,
				StartingItems: []dnd5e.StartingItem{
					{Item: "chain-mail", Quantity: 1},
					{Item: "longsword", Quantity: 1},
					{Item: "shield", Quantity: 1},
				},
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySavingThrow, "str"),
					proficiency(dnd5e.ProficiencySavingThrow, "con"),
					proficiency(dnd5e.ProficiencyArmor, "heavy-armor"),
					proficiency(dnd5e.ProficiencyWeapon, "martial-weapons"),
					fighterSkills,
				},
			},
			{Slug: "champion", Name: "Champion", Parent: "fighter"},
			{
				Slug: "wizard", Name: "Wizard", HitDie: 6,
				SpellcastingAbility: dnd5e.AbilityIntelligence,
				Caster:              dnd5e.CasterFull,
				Preparation:         dnd5e.PreparationPrepared,
				StartingWealth:      &dnd5e.StartingWealth{Dice: 4, Sides: 4, Multiplier: 10, Average: 100},
				EquipmentChoices:    3,
				StartingItems: []dnd5e.StartingItem{
					{Item: "spellbook", Quantity: 1},
					{Item: "dagger", Quantity: 1},
				},
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySavingThrow, "int"),
					proficiency(dnd5e.ProficiencySavingThrow, "wis"),
					wizardSkills,
				},
			},
			{
				Slug: "warlock", Name: "Warlock", HitDie: 8,
				SpellcastingAbility: dnd5e.AbilityCharisma,
				Caster:              dnd5e.CasterPact,
				Preparation:         dnd5e.PreparationKnown,
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySavingThrow, "wis"),
					proficiency(dnd5e.ProficiencySavingThrow, "cha"),
				},
			},
			{
				Slug: "paladin", Name: "Paladin", HitDie: 10,
				SpellcastingAbility: dnd5e.AbilityCharisma,
				Caster:              dnd5e.CasterHalf,
				Preparation:         dnd5e.PreparationPrepared,
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySavingThrow, "wis"),
					proficiency(dnd5e.ProficiencySavingThrow, "cha"),
				},
			},
			{
				Slug: "rogue", Name: "Rogue", HitDie: 8,
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySavingThrow, "dex"),
					proficiency(dnd5e.ProficiencySavingThrow, "int"),
					proficiency(dnd5e.ProficiencyTool, "thieves-tools"),
					rogueSkills,
				},
			},
		},
		ClassFeatures: []*dnd5e.ClassFeature{
			{
				Slug: "fighter-fighting-style", Name: "Fighting Style", Class: "fighter", Level: 1,
				Grants: []dnd5e.GrantRecord{choice(dnd5e.DomainFightingStyle, "fighting-style", 1)},
			},
			{
				Slug: "fighter-asi-4", Name: "Ability Score Improvement", Class: "fighter", Level: 4,
				Grants: []dnd5e.GrantRecord{asi},
			},
			{
				Slug: "champion-additional-fighting-style", Name: "Additional Fighting Style",
				Class: "champion", Level: 10,
				Grants: []dnd5e.GrantRecord{choice(dnd5e.DomainFightingStyle, "fighting-style", 1)},
			},
			{
				Slug: "rogue-expertise", Name: "Expertise", Class: "rogue", Level: 1,
				Grants: []dnd5e.GrantRecord{choice(dnd5e.DomainExpertise, "expertise", 2)},
			},
		},
		Backgrounds: []*dnd5e.Background{
			{
				Slug: "noble", Name: "Noble", Gold: 25,
				StartingItems: []dnd5e.StartingItem{
					{Item: "fine-clothes", Quantity: 1},
					{Item: "signet-ring", Quantity: 1},
				},
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySkill, dnd5e.SkillHistory),
					proficiency(dnd5e.ProficiencySkill, dnd5e.SkillPersuasion),
					gamingSet,
					choice(dnd5e.DomainLanguage, "language", 1),
				},
			},
			{
				Slug: "acolyte", Name: "Acolyte", Gold: 15,
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySkill, dnd5e.SkillInsight),
					proficiency(dnd5e.ProficiencySkill, dnd5e.SkillReligion),
					choice(dnd5e.DomainLanguage, "languages", 2),
				},
			},
			{
				Slug: "far-traveler", Name: "Far Traveler", Gold: 5,
				Grants: []dnd5e.GrantRecord{
					proficiency(dnd5e.ProficiencySkill, dnd5e.SkillInsight),
					proficiency(dnd5e.ProficiencySkill, dnd5e.SkillPerception),
				},
			},
		},
		Feats: []*dnd5e.Feat{
			{
				Slug: "infernal-constitution", Name: "Infernal Constitution",
				Grants: []dnd5e.GrantRecord{ability(dnd5e.AbilityConstitution, 1)},
				DefensiveTraits: []dnd5e.DefensiveTrait{
					{Kind: dnd5e.TraitResistance, Type: "cold"},
					{Kind: dnd5e.TraitResistance, Type: "poison"},
				},
			},
			{
				Slug: "skilled", Name: "Skilled",
				Grants: []dnd5e.GrantRecord{skilled},
			},
			{
				Slug: "linguist", Name: "Linguist",
				Grants: []dnd5e.GrantRecord{
					ability(dnd5e.AbilityIntelligence, 1),
					choice(dnd5e.DomainLanguage, "languages", 3),
				},
			},
			{Slug: "alert", Name: "Alert"},
		},
		FightingStyles: []*dnd5e.FightingStyle{
			{Slug: dnd5e.FightingStyleArchery, Name: "Archery"},
			{Slug: dnd5e.FightingStyleDefense, Name: "Defense"},
			{Slug: dnd5e.FightingStyleDueling, Name: "Dueling"},
			{Slug: "great-weapon-fighting", Name: "Great Weapon Fighting"},
		},
		Languages: []*dnd5e.Language{
			{Slug: "common", Name: "Common"},
			{Slug: "dwarvish", Name: "Dwarvish"},
			{Slug: "elvish", Name: "Elvish"},
			{Slug: "giant", Name: "Giant"},
			{Slug: "gnomish", Name: "Gnomish"},
			{Slug: "goblin", Name: "Goblin"},
			{Slug: "halfling", Name: "Halfling"},
			{Slug: "orc", Name: "Orc"},
			{Slug: "abyssal", Name: "Abyssal", Exotic: true},
			{Slug: "celestial", Name: "Celestial", Exotic: true},
			{Slug: "draconic", Name: "Draconic", Exotic: true},
			{Slug: "infernal", Name: "Infernal", Exotic: true},
		},
		Proficiencies: []*dnd5e.Proficiency{
			{Slug: "thieves-tools", Name: "Thieves' Tools", Type: dnd5e.ProficiencyTool},
			{Slug: "smiths-tools", Name: "Smith's Tools", Type: dnd5e.ProficiencyTool, Subcategory: "artisans-tools"},
			{Slug: "dice-set", Name: "Dice Set", Type: dnd5e.ProficiencyTool, Subcategory: "gaming-set"},
			{Slug: "playing-card-set", Name: "Playing Card Set", Type: dnd5e.ProficiencyTool, Subcategory: "gaming-set"},
			{Slug: "lute", Name: "Lute", Type: dnd5e.ProficiencyInstrument},
			{Slug: "martial-weapons", Name: "Martial Weapons", Type: dnd5e.ProficiencyWeapon},
			{Slug: "heavy-armor", Name: "Heavy Armor", Type: dnd5e.ProficiencyArmor},
		},
		Items: []*dnd5e.Item{
			{Slug: "longsword", Name: "Longsword", Category: dnd5e.ItemWeapon, Weight: 3},
			{Slug: "dagger", Name: "Dagger", Category: dnd5e.ItemWeapon, Weight: 1},
			{Slug: "greatsword", Name: "Greatsword", Category: dnd5e.ItemWeapon, TwoHanded: true, Weight: 6},
			{Slug: "longbow", Name: "Longbow", Category: dnd5e.ItemWeapon, TwoHanded: true, Ranged: true, Weight: 2},
			{Slug: "shield", Name: "Shield", Category: dnd5e.ItemShield, ArmorClass: 2, Weight: 6},
			{Slug: "leather", Name: "Leather Armor", Category: dnd5e.ItemArmor, ArmorType: dnd5e.ArmorLight, ArmorClass: 11, Weight: 10},
			{Slug: "scale-mail", Name: "Scale Mail", Category: dnd5e.ItemArmor, ArmorType: dnd5e.ArmorMedium, ArmorClass: 14, Weight: 45},
			{Slug: "chain-mail", Name: "Chain Mail", Category: dnd5e.ItemArmor, ArmorType: dnd5e.ArmorHeavy, ArmorClass: 16, Weight: 55},
			{Slug: "ring-of-protection", Name: "Ring of Protection", Category: dnd5e.ItemRing, RequiresAttunement: true},
			{Slug: "ring-of-warmth", Name: "Ring of Warmth", Category: dnd5e.ItemRing, RequiresAttunement: true},
			{Slug: "signet-ring", Name: "Signet Ring", Category: dnd5e.ItemRing},
			{Slug: "amulet-of-health", Name: "Amulet of Health", Category: dnd5e.ItemWondrous, Slot: dnd5e.LocationNeck, RequiresAttunement: true},
			{Slug: "cloak-of-protection", Name: "Cloak of Protection", Category: dnd5e.ItemWondrous, Slot: dnd5e.LocationCloak, RequiresAttunement: true},
			{Slug: "fine-clothes", Name: "Fine Clothes", Category: dnd5e.ItemClothing, Weight: 6},
			{Slug: "spellbook", Name: "Spellbook", Category: dnd5e.ItemGear, Weight: 3},
			{Slug: "rope", Name: "Hempen Rope (50 feet)", Category: dnd5e.ItemGear, Weight: 10},
		},
	}
}
