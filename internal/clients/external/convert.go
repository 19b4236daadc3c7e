package external

import (
	"log/slog"
	"strings"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	internalDnd5e "github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

// defensiveTraits maps racial trait names to the defenses they confer. The
// API only carries trait names.
var defensiveTraits = map[string][]internalDnd5e.DefensiveTrait{
	"Dwarven Resilience": {
		{Kind: internalDnd5e.TraitResistance, Type: "poison"},
		{Kind: internalDnd5e.TraitConditionAdvantage, Type: "poisoned"},
	},
	"Fey Ancestry": {
		{Kind: internalDnd5e.TraitConditionAdvantage, Type: "charmed"},
	},
	"Brave": {
		{Kind: internalDnd5e.TraitConditionAdvantage, Type: "frightened"},
	},
	"Hellish Resistance": {
		{Kind: internalDnd5e.TraitResistance, Type: "fire"},
	},
}

// casterTypes, spellcastingAbilities and preparations cover the SRD
// spellcasting classes
var casterTypes = map[string]internalDnd5e.CasterType{
	"bard":     internalDnd5e.CasterFull,
	"cleric":   internalDnd5e.CasterFull,
	"druid":    internalDnd5e.CasterFull,
	"sorcerer": internalDnd5e.CasterFull,
	"wizard":   internalDnd5e.CasterFull,
	"paladin":  internalDnd5e.CasterHalf,
	"ranger":   internalDnd5e.CasterHalf,
	"warlock":  internalDnd5e.CasterPact,
}

// spellcastingAbilities is keyed by class since the class endpoint does not
// carry the casting ability
var spellcastingAbilities = map[string]internalDnd5e.Ability{
	"bard":     internalDnd5e.AbilityCharisma,
	"cleric":   internalDnd5e.AbilityWisdom,
	"druid":    internalDnd5e.AbilityWisdom,
	"paladin":  internalDnd5e.AbilityCharisma,
	"ranger":   internalDnd5e.AbilityWisdom,
	"sorcerer": internalDnd5e.AbilityCharisma,
	"warlock":  internalDnd5e.AbilityCharisma,
	"wizard":   internalDnd5e.AbilityIntelligence,
}

var preparations = map[string]internalDnd5e.Preparation{
	"cleric":  internalDnd5e.PreparationPrepared,
	"druid":   internalDnd5e.PreparationPrepared,
	"paladin": internalDnd5e.PreparationPrepared,
	"wizard":  internalDnd5e.PreparationPrepared,
}

// startingWealth is the rolled gold per class: dice, sides, multiplier
var startingWealth = map[string][3]int{
	"barbarian": {2, 4, 10},
	"bard":      {5, 4, 10},
	"cleric":    {5, 4, 10},
	"druid":     {2, 4, 10},
	"fighter":   {5, 4, 10},
	"monk":      {5, 4, 1},
	"paladin":   {5, 4, 10},
	"ranger":    {5, 4, 10},
	"rogue":     {4, 4, 10},
	"sorcerer":  {3, 4, 10},
	"warlock":   {4, 4, 10},
	"wizard":    {4, 4, 10},
}

func convertRace(apiRace *entities.Race) *internalDnd5e.Race {
	race := &internalDnd5e.Race{
		Slug:  apiRace.Key,
		Name:  apiRace.Name,
		Speed: int(apiRace.Speed),
		Size:  apiRace.Size,
	}

	for _, bonus := range apiRace.AbilityBonuses {
		if bonus.AbilityScore == nil {
			continue
		}
		ability := internalDnd5e.Ability(strings.ToLower(bonus.AbilityScore.Key))
		if !ability.IsValid() {
			slog.Warn("Skipping unknown ability bonus", "race", apiRace.Key, "ability", bonus.AbilityScore.Key)
			continue
		}
		race.Grants = append(race.Grants, internalDnd5e.GrantRecord{
			Domain: internalDnd5e.DomainAbilityScore,
			Target: string(ability),
			Value:  int(bonus.Bonus),
		})
	}

	for _, lang := range apiRace.Languages {
		race.Grants = append(race.Grants, internalDnd5e.GrantRecord{
			Domain: internalDnd5e.DomainLanguage,
			Target: lang.Key,
		})
	}

	for _, prof := range apiRace.StartingProficiencies {
		subtype, target := classifyProficiency(prof.Key, prof.Name)
		race.Grants = append(race.Grants, internalDnd5e.GrantRecord{
			Domain:  internalDnd5e.DomainProficiency,
			Subtype: subtype,
			Target:  target,
		})
	}

	if grant, ok := convertChoice(apiRace.LanguageOptions, internalDnd5e.DomainLanguage, "language-options"); ok {
		race.Grants = append(race.Grants, grant)
	}
	if grant, ok := convertChoice(apiRace.StartingProficiencyOptions, internalDnd5e.DomainProficiency, "proficiency-options"); ok {
		race.Grants = append(race.Grants, grant)
	}

	for _, trait := range apiRace.Traits {
		if defenses, ok := defensiveTraits[trait.Name]; ok {
			race.DefensiveTraits = append(race.DefensiveTraits, defenses...)
		}
	}

	return race
}

func convertClass(apiClass *entities.Class) *internalDnd5e.Class {
	class := &internalDnd5e.Class{
		Slug:             apiClass.Key,
		Name:             apiClass.Name,
		HitDie:           int(apiClass.HitDie),
		Caster:           casterTypes[apiClass.Key],
		EquipmentChoices: len(apiClass.StartingEquipmentOptions),
	}

	if class.Caster != internalDnd5e.CasterNone {
		class.Preparation = internalDnd5e.PreparationKnown
		if prep, ok := preparations[apiClass.Key]; ok {
			class.Preparation = prep
		}
	}
	class.SpellcastingAbility = spellcastingAbilities[apiClass.Key]

	if w, ok := startingWealth[apiClass.Key]; ok {
		class.StartingWealth = &internalDnd5e.StartingWealth{
			Dice:       w[0],
			Sides:      w[1],
			Multiplier: w[2],
			Average:    w[0] * (w[1] + 1) * w[2] / 2,
		}
	}

	for _, st := range apiClass.SavingThrows {
		class.Grants = append(class.Grants, internalDnd5e.GrantRecord{
			Domain:  internalDnd5e.DomainProficiency,
			Subtype: internalDnd5e.ProficiencySavingThrow,
			Target:  strings.ToLower(st.Key),
		})
	}

	for _, armor := range apiClass.ArmorProficiencies {
		class.Grants = append(class.Grants, fixedProficiency(internalDnd5e.ProficiencyArmor, armor.Name))
	}
	for _, weapon := range apiClass.WeaponProficiencies {
		class.Grants = append(class.Grants, fixedProficiency(internalDnd5e.ProficiencyWeapon, weapon.Name))
	}
	for _, tool := range apiClass.ToolProficiencies {
		class.Grants = append(class.Grants, fixedProficiency(internalDnd5e.ProficiencyTool, tool.Name))
	}

	for i, choice := range apiClass.ProficiencyChoices {
		group := "class-skills"
		if i > 0 {
			group = generateSlug(choice.Description)
		}
		if grant, ok := convertChoice(choice, internalDnd5e.DomainProficiency, group); ok {
			class.Grants = append(class.Grants, grant)
		}
	}

	for _, eq := range apiClass.StartingEquipment {
		if eq.Equipment == nil {
			continue
		}
		class.StartingItems = append(class.StartingItems, internalDnd5e.StartingItem{
			Item:     eq.Equipment.Key,
			Quantity: int(eq.Quantity),
		})
	}

	return class
}

func fixedProficiency(subtype, name string) internalDnd5e.GrantRecord {
	return internalDnd5e.GrantRecord{
		Domain:  internalDnd5e.DomainProficiency,
		Subtype: subtype,
		Target:  generateSlug(name),
	}
}

// convertChoice turns an API choice into a choice grant with an explicit
// option list. Proficiency choices take their subtype from the options.
func convertChoice(choice *entities.ChoiceOption, domain internalDnd5e.Domain, group string) (internalDnd5e.GrantRecord, bool) {
	if choice == nil || choice.ChoiceCount < 1 {
		return internalDnd5e.GrantRecord{}, false
	}

	grant := internalDnd5e.GrantRecord{
		Domain:      domain,
		IsChoice:    true,
		ChoiceGroup: group,
		Quantity:    int(choice.ChoiceCount),
	}
	if choice.OptionList == nil {
		return grant, true
	}

	for _, option := range choice.OptionList.Options {
		ref, ok := option.(*entities.ReferenceOption)
		if !ok || ref.Reference == nil {
			continue
		}
		target := ref.Reference.Key
		if domain == internalDnd5e.DomainProficiency {
			var subtype string
			subtype, target = classifyProficiency(ref.Reference.Key, ref.Reference.Name)
			if grant.Subtype == "" {
				grant.Subtype = subtype
			}
		}
		grant.Options = append(grant.Options, target)
	}

	return grant, true
}

// classifyProficiency splits an API proficiency into subtype and catalog
// slug. Skills arrive as "skill-sleight-of-hand" / "Skill: Sleight of Hand".
func classifyProficiency(key, name string) (string, string) {
	lowerName := strings.ToLower(name)
	switch {
	case strings.HasPrefix(key, "skill-"):
		return internalDnd5e.ProficiencySkill, strings.ReplaceAll(strings.TrimPrefix(key, "skill-"), "-", "_")
	case strings.HasPrefix(key, "saving-throw-"):
		return internalDnd5e.ProficiencySavingThrow, strings.TrimPrefix(key, "saving-throw-")
	case strings.Contains(lowerName, "armor") || strings.Contains(lowerName, "shield"):
		return internalDnd5e.ProficiencyArmor, key
	case strings.Contains(lowerName, "tools") || strings.Contains(lowerName, "supplies") ||
		strings.Contains(lowerName, "kit") || strings.Contains(lowerName, "set"):
		return internalDnd5e.ProficiencyTool, key
	case isInstrument(lowerName):
		return internalDnd5e.ProficiencyInstrument, key
	default:
		return internalDnd5e.ProficiencyWeapon, key
	}
}

var instruments = []string{"bagpipes", "drum", "dulcimer", "flute", "lute", "lyre", "horn", "pan flute", "shawm", "viol"}

func isInstrument(name string) bool {
	for _, instrument := range instruments {
		if strings.Contains(name, instrument) {
			return true
		}
	}
	return false
}

func convertEquipment(equipment dnd5e.EquipmentInterface) *internalDnd5e.Item {
	switch eq := equipment.(type) {
	case *entities.Weapon:
		item := &internalDnd5e.Item{
			Slug:     eq.Key,
			Name:     eq.Name,
			Category: internalDnd5e.ItemWeapon,
			Ranged:   strings.EqualFold(eq.WeaponRange, "Ranged"),
			Weight:   float64(eq.Weight),
		}
		for _, prop := range eq.Properties {
			if prop != nil && strings.EqualFold(prop.Name, "Two-Handed") {
				item.TwoHanded = true
			}
		}
		return item

	case *entities.Armor:
		item := &internalDnd5e.Item{
			Slug:   eq.Key,
			Name:   eq.Name,
			Weight: float64(eq.Weight),
		}
		if eq.ArmorClass != nil {
			item.ArmorClass = int(eq.ArmorClass.Base)
		}
		if strings.EqualFold(eq.ArmorCategory, "Shield") {
			item.Category = internalDnd5e.ItemShield
		} else {
			item.Category = internalDnd5e.ItemArmor
			item.ArmorType = internalDnd5e.ArmorType(strings.ToLower(eq.ArmorCategory))
		}
		return item

	case *entities.Equipment:
		item := &internalDnd5e.Item{
			Slug:     eq.Key,
			Name:     eq.Name,
			Category: internalDnd5e.ItemGear,
			Weight:   float64(eq.Weight),
		}
		if strings.HasSuffix(eq.Key, "-pack") || eq.Key == "backpack" {
			item.Category = internalDnd5e.ItemContainer
		}
		return item
	}

	return nil
}
