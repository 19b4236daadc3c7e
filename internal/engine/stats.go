package engine

import (
	"context"
	"sort"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// ClassInput pairs a character class entry with its catalog rows
type ClassInput struct {
	Level    dnd5e.ClassLevel
	Class    *dnd5e.Class
	Subclass *dnd5e.Class
}

// CalculateCharacterStatsInput is everything the aggregator reads. Feats are
// in acquisition order.
type CalculateCharacterStatsInput struct {
	Character *dnd5e.Character
	RaceChain []*dnd5e.Race
	Classes   []ClassInput
	Feats     []*dnd5e.Feat
	Items     map[string]*dnd5e.Item
}

// CalculateCharacterStatsOutput wraps the stat view
type CalculateCharacterStatsOutput struct {
	Stats *dnd5e.Stats
}

func (e *engine) CalculateCharacterStats(
	_ context.Context,
	input *CalculateCharacterStatsInput,
) (*CalculateCharacterStatsOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	stats, err := ComputeStats(input)
	if err != nil {
		return nil, err
	}
	return &CalculateCharacterStatsOutput{Stats: stats}, nil
}

// selectionIndex buckets a character's resolved selections by what they grant
type selectionIndex struct {
	abilityBonus   map[dnd5e.Ability]int
	saves          map[dnd5e.Ability]bool
	skills         map[string]bool
	expertise      map[string]bool
	languages      []string
	proficiencies  map[string][]string
	fightingStyles []string
}

func indexSelections(selections []dnd5e.ResolvedSelection) *selectionIndex {
	idx := &selectionIndex{
		abilityBonus:  make(map[dnd5e.Ability]int),
		saves:         make(map[dnd5e.Ability]bool),
		skills:        make(map[string]bool),
		expertise:     make(map[string]bool),
		proficiencies: make(map[string][]string),
	}
	seenLang := make(map[string]bool)
	seenProf := make(map[string]bool)
	seenStyle := make(map[string]bool)

	for _, sel := range selections {
		switch sel.Domain {
		case dnd5e.DomainAbilityScore:
			idx.abilityBonus[dnd5e.Ability(sel.Target)] += sel.Value
		case dnd5e.DomainLanguage:
			if !seenLang[sel.Target] {
				seenLang[sel.Target] = true
				idx.languages = append(idx.languages, sel.Target)
			}
		case dnd5e.DomainProficiency:
			switch sel.Subtype {
			case dnd5e.ProficiencySavingThrow:
				idx.saves[dnd5e.Ability(sel.Target)] = true
			case dnd5e.ProficiencySkill:
				idx.skills[sel.Target] = true
			}
			key := sel.Subtype + "/" + sel.Target
			if !seenProf[key] {
				seenProf[key] = true
				idx.proficiencies[sel.Subtype] = append(idx.proficiencies[sel.Subtype], sel.Target)
			}
		case dnd5e.DomainExpertise:
			idx.expertise[sel.Target] = true
		case dnd5e.DomainFightingStyle:
			if !seenStyle[sel.Target] {
				seenStyle[sel.Target] = true
				idx.fightingStyles = append(idx.fightingStyles, sel.Target)
			}
		}
	}
	return idx
}

// ComputeStats is the pure stat aggregation
func ComputeStats(input *CalculateCharacterStatsInput) (*dnd5e.Stats, error) {
	char := input.Character
	idx := indexSelections(char.Selections)
	totalLevel := char.TotalLevel()
	pb := ProficiencyBonus(totalLevel)

	stats := &dnd5e.Stats{
		CharacterID:      char.ID,
		TotalLevel:       totalLevel,
		ProficiencyBonus: pb,
		Abilities:        make(map[dnd5e.Ability]dnd5e.AbilityStat, len(dnd5e.Abilities)),
		SavingThrows:     make(map[dnd5e.Ability]dnd5e.SavingThrow, len(dnd5e.Abilities)),
		Skills:           make(map[string]dnd5e.SkillStat, len(dnd5e.SkillAbilities)),
		Languages:        idx.languages,
		Proficiencies:    idx.proficiencies,
		FightingStyles:   idx.fightingStyles,
		Currency:         char.Wallet.Lines(),
		DefensiveTraits:  []dnd5e.DefensiveTraitEntry{},
	}

	mods := make(map[dnd5e.Ability]int, len(dnd5e.Abilities))
	for _, ability := range dnd5e.Abilities {
		base := char.AbilityScores[ability]
		bonus := idx.abilityBonus[ability]
		score := base + bonus
		mods[ability] = AbilityModifier(score)
		stats.Abilities[ability] = dnd5e.AbilityStat{
			Base:     base,
			Bonus:    bonus,
			Score:    score,
			Modifier: mods[ability],
		}

		proficient := idx.saves[ability]
		stats.SavingThrows[ability] = dnd5e.SavingThrow{
			Modifier:   mods[ability],
			Proficient: proficient,
			Total:      SkillTotal(mods[ability], pb, proficient, false),
		}
	}

	for skill, ability := range dnd5e.SkillAbilities {
		proficient := idx.skills[skill]
		expertise := proficient && idx.expertise[skill]
		stats.Skills[skill] = dnd5e.SkillStat{
			Ability:    ability,
			Modifier:   mods[ability],
			Proficient: proficient,
			Expertise:  expertise,
			Total:      SkillTotal(mods[ability], pb, proficient, expertise),
		}
	}
	stats.Passive = dnd5e.PassiveScores{
		Perception:    10 + stats.Skills[dnd5e.SkillPerception].Total,
		Investigation: 10 + stats.Skills[dnd5e.SkillInvestigation].Total,
		Insight:       10 + stats.Skills[dnd5e.SkillInsight].Total,
	}

	stats.Initiative = mods[dnd5e.AbilityDexterity]
	strength := stats.Abilities[dnd5e.AbilityStrength].Score
	stats.Carrying.Capacity, stats.Carrying.PushDragLift = CarryingCapacity(strength)

	for _, race := range input.RaceChain {
		if race != nil && race.Speed > 0 {
			stats.Speed = race.Speed
			break
		}
	}

	armor, shield := equippedDefense(char.Equipment, input.Items)
	stats.ArmorClass = ArmorClass(mods[dnd5e.AbilityDexterity], armor, shield, idx.fightingStyles)
	stats.CombatBonuses = FightingStyleBonuses(idx.fightingStyles, armor != nil)

	stats.MaxHP = MaxHitPoints(hitDice(input.Classes), mods[dnd5e.AbilityConstitution])

	applySpellcasting(stats, input.Classes, mods, pb)

	traits, err := collectTraits(input.RaceChain, input.Feats)
	if err != nil {
		return nil, err
	}
	stats.DefensiveTraits = traits

	return stats, nil
}

func equippedDefense(entries []dnd5e.EquipmentEntry, items map[string]*dnd5e.Item) (armor, shield *dnd5e.Item) {
	for _, e := range entries {
		if !e.Equipped || e.IsCustom() {
			continue
		}
		item := items[e.Item]
		if item == nil {
			continue
		}
		switch {
		case e.Location == dnd5e.LocationArmor && item.Category == dnd5e.ItemArmor:
			armor = item
		case e.Location == dnd5e.LocationOffHand && item.Category == dnd5e.ItemShield:
			shield = item
		}
	}
	return armor, shield
}

// hitDice orders the primary class first so it supplies the level 1 die
func hitDice(classes []ClassInput) []HitDieLevel {
	ordered := make([]ClassInput, len(classes))
	copy(ordered, classes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Level.IsPrimary && !ordered[j].Level.IsPrimary
	})

	out := make([]HitDieLevel, 0, len(ordered))
	for _, c := range ordered {
		if c.Class == nil {
			continue
		}
		out = append(out, HitDieLevel{HitDie: c.Class.HitDie, Level: c.Level.Level})
	}
	return out
}

// effectiveCaster lets a subclass grant casting to a non-casting class
func effectiveCaster(c ClassInput) *dnd5e.Class {
	if c.Subclass != nil && c.Subclass.Caster != dnd5e.CasterNone {
		return c.Subclass
	}
	return c.Class
}

func applySpellcasting(stats *dnd5e.Stats, classes []ClassInput, mods map[dnd5e.Ability]int, pb int) {
	var casterLevels []CasterLevel
	var totalPrep *int

	for _, c := range classes {
		caster := effectiveCaster(c)
		if caster == nil || caster.Caster == dnd5e.CasterNone || caster.SpellcastingAbility == "" {
			continue
		}
		level := c.Level.Level
		mod := mods[caster.SpellcastingAbility]
		prep := PreparationLimit(caster, mod, level)

		stats.Spellcasting = append(stats.Spellcasting, dnd5e.ClassSpellcasting{
			Class:            c.Level.Class,
			Ability:          caster.SpellcastingAbility,
			AbilityModifier:  mod,
			SaveDC:           SpellSaveDC(pb, mod),
			AttackBonus:      SpellAttackBonus(pb, mod),
			MaxSpellLevel:    MaxSpellLevel(caster.Caster, level),
			PreparationLimit: prep,
		})

		if prep != nil {
			sum := *prep
			if totalPrep != nil {
				sum += *totalPrep
			}
			totalPrep = &sum
		}

		if caster.Caster == dnd5e.CasterPact {
			stats.PactMagic = PactMagicSlots(level)
			continue
		}
		casterLevels = append(casterLevels, CasterLevel{Caster: caster.Caster, Level: level})
	}

	if slots := MulticlassSpellSlots(casterLevels); len(slots) > 0 {
		stats.SpellSlots = slots
	}
	stats.PreparationLimit = totalPrep
}

// collectTraits lists race traits (subrace overrides parent) then feat
// traits in acquisition order. Same-typed traits from different sources are
// kept as separate entries.
func collectTraits(chain []*dnd5e.Race, feats []*dnd5e.Feat) ([]dnd5e.DefensiveTraitEntry, error) {
	merged, err := MergeRaceChain(chain)
	if err != nil {
		return nil, err
	}

	out := make([]dnd5e.DefensiveTraitEntry, 0, len(merged.Traits))
	for _, t := range merged.Traits {
		out = append(out, traitEntry(t))
	}
	for _, feat := range feats {
		if feat == nil {
			continue
		}
		for _, t := range feat.DefensiveTraits {
			out = append(out, traitEntry(SourcedTrait{Trait: t, Source: feat, SourceName: feat.Name}))
		}
	}
	return out, nil
}

func traitEntry(t SourcedTrait) dnd5e.DefensiveTraitEntry {
	ref := dnd5e.RefOf(t.Source)
	return dnd5e.DefensiveTraitEntry{
		DefensiveTrait: t.Trait,
		Source:         t.SourceName,
		SourceKind:     ref.Kind,
		SourceSlug:     ref.Slug,
	}
}
