package engine

// AbilityModifier is floor((score - 10) / 2). Go division truncates toward
// zero, so odd scores below 10 need the adjustment.
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 && diff%2 != 0 {
		return diff/2 - 1
	}
	return diff / 2
}

// ProficiencyBonus is keyed off total character level across all classes
func ProficiencyBonus(totalLevel int) int {
	if totalLevel < 1 {
		return 2
	}
	return 2 + (totalLevel-1)/4
}

// SkillTotal is the check modifier for a skill
func SkillTotal(abilityMod, proficiencyBonus int, proficient, expertise bool) int {
	total := abilityMod
	if proficient {
		total += proficiencyBonus
	}
	if expertise {
		total += proficiencyBonus
	}
	return total
}

// PassiveScore is 10 plus the skill check modifier
func PassiveScore(abilityMod, proficiencyBonus int, proficient, expertise bool) int {
	return 10 + SkillTotal(abilityMod, proficiencyBonus, proficient, expertise)
}

// CarryingCapacity returns carry capacity and push/drag/lift in pounds
func CarryingCapacity(strength int) (capacity, pushDragLift int) {
	return strength * 15, strength * 30
}

// SpellSaveDC is 8 + proficiency + casting modifier
func SpellSaveDC(proficiencyBonus, castingMod int) int {
	return 8 + proficiencyBonus + castingMod
}

// SpellAttackBonus is proficiency + casting modifier
func SpellAttackBonus(proficiencyBonus, castingMod int) int {
	return proficiencyBonus + castingMod
}
