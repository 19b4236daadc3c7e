package engine

import "github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"

// fullCasterSlots[level-1][spellLevel-1] is the slot count
var fullCasterSlots = [20][]int{
	{2},
	{3},
	{4, 2},
	{4, 3},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 2},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 2},
	{4, 3, 3, 3, 2, 1},
	{4, 3, 3, 3, 2, 1},
	{4, 3, 3, 3, 2, 1, 1},
	{4, 3, 3, 3, 2, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 2, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 1, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 1, 1, 1},
	{4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// halfCasterSlots has no slots at level 1
var halfCasterSlots = [20][]int{
	{},
	{2},
	{3},
	{3},
	{4, 2},
	{4, 2},
	{4, 3},
	{4, 3},
	{4, 3, 2},
	{4, 3, 2},
	{4, 3, 3},
	{4, 3, 3},
	{4, 3, 3, 1},
	{4, 3, 3, 1},
	{4, 3, 3, 2},
	{4, 3, 3, 2},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 1},
	{4, 3, 3, 3, 2},
	{4, 3, 3, 3, 2},
}

// pactSlots[level-1] is {slot level, slot count}
var pactSlots = [20][2]int{
	{1, 1}, {1, 2}, {2, 2}, {2, 2}, {3, 2},
	{3, 2}, {4, 2}, {4, 2}, {5, 2}, {5, 2},
	{5, 3}, {5, 3}, {5, 3}, {5, 3}, {5, 3},
	{5, 3}, {5, 4}, {5, 4}, {5, 4}, {5, 4},
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 0
	case level > 20:
		return 20
	default:
		return level
	}
}

func slotMap(row []int) map[int]int {
	slots := make(map[int]int, len(row))
	for i, count := range row {
		if count > 0 {
			slots[i+1] = count
		}
	}
	return slots
}

// SpellSlots returns standard slots by spell level for a single class level.
// Pact casters get none here; see PactMagicSlots.
func SpellSlots(caster dnd5e.CasterType, classLevel int) map[int]int {
	level := clampLevel(classLevel)
	if level == 0 {
		return map[int]int{}
	}
	switch caster {
	case dnd5e.CasterFull:
		return slotMap(fullCasterSlots[level-1])
	case dnd5e.CasterHalf:
		return slotMap(halfCasterSlots[level-1])
	default:
		return map[int]int{}
	}
}

// MulticlassSpellSlots combines standard caster classes by caster level: full
// casters count their whole level, half casters half (rounded down)
func MulticlassSpellSlots(classes []CasterLevel) map[int]int {
	var casters []CasterLevel
	for _, c := range classes {
		if c.Caster == dnd5e.CasterFull || c.Caster == dnd5e.CasterHalf {
			casters = append(casters, c)
		}
	}

	switch len(casters) {
	case 0:
		return map[int]int{}
	case 1:
		return SpellSlots(casters[0].Caster, casters[0].Level)
	}

	casterLevel := 0
	for _, c := range casters {
		if c.Caster == dnd5e.CasterFull {
			casterLevel += c.Level
		} else {
			casterLevel += c.Level / 2
		}
	}
	return SpellSlots(dnd5e.CasterFull, casterLevel)
}

// CasterLevel pairs a caster type with the level of one class
type CasterLevel struct {
	Caster dnd5e.CasterType
	Level  int
}

// PactMagicSlots returns the pact slot pool for a warlock level, or nil
func PactMagicSlots(classLevel int) *dnd5e.PactMagic {
	level := clampLevel(classLevel)
	if level == 0 {
		return nil
	}
	row := pactSlots[level-1]
	return &dnd5e.PactMagic{SlotLevel: row[0], Slots: row[1]}
}

// MaxSpellLevel is the highest spell level one class can learn at its own
// level, read from the single-class progression
func MaxSpellLevel(caster dnd5e.CasterType, classLevel int) int {
	if caster == dnd5e.CasterPact {
		if pact := PactMagicSlots(classLevel); pact != nil {
			return pact.SlotLevel
		}
		return 0
	}

	highest := 0
	for spellLevel := range SpellSlots(caster, classLevel) {
		if spellLevel > highest {
			highest = spellLevel
		}
	}
	return highest
}

// PreparationLimit is nil for known casters and non-casters. Prepared full
// casters prepare modifier + level, prepared half casters modifier + half
// level. The limit never drops below 1.
func PreparationLimit(class *dnd5e.Class, castingMod, classLevel int) *int {
	if class == nil || class.Preparation != dnd5e.PreparationPrepared {
		return nil
	}

	var limit int
	switch class.Caster {
	case dnd5e.CasterFull:
		limit = castingMod + classLevel
	case dnd5e.CasterHalf:
		limit = castingMod + classLevel/2
	default:
		return nil
	}
	if limit < 1 {
		limit = 1
	}
	return &limit
}
