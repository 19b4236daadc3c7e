package engine

import "github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"

const (
	unarmoredBase     = 10
	mediumArmorDexCap = 2
	defaultShieldAC   = 2
	defenseStyleBonus = 1
)

// ArmorClass computes AC from equipped armor and shield. Light armor adds the
// full dexterity modifier, medium caps it at +2, heavy ignores it. The
// Defense fighting style adds 1 while armor is worn.
func ArmorClass(dexMod int, armor, shield *dnd5e.Item, fightingStyles []string) int {
	ac := unarmoredBase + dexMod

	if armor != nil {
		switch armor.ArmorType {
		case dnd5e.ArmorLight:
			ac = armor.ArmorClass + dexMod
		case dnd5e.ArmorMedium:
			ac = armor.ArmorClass + min(dexMod, mediumArmorDexCap)
		case dnd5e.ArmorHeavy:
			ac = armor.ArmorClass
		}
		if hasStyle(fightingStyles, dnd5e.FightingStyleDefense) {
			ac += defenseStyleBonus
		}
	}

	if shield != nil {
		bonus := shield.ArmorClass
		if bonus == 0 {
			bonus = defaultShieldAC
		}
		ac += bonus
	}

	return ac
}

// FightingStyleBonuses reports the flat bonuses from fighting styles.
// ArmorClass is the Defense bonus and only applies when armored.
func FightingStyleBonuses(fightingStyles []string, armored bool) dnd5e.CombatBonuses {
	var bonuses dnd5e.CombatBonuses
	if hasStyle(fightingStyles, dnd5e.FightingStyleArchery) {
		bonuses.RangedAttack = 2
	}
	if hasStyle(fightingStyles, dnd5e.FightingStyleDueling) {
		bonuses.MeleeDamage = 2
	}
	if armored && hasStyle(fightingStyles, dnd5e.FightingStyleDefense) {
		bonuses.ArmorClass = defenseStyleBonus
	}
	return bonuses
}

func hasStyle(styles []string, want string) bool {
	for _, s := range styles {
		if s == want {
			return true
		}
	}
	return false
}

// HitDieLevel is one class's hit die and level, first class first
type HitDieLevel struct {
	HitDie int
	Level  int
}

// MaxHitPoints uses the fixed average: the first class's full die plus
// constitution at level 1, then die/2 + 1 + constitution per later level.
// The result is at least 1.
func MaxHitPoints(classes []HitDieLevel, conMod int) int {
	total := 0
	first := true
	for _, c := range classes {
		for lvl := 0; lvl < c.Level; lvl++ {
			if first {
				total += c.HitDie + conMod
				first = false
				continue
			}
			total += c.HitDie/2 + 1 + conMod
		}
	}
	if total < 1 {
		return 1
	}
	return total
}
