package character_test

import (
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	charactersvc "github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

func entryFor(char *dnd5e.Character, item string) *dnd5e.EquipmentEntry {
	for i := range char.Equipment {
		if char.Equipment[i].Item == item {
			return &char.Equipment[i]
		}
	}
	return nil
}

func (s *OrchestratorTestSuite) TestGetStats_CachesUntilNextWrite() {
	char := s.create("dwarf", "", primary("fighter", 1))

	first := s.stats(char.ID)
	s.False(first.Cached)
	s.Equal(char.ID, first.Stats.CharacterID)

	second := s.stats(char.ID)
	s.True(second.Cached)
	s.Equal(first.Stats.MaxHP, second.Stats.MaxHP)

	s.addItem(char.ID, "rope")
	s.False(s.stats(char.ID).Cached)
}

func (s *OrchestratorTestSuite) TestGetStats_Baseline() {
	char := s.create("dwarf", "", primary("fighter", 1))

	stats := s.stats(char.ID).Stats
	s.Equal(1, stats.TotalLevel)
	s.Equal(2, stats.ProficiencyBonus)
	s.Equal(12, stats.Abilities[dnd5e.AbilityConstitution].Score)
	s.Equal(1, stats.Abilities[dnd5e.AbilityConstitution].Modifier)
	s.Equal(11, stats.MaxHP, "d10 plus constitution")
	s.Equal(25, stats.Speed)
	s.Equal(10, stats.ArmorClass)
	s.ElementsMatch([]string{"common", "dwarvish"}, stats.Languages)

	var poison bool
	for _, t := range stats.DefensiveTraits {
		if t.Kind == dnd5e.TraitResistance && t.Type == "poison" {
			poison = true
			s.Equal(dnd5e.KindRace, t.SourceKind)
		}
	}
	s.True(poison)
}

func (s *OrchestratorTestSuite) TestGetStats_ArmorClass() {
	char := s.create("dwarf", "", primary("fighter", 1))
	s.mustResolve(char.ID, fighterEquipment, dnd5e.EquipmentModeEquipment)

	held := s.get(char.ID)
	mail := entryFor(held, "chain-mail")
	shield := entryFor(held, "shield")
	s.Require().NotNil(mail)
	s.Require().NotNil(shield)

	s.mustMove(char.ID, mail.ID, dnd5e.LocationArmor)
	s.Equal(16, s.stats(char.ID).Stats.ArmorClass)

	s.mustMove(char.ID, shield.ID, dnd5e.LocationOffHand)
	s.Equal(18, s.stats(char.ID).Stats.ArmorClass)

	s.mustResolve(char.ID, fighterStyle, dnd5e.FightingStyleDefense)
	stats := s.stats(char.ID)
	s.False(stats.Cached)
	s.Equal(19, stats.Stats.ArmorClass)
	s.Equal(1, stats.Stats.CombatBonuses.ArmorClass)

	// Defense needs armor on
	s.mustMove(char.ID, mail.ID, dnd5e.LocationBackpack)
	s.Equal(12, s.stats(char.ID).Stats.ArmorClass)
}

func (s *OrchestratorTestSuite) TestGetStats_CacheOutage() {
	char := s.create("dwarf", "", primary("fighter", 1))

	s.statsMR.SetError("cache unavailable")
	s.mustResolve(char.ID, fighterStyle, dnd5e.FightingStyleDefense)

	out := s.stats(char.ID)
	s.False(out.Cached)
	s.Equal([]string{dnd5e.FightingStyleDefense}, out.Stats.FightingStyles)

	s.statsMR.SetError("")
	s.False(s.stats(char.ID).Cached)
	s.True(s.stats(char.ID).Cached)
}

func (s *OrchestratorTestSuite) TestGetStats_Validation() {
	_, err := s.orchestrator.GetStats(s.ctx, &charactersvc.GetStatsInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.GetStats(s.ctx, &charactersvc.GetStatsInput{CharacterID: "missing"})
	s.True(errors.IsNotFound(err))
}
