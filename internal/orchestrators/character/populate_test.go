package character_test

import (
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	charactersvc "github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

func (s *OrchestratorTestSuite) populate(charID string) *charactersvc.PopulateFixedGrantsOutput {
	out, err := s.orchestrator.PopulateFixedGrants(s.ctx, &charactersvc.PopulateFixedGrantsInput{CharacterID: charID})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestPopulateFixedGrants_Idempotent() {
	char := s.create("half-elf", "noble", primary("fighter", 1))

	first := s.populate(char.ID)
	s.Equal(9, first.Selections)
	s.Equal(2, first.Items)
	s.Equal(25, first.Gold)
	s.Len(first.Character.Selections, 9)
	for _, e := range first.Character.Equipment {
		s.Equal("background:noble", e.Source)
		s.Equal(dnd5e.LocationBackpack, e.Location)
	}

	second := s.populate(char.ID)
	s.Equal(0, second.Selections)
	s.Equal(0, second.Items)
	s.Equal(0, second.Gold)
	s.Len(second.Character.Selections, 9)
	s.Len(second.Character.Equipment, 2)
	s.Equal(25, second.Character.Wallet.Total(dnd5e.CurrencyGold))
}

func (s *OrchestratorTestSuite) TestPopulateFixedGrants_FirstWriterWins() {
	char := s.create("elf", "far-traveler")

	out := s.populate(char.ID)
	s.Equal(5, out.Selections)

	perception := 0
	for _, sel := range out.Character.Selections {
		if sel.Target == dnd5e.SkillPerception {
			perception++
			s.Equal(dnd5e.KindRace, sel.Source, "race is processed before background")
		}
	}
	s.Equal(1, perception)
}

func (s *OrchestratorTestSuite) TestPopulateFixedGrants_MulticlassSkipsSecondarySaves() {
	char := s.create("dwarf", "", primary("fighter", 1), dnd5e.ClassLevel{Class: "rogue", Level: 1})

	out := s.populate(char.ID)
	s.Equal(8, out.Selections)
	for _, sel := range out.Character.Selections {
		if sel.SourceSlug == "rogue" {
			s.NotEqual(dnd5e.ProficiencySavingThrow, sel.Subtype)
		}
	}

	stats := s.stats(char.ID).Stats
	s.True(stats.SavingThrows[dnd5e.AbilityStrength].Proficient)
	s.False(stats.SavingThrows[dnd5e.AbilityDexterity].Proficient)
	s.Contains(stats.Proficiencies[dnd5e.ProficiencyTool], "thieves-tools")
}

func (s *OrchestratorTestSuite) TestPopulateFixedGrants_StatsDoNotDoubleCount() {
	char := s.create("dwarf", "", primary("fighter", 1))
	s.Equal(12, s.stats(char.ID).Stats.Abilities[dnd5e.AbilityConstitution].Score)

	s.populate(char.ID)

	stats := s.stats(char.ID)
	s.False(stats.Cached, "populate invalidates the cache")
	s.Equal(12, stats.Stats.Abilities[dnd5e.AbilityConstitution].Score)
}

func (s *OrchestratorTestSuite) TestPopulateFixedGrants_KeepsResolvedChoices() {
	char := s.create("half-elf", "", primary("fighter", 1))
	s.mustResolve(char.ID, halfElfLanguage, "giant")

	out := s.populate(char.ID)
	s.Contains(choiceIDs(s.pending(char.ID)), halfElfAbilityBonus)
	s.Equal(1+out.Selections, len(out.Character.Selections))
}
