package character_test

import (
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	charactersvc "github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

func (s *OrchestratorTestSuite) TestListPendingChoices_OneDescriptorPerSourceGroup() {
	char := s.create("half-elf", "noble", primary("fighter", 1))

	choices := s.pending(char.ID)
	s.ElementsMatch([]string{
		halfElfAbilityBonus,
		halfElfLanguage,
		choiceID(dnd5e.DomainProficiency, dnd5e.KindRace, "half-elf", 1, "skill-versatility"),
		choiceID(dnd5e.DomainProficiency, dnd5e.KindBackground, "noble", 1, "gaming-set"),
		choiceID(dnd5e.DomainLanguage, dnd5e.KindBackground, "noble", 1, "language"),
		choiceID(dnd5e.DomainProficiency, dnd5e.KindClass, "fighter", 1, "skills"),
		fighterEquipment,
		fighterStyle,
	}, choiceIDs(choices))

	for _, c := range choices {
		s.True(c.Required)
		s.Equal(c.Quantity, c.Remaining, "%s starts unresolved", c.ID)
		s.NotNil(c.Selected)
		s.Empty(c.Selected)
	}
}

func (s *OrchestratorTestSuite) TestListPendingChoices_AbilityBonusDescriptor() {
	char := s.create("half-elf", "", primary("fighter", 1))

	out, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    halfElfAbilityBonus,
	})
	s.Require().NoError(err)

	c := out.Choice
	s.Equal(dnd5e.DomainAbilityScore, c.Domain)
	s.Equal("Half-Elf", c.SourceName)
	s.Equal(2, c.Quantity)
	s.Equal([]string{"str", "dex", "con", "int", "wis"}, optionValues(c.Options))
	s.Equal(1, c.Metadata["bonus"])
	s.Equal(true, c.Metadata["distinct"])
}

func (s *OrchestratorTestSuite) TestListPendingChoices_ExcludesTargetsHeldElsewhere() {
	char := s.create("half-elf", "noble", primary("fighter", 1))

	lang, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    halfElfLanguage,
	})
	s.Require().NoError(err)
	values := optionValues(lang.Choice.Options)
	s.Len(values, 10)
	s.NotContains(values, "common")
	s.NotContains(values, "elvish")

	// Noble grants history and persuasion whether or not they were populated
	skills, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    choiceID(dnd5e.DomainProficiency, dnd5e.KindClass, "fighter", 1, "skills"),
	})
	s.Require().NoError(err)
	values = optionValues(skills.Choice.Options)
	s.Len(values, 7)
	s.NotContains(values, dnd5e.SkillHistory)

	versatility, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    choiceID(dnd5e.DomainProficiency, dnd5e.KindRace, "half-elf", 1, "skill-versatility"),
	})
	s.Require().NoError(err)
	values = optionValues(versatility.Choice.Options)
	s.Len(values, len(dnd5e.SkillAbilities)-2)
	s.NotContains(values, dnd5e.SkillPersuasion)
}

func (s *OrchestratorTestSuite) TestListPendingChoices_ResolvedElsewhereIsExcluded() {
	char := s.create("half-elf", "acolyte", primary("fighter", 1))
	acolyteLanguages := choiceID(dnd5e.DomainLanguage, dnd5e.KindBackground, "acolyte", 1, "languages")
	s.mustResolve(char.ID, acolyteLanguages, "giant", "orc")

	out, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    halfElfLanguage,
	})
	s.Require().NoError(err)
	values := optionValues(out.Choice.Options)
	s.NotContains(values, "giant")
	s.NotContains(values, "orc")

	// The group's own picks stay in its options so it can be re-resolved
	again, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    acolyteLanguages,
	})
	s.Require().NoError(err)
	s.Contains(optionValues(again.Choice.Options), "giant")
}

func (s *OrchestratorTestSuite) TestListPendingChoices_SubraceOverridesParentGroup() {
	char := s.create("high-elf", "")

	choices := s.pending(char.ID)
	s.Equal([]string{
		choiceID(dnd5e.DomainLanguage, dnd5e.KindRace, "high-elf", 1, "bonus-language"),
	}, choiceIDs(choices))
	s.Equal(2, choices[0].Quantity)

	stats := s.stats(char.ID).Stats
	s.Equal(12, stats.Abilities[dnd5e.AbilityDexterity].Score, "parent fixed grants still apply")
	s.Equal(11, stats.Abilities[dnd5e.AbilityIntelligence].Score)
}

func (s *OrchestratorTestSuite) TestListPendingChoices_SubraceInheritsUnchangedParentGroups() {
	char := s.create("wood-elf", "")

	s.Equal([]string{
		choiceID(dnd5e.DomainLanguage, dnd5e.KindRace, "elf", 1, "bonus-language"),
	}, choiceIDs(s.pending(char.ID)))
}

func (s *OrchestratorTestSuite) TestListPendingChoices_DomainFilter() {
	char := s.create("half-elf", "noble", primary("fighter", 1))

	out, err := s.orchestrator.ListPendingChoices(s.ctx, &charactersvc.ListPendingChoicesInput{
		CharacterID: char.ID,
		Domain:      dnd5e.DomainLanguage,
	})
	s.Require().NoError(err)
	s.ElementsMatch([]string{
		halfElfLanguage,
		choiceID(dnd5e.DomainLanguage, dnd5e.KindBackground, "noble", 1, "language"),
	}, choiceIDs(out.Choices))

	_, err = s.orchestrator.ListPendingChoices(s.ctx, &charactersvc.ListPendingChoicesInput{
		CharacterID: char.ID,
		Domain:      "spells",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListPendingChoices_IncludeResolved() {
	char := s.create("half-elf", "", primary("fighter", 1))
	s.mustResolve(char.ID, halfElfLanguage, "giant")

	s.NotContains(choiceIDs(s.pending(char.ID)), halfElfLanguage)

	out, err := s.orchestrator.ListPendingChoices(s.ctx, &charactersvc.ListPendingChoicesInput{
		CharacterID:     char.ID,
		IncludeResolved: true,
	})
	s.Require().NoError(err)

	var resolved *dnd5e.PendingChoice
	for _, c := range out.Choices {
		if c.ID == halfElfLanguage {
			resolved = c
		}
	}
	s.Require().NotNil(resolved)
	s.Equal(0, resolved.Remaining)
	s.Equal([]string{"giant"}, resolved.Selected)
}

func (s *OrchestratorTestSuite) TestListPendingChoices_LevelGating() {
	char := s.create("dwarf", "", primary("fighter", 3))
	ids := choiceIDs(s.pending(char.ID))
	s.NotContains(ids, fighterASI)
	s.NotContains(ids, fighterEquipment, "equipment mode is a level 1 choice")

	_, err := s.orchestrator.UpdateClasses(s.ctx, &charactersvc.UpdateClassesInput{
		CharacterID: char.ID,
		Classes:     []dnd5e.ClassLevel{primary("fighter", 4)},
	})
	s.Require().NoError(err)

	out, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterASI,
	})
	s.Require().NoError(err)
	s.Equal(4, out.Choice.LevelGranted)
	s.Equal(dnd5e.KindClassFeature, out.Choice.Source)
}

func (s *OrchestratorTestSuite) TestListPendingChoices_Multiclass() {
	char := s.create("dwarf", "", primary("fighter", 1), dnd5e.ClassLevel{Class: "wizard", Level: 1})

	ids := choiceIDs(s.pending(char.ID))
	s.Contains(ids, choiceID(dnd5e.DomainProficiency, dnd5e.KindClass, "fighter", 1, "skills"))
	s.Contains(ids, choiceID(dnd5e.DomainProficiency, dnd5e.KindClass, "wizard", 1, "skills"))
	s.NotContains(ids, fighterEquipment, "total level 2 has no equipment mode")
	s.NotContains(ids, choiceID(dnd5e.DomainEquipmentMode, dnd5e.KindClass, "wizard", 1, "equipment-mode"))
}

func (s *OrchestratorTestSuite) TestGetPendingChoice_LookupVariant() {
	char := s.create("dwarf", "noble", primary("fighter", 1))
	gamingSet := choiceID(dnd5e.DomainProficiency, dnd5e.KindBackground, "noble", 1, "gaming-set")

	out, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    gamingSet,
	})
	s.Require().NoError(err)

	lookup, ok := out.Choice.Options.(dnd5e.LookupOptions)
	s.Require().True(ok, "subcategory choices are presented as a lookup")
	s.Equal(dnd5e.ProficiencyTool, lookup.ProficiencyType)
	s.Equal("gaming-set", lookup.Subcategory)
	s.Equal("proficiencies?subcategory=gaming-set&type=tool", lookup.Endpoint)
	s.Equal(dnd5e.ProficiencyTool, out.Choice.Metadata["proficiency_type"])
	s.Equal("gaming-set", out.Choice.Metadata["subcategory"])

	_, err = s.resolve(char.ID, gamingSet, "lute")
	s.True(errors.HasReason(err, errors.ReasonInvalidOption), "lute is not a gaming set")

	s.mustResolve(char.ID, gamingSet, "dice-set")
	stats := s.stats(char.ID).Stats
	s.Contains(stats.Proficiencies[dnd5e.ProficiencyTool], "dice-set")
}

func (s *OrchestratorTestSuite) TestGetPendingChoice_NotFound() {
	char := s.create("dwarf", "", primary("fighter", 1))

	for _, id := range []string{
		"not-an-id",
		"language:race:dwarf:x:bonus",
		"spells:race:dwarf:1:bonus",
		halfElfLanguage,
	} {
		_, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
			CharacterID: char.ID,
			ChoiceID:    id,
		})
		s.Require().Error(err, id)
		s.True(errors.IsNotFound(err), id)
		s.True(errors.HasReason(err, errors.ReasonChoiceNotFound), id)
	}
}

func (s *OrchestratorTestSuite) TestGetPendingChoice_EquipmentModeMetadata() {
	char := s.create("dwarf", "", primary("fighter", 1))

	out, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterEquipment,
	})
	s.Require().NoError(err)
	s.Equal([]string{dnd5e.EquipmentModeEquipment, dnd5e.EquipmentModeGold}, optionValues(out.Choice.Options))
	s.Equal(10000, out.Choice.Metadata["max_gold_amount"])
}
