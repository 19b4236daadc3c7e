package character_test

import (
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	charactersvc "github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

func intPtr(v int) *int {
	return &v
}

func (s *OrchestratorTestSuite) TestResolveChoice_DuplicateAbilityRejected() {
	char := s.create("half-elf", "", primary("fighter", 1))

	_, err := s.resolve(char.ID, halfElfAbilityBonus, "str", "str")
	s.Require().Error(err)
	s.True(errors.IsUnprocessable(err))
	s.True(errors.HasReason(err, errors.ReasonDuplicateSelection))

	s.Empty(s.get(char.ID).Selections, "a rejected selection writes nothing")
}

func (s *OrchestratorTestSuite) TestResolveChoice_AbilityBonusFeedsStats() {
	char := s.create("half-elf", "", primary("fighter", 1))

	out := s.mustResolve(char.ID, halfElfAbilityBonus, "str", "dex")
	s.Equal(0, out.Choice.Remaining)
	s.Equal([]string{"str", "dex"}, out.Choice.Selected)

	stats := s.stats(char.ID).Stats
	s.Equal(11, stats.Abilities[dnd5e.AbilityStrength].Score)
	s.Equal(11, stats.Abilities[dnd5e.AbilityDexterity].Score)
	s.Equal(12, stats.Abilities[dnd5e.AbilityCharisma].Score)
	s.Equal(10, stats.Abilities[dnd5e.AbilityConstitution].Score)
}

func (s *OrchestratorTestSuite) TestResolveChoice_ValidationOrder() {
	char := s.create("half-elf", "", primary("fighter", 1))

	testCases := []struct {
		name     string
		selected []string
		reason   errors.Reason
	}{
		{name: "empty", selected: nil, reason: errors.ReasonEmptySelection},
		{name: "too few", selected: []string{"str"}, reason: errors.ReasonInvalidQuantity},
		{name: "quantity before duplicate", selected: []string{"str", "str", "dex"}, reason: errors.ReasonInvalidQuantity},
		{name: "not an option", selected: []string{"str", "cha"}, reason: errors.ReasonInvalidOption},
		{name: "unknown ability", selected: []string{"str", "luck"}, reason: errors.ReasonInvalidOption},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.resolve(char.ID, halfElfAbilityBonus, tc.selected...)
			s.Require().Error(err)
			s.Equal(tc.reason, errors.GetReason(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestResolveChoice_StackingAbilityBonusesAllowDuplicates() {
	char := s.create("variant-human", "", primary("fighter", 1))
	humanBonus := choiceID(dnd5e.DomainAbilityScore, dnd5e.KindRace, "variant-human", 1, "ability-bonus")

	s.mustResolve(char.ID, humanBonus, "str", "str")
	s.Equal(12, s.stats(char.ID).Stats.Abilities[dnd5e.AbilityStrength].Score)
}

func (s *OrchestratorTestSuite) TestResolveChoice_ReplacesPreviousSelection() {
	char := s.create("half-elf", "", primary("fighter", 1))

	s.mustResolve(char.ID, halfElfLanguage, "giant")
	out := s.mustResolve(char.ID, halfElfLanguage, "orc")
	s.Equal([]string{"orc"}, out.Choice.Selected)

	var languages []string
	for _, sel := range out.Character.Selections {
		if sel.Domain == dnd5e.DomainLanguage {
			languages = append(languages, sel.Target)
		}
	}
	s.Equal([]string{"orc"}, languages)
}

func (s *OrchestratorTestSuite) TestResolveChoice_KnownLanguageRejected() {
	char := s.create("half-elf", "", primary("fighter", 1))

	_, err := s.resolve(char.ID, halfElfLanguage, "elvish")
	s.Require().Error(err)
	s.True(errors.HasReason(err, errors.ReasonInvalidOption))
}

func (s *OrchestratorTestSuite) TestResolveChoice_UniqueDomainsRejectRepeats() {
	char := s.create("dwarf", "acolyte", primary("fighter", 1))
	acolyteLanguages := choiceID(dnd5e.DomainLanguage, dnd5e.KindBackground, "acolyte", 1, "languages")

	_, err := s.resolve(char.ID, acolyteLanguages, "giant", "giant")
	s.Require().Error(err)
	s.True(errors.HasReason(err, errors.ReasonDuplicateSelection))
}

func (s *OrchestratorTestSuite) TestResolveChoice_UnknownChoice() {
	char := s.create("dwarf", "", primary("fighter", 1))

	_, err := s.resolve(char.ID, halfElfLanguage, "giant")
	s.Require().Error(err)
	s.True(errors.HasReason(err, errors.ReasonChoiceNotFound))

	_, err = s.resolve("missing", halfElfLanguage, "giant")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.ResolveChoice(s.ctx, &charactersvc.ResolveChoiceInput{CharacterID: char.ID})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUndoChoice() {
	char := s.create("half-elf", "", primary("fighter", 1))
	s.mustResolve(char.ID, halfElfAbilityBonus, "str", "dex")

	out, err := s.orchestrator.UndoChoice(s.ctx, &charactersvc.UndoChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    halfElfAbilityBonus,
	})
	s.Require().NoError(err)
	s.Equal(2, out.Removed)
	s.Equal(2, out.Choice.Remaining)
	s.Empty(out.Character.Selections)

	stats := s.stats(char.ID)
	s.False(stats.Cached)
	s.Equal(10, stats.Stats.Abilities[dnd5e.AbilityStrength].Score)
}

func (s *OrchestratorTestSuite) TestUndoChoice_NothingToUndo() {
	char := s.create("half-elf", "", primary("fighter", 1))

	out, err := s.orchestrator.UndoChoice(s.ctx, &charactersvc.UndoChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    halfElfLanguage,
	})
	s.Require().NoError(err)
	s.Equal(0, out.Removed)
	s.Equal(1, out.Choice.Remaining)
}

func (s *OrchestratorTestSuite) TestEquipmentMode_GoldUndoRestoresBackgroundGold() {
	char := s.create("dwarf", "noble", primary("fighter", 1))

	pop, err := s.orchestrator.PopulateFixedGrants(s.ctx, &charactersvc.PopulateFixedGrantsInput{CharacterID: char.ID})
	s.Require().NoError(err)
	s.Equal(25, pop.Gold)

	out, err := s.orchestrator.ResolveChoice(s.ctx, &charactersvc.ResolveChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterEquipment,
		Selected:    []string{dnd5e.EquipmentModeGold},
		GoldAmount:  intPtr(130),
	})
	s.Require().NoError(err)
	s.Equal(155, out.Character.Wallet.Total(dnd5e.CurrencyGold))
	s.Require().NotNil(out.Character.EquipmentMode)
	s.Equal(130, out.Character.EquipmentMode.GoldAmount)

	stats := s.stats(char.ID).Stats
	s.Equal([]dnd5e.CurrencyLine{{Currency: dnd5e.CurrencyGold, Amount: 155}}, stats.Currency)

	undo, err := s.orchestrator.UndoChoice(s.ctx, &charactersvc.UndoChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterEquipment,
	})
	s.Require().NoError(err)
	s.Equal(25, undo.Character.Wallet.Total(dnd5e.CurrencyGold))
	s.Nil(undo.Character.EquipmentMode)
}

func (s *OrchestratorTestSuite) TestEquipmentMode_EquipmentThenGold() {
	char := s.create("dwarf", "", primary("fighter", 1))

	out := s.mustResolve(char.ID, fighterEquipment, dnd5e.EquipmentModeEquipment)
	s.Require().Len(out.Character.Equipment, 3)
	for _, e := range out.Character.Equipment {
		s.Equal(dnd5e.LocationBackpack, e.Location)
		s.Equal("class:fighter", e.Source)
	}
	s.Equal(0, out.Character.Wallet.Total(dnd5e.CurrencyGold))

	// Switching takes the kit back and pays the catalog average
	out = s.mustResolve(char.ID, fighterEquipment, dnd5e.EquipmentModeGold)
	s.Empty(out.Character.Equipment)
	s.Equal(125, out.Character.Wallet.Total(dnd5e.CurrencyGold))
	s.Equal(dnd5e.EquipmentModeGold, out.Character.EquipmentMode.Mode)
}

func (s *OrchestratorTestSuite) TestEquipmentMode_RollGold() {
	char := s.create("dwarf", "", primary("fighter", 1))

	out, err := s.orchestrator.ResolveChoice(s.ctx, &charactersvc.ResolveChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterEquipment,
		Selected:    []string{dnd5e.EquipmentModeGold},
		RollGold:    true,
	})
	s.Require().NoError(err)
	s.Equal(150, out.Character.Wallet.Total(dnd5e.CurrencyGold), "5d4 of threes times 10")
}

func (s *OrchestratorTestSuite) TestEquipmentMode_InvalidRequests() {
	char := s.create("dwarf", "", primary("fighter", 1))

	testCases := []struct {
		name     string
		selected string
		amount   *int
		roll     bool
		check    func(error) bool
	}{
		{name: "zero gold", selected: dnd5e.EquipmentModeGold, amount: intPtr(0), check: func(err error) bool {
			return errors.HasReason(err, errors.ReasonInvalidAmount)
		}},
		{name: "too much gold", selected: dnd5e.EquipmentModeGold, amount: intPtr(10001), check: func(err error) bool {
			return errors.HasReason(err, errors.ReasonInvalidAmount)
		}},
		{name: "amount and roll", selected: dnd5e.EquipmentModeGold, amount: intPtr(50), roll: true, check: errors.IsInvalidArgument},
		{name: "amount with equipment", selected: dnd5e.EquipmentModeEquipment, amount: intPtr(50), check: errors.IsInvalidArgument},
		{name: "roll with equipment", selected: dnd5e.EquipmentModeEquipment, roll: true, check: errors.IsInvalidArgument},
		{name: "unknown mode", selected: "both", check: func(err error) bool {
			return errors.HasReason(err, errors.ReasonInvalidOption)
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.ResolveChoice(s.ctx, &charactersvc.ResolveChoiceInput{
				CharacterID: char.ID,
				ChoiceID:    fighterEquipment,
				Selected:    []string{tc.selected},
				GoldAmount:  tc.amount,
				RollGold:    tc.roll,
			})
			s.Require().Error(err)
			s.True(tc.check(err), "got %v", err)

			got := s.get(char.ID)
			s.Nil(got.EquipmentMode)
			s.Empty(got.Equipment)
			s.Equal(0, got.Wallet.Total(dnd5e.CurrencyGold))
		})
	}
}

func (s *OrchestratorTestSuite) TestEquipmentMode_SurvivesLevelUp() {
	char := s.create("dwarf", "", primary("fighter", 1))
	s.mustResolve(char.ID, fighterEquipment, dnd5e.EquipmentModeEquipment)

	out, err := s.orchestrator.UpdateClasses(s.ctx, &charactersvc.UpdateClassesInput{
		CharacterID: char.ID,
		Classes:     []dnd5e.ClassLevel{primary("fighter", 2)},
	})
	s.Require().NoError(err)
	s.Equal(0, out.Dropped)
	s.Len(out.Character.Equipment, 3)
}

func (s *OrchestratorTestSuite) TestEquipmentMode_UndoAfterLevelUp() {
	char := s.create("dwarf", "noble", primary("fighter", 1))

	_, err := s.orchestrator.PopulateFixedGrants(s.ctx, &charactersvc.PopulateFixedGrantsInput{CharacterID: char.ID})
	s.Require().NoError(err)

	_, err = s.orchestrator.ResolveChoice(s.ctx, &charactersvc.ResolveChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterEquipment,
		Selected:    []string{dnd5e.EquipmentModeGold},
		GoldAmount:  intPtr(130),
	})
	s.Require().NoError(err)

	_, err = s.orchestrator.UpdateClasses(s.ctx, &charactersvc.UpdateClassesInput{
		CharacterID: char.ID,
		Classes:     []dnd5e.ClassLevel{primary("fighter", 2)},
	})
	s.Require().NoError(err)

	undo, err := s.orchestrator.UndoChoice(s.ctx, &charactersvc.UndoChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterEquipment,
	})
	s.Require().NoError(err)
	s.Equal(1, undo.Removed)
	s.Require().NotNil(undo.Choice)
	s.Equal(fighterEquipment, undo.Choice.ID)
	s.Equal(1, undo.Choice.Remaining)
	s.Empty(undo.Choice.Selected)

	got := s.get(char.ID)
	s.Equal(25, got.Wallet.Total(dnd5e.CurrencyGold))
	s.Nil(got.EquipmentMode)
	s.NotContains(choiceIDs(s.pending(char.ID)), fighterEquipment, "not offered again past level 1")
}

func (s *OrchestratorTestSuite) TestFeatSelectionAttachesGrantingEntity() {
	char := s.create("variant-human", "", primary("fighter", 1))
	bonusFeat := choiceID(dnd5e.DomainFeat, dnd5e.KindRace, "variant-human", 1, "bonus-feat")
	linguistLanguages := choiceID(dnd5e.DomainLanguage, dnd5e.KindFeat, "linguist", 1, "languages")

	s.NotContains(choiceIDs(s.pending(char.ID)), linguistLanguages)

	s.mustResolve(char.ID, bonusFeat, "linguist")
	s.Contains(choiceIDs(s.pending(char.ID)), linguistLanguages)
	s.mustResolve(char.ID, linguistLanguages, "giant", "orc", "goblin")

	stats := s.stats(char.ID).Stats
	s.Equal(11, stats.Abilities[dnd5e.AbilityIntelligence].Score, "linguist fixed bonus applies unpopulated")
	s.Contains(stats.Languages, "goblin")

	undo, err := s.orchestrator.UndoChoice(s.ctx, &charactersvc.UndoChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    bonusFeat,
	})
	s.Require().NoError(err)
	s.Equal(4, undo.Removed, "the feat and everything it granted")
	s.Equal(0, countSource(undo.Character, dnd5e.KindFeat, "linguist"))

	_, err = s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    linguistLanguages,
	})
	s.True(errors.HasReason(err, errors.ReasonChoiceNotFound))
	s.Equal(10, s.stats(char.ID).Stats.Abilities[dnd5e.AbilityIntelligence].Score)
}

func (s *OrchestratorTestSuite) TestFeatReplacementDropsOldFeatGrants() {
	char := s.create("variant-human", "", primary("fighter", 1))
	bonusFeat := choiceID(dnd5e.DomainFeat, dnd5e.KindRace, "variant-human", 1, "bonus-feat")

	s.mustResolve(char.ID, bonusFeat, "linguist")
	s.mustResolve(char.ID, choiceID(dnd5e.DomainLanguage, dnd5e.KindFeat, "linguist", 1, "languages"),
		"giant", "orc", "goblin")

	out := s.mustResolve(char.ID, bonusFeat, "skilled")
	s.Equal(0, countSource(out.Character, dnd5e.KindFeat, "linguist"))
	s.Contains(choiceIDs(s.pending(char.ID)),
		choiceID(dnd5e.DomainProficiency, dnd5e.KindFeat, "skilled", 1, "skills"))
}

func (s *OrchestratorTestSuite) TestExpertiseDrawsFromProficientSkills() {
	char := s.create("dwarf", "", primary("rogue", 1))
	expertise := choiceID(dnd5e.DomainExpertise, dnd5e.KindClassFeature, "rogue-expertise", 1, "expertise")
	rogueSkills := choiceID(dnd5e.DomainProficiency, dnd5e.KindClass, "rogue", 1, "skills")

	before, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    expertise,
	})
	s.Require().NoError(err)
	s.Equal([]string{"thieves-tools"}, optionValues(before.Choice.Options))

	s.mustResolve(char.ID, rogueSkills,
		dnd5e.SkillStealth, dnd5e.SkillDeception, dnd5e.SkillAcrobatics, dnd5e.SkillInsight)

	after, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    expertise,
	})
	s.Require().NoError(err)
	s.ElementsMatch([]string{
		"thieves-tools", dnd5e.SkillStealth, dnd5e.SkillDeception, dnd5e.SkillAcrobatics, dnd5e.SkillInsight,
	}, optionValues(after.Choice.Options))

	_, err = s.resolve(char.ID, expertise, dnd5e.SkillStealth, dnd5e.SkillArcana)
	s.True(errors.HasReason(err, errors.ReasonInvalidOption), "no expertise without proficiency")

	out := s.mustResolve(char.ID, expertise, dnd5e.SkillStealth, "thieves-tools")
	subtypes := make(map[string]string)
	for _, sel := range out.Character.Selections {
		if sel.Domain == dnd5e.DomainExpertise {
			subtypes[sel.Target] = sel.Subtype
		}
	}
	s.Equal(map[string]string{
		dnd5e.SkillStealth: dnd5e.ProficiencySkill,
		"thieves-tools":    dnd5e.ProficiencyTool,
	}, subtypes)

	stealth := s.stats(char.ID).Stats.Skills[dnd5e.SkillStealth]
	s.True(stealth.Proficient)
	s.True(stealth.Expertise)
	s.Equal(4, stealth.Total)

	// Expertise without the proficiency underneath counts for nothing
	s.mustResolve(char.ID, rogueSkills,
		dnd5e.SkillAthletics, dnd5e.SkillDeception, dnd5e.SkillAcrobatics, dnd5e.SkillInsight)
	s.False(s.stats(char.ID).Stats.Skills[dnd5e.SkillStealth].Expertise)
}

func (s *OrchestratorTestSuite) TestFightingStyleExcludesTakenStyles() {
	char := s.create("dwarf", "", primary("fighter", 1))
	s.mustResolve(char.ID, fighterStyle, dnd5e.FightingStyleDefense)

	out, err := s.orchestrator.GetPendingChoice(s.ctx, &charactersvc.GetPendingChoiceInput{
		CharacterID: char.ID,
		ChoiceID:    fighterStyle,
	})
	s.Require().NoError(err)
	s.Len(optionValues(out.Choice.Options), 4, "a group's own pick stays selectable")
	s.Equal([]string{dnd5e.FightingStyleDefense}, out.Choice.Selected)

	s.Equal([]string{dnd5e.FightingStyleDefense}, s.stats(char.ID).Stats.FightingStyles)
}
