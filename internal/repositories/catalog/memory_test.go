package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	"github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-character-api/internal/testutils"
)

type MemoryRepositoryTestSuite struct {
	suite.Suite
	repo catalog.Repository
	ctx  context.Context
}

func (s *MemoryRepositoryTestSuite) SetupTest() {
	s.repo = testutils.NewCatalogRepository(s.T())
	s.ctx = context.Background()
}

func (s *MemoryRepositoryTestSuite) TestGetRaceChain() {
	chain, err := s.repo.GetRaceChain(s.ctx, "high-elf")
	s.Require().NoError(err)
	s.Require().Len(chain, 2)
	s.Equal("high-elf", chain[0].Slug)
	s.Equal("elf", chain[1].Slug)

	chain, err = s.repo.GetRaceChain(s.ctx, "dwarf")
	s.Require().NoError(err)
	s.Len(chain, 1)

	_, err = s.repo.GetRaceChain(s.ctx, "orc")
	s.True(errors.IsNotFound(err))
}

func (s *MemoryRepositoryTestSuite) TestGrantsAreNormalized() {
	race, err := s.repo.GetRace(s.ctx, "elf")
	s.Require().NoError(err)

	s.Equal("elf-ability_score-0", race.Grants[0].ID)
	s.Equal(1, race.Grants[0].LevelGranted)
	s.Empty(race.Grants[0].ChoiceGroup)
	s.Equal("bonus-language", race.Grants[4].ChoiceGroup)
}

func (s *MemoryRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.GetClass(s.ctx, "bard")
	s.True(errors.IsNotFound(err))
	_, err = s.repo.GetBackground(s.ctx, "hermit")
	s.True(errors.IsNotFound(err))
	_, err = s.repo.GetFeat(s.ctx, "lucky")
	s.True(errors.IsNotFound(err))
	_, err = s.repo.GetItem(s.ctx, "vorpal-sword")
	s.True(errors.IsNotFound(err))
}

func (s *MemoryRepositoryTestSuite) TestListClassFeaturesIsLevelGated() {
	features, err := s.repo.ListClassFeatures(s.ctx, "fighter", 3)
	s.Require().NoError(err)
	s.Require().Len(features, 1)
	s.Equal("fighter-fighting-style", features[0].Slug)

	features, err = s.repo.ListClassFeatures(s.ctx, "fighter", 4)
	s.Require().NoError(err)
	s.Len(features, 2)

	features, err = s.repo.ListClassFeatures(s.ctx, "champion", 10)
	s.Require().NoError(err)
	s.Len(features, 1)
}

func (s *MemoryRepositoryTestSuite) TestListProficiencies() {
	skills, err := s.repo.ListProficiencies(s.ctx, dnd5e.ProficiencySkill, "")
	s.Require().NoError(err)
	s.Len(skills, len(dnd5e.SkillAbilities))
	s.Equal("acrobatics", skills[0].Slug)
	s.Equal("Animal Handling", skills[1].Name)

	sets, err := s.repo.ListProficiencies(s.ctx, dnd5e.ProficiencyTool, "gaming-set")
	s.Require().NoError(err)
	s.Require().Len(sets, 2)
	s.Equal("dice-set", sets[0].Slug)

	tools, err := s.repo.ListProficiencies(s.ctx, dnd5e.ProficiencyTool, "")
	s.Require().NoError(err)
	s.Len(tools, 4)
}

func (s *MemoryRepositoryTestSuite) TestLists() {
	languages, err := s.repo.ListLanguages(s.ctx)
	s.Require().NoError(err)
	s.Len(languages, 12)

	feats, err := s.repo.ListFeats(s.ctx)
	s.Require().NoError(err)
	s.Len(feats, 4)

	styles, err := s.repo.ListFightingStyles(s.ctx)
	s.Require().NoError(err)
	s.Len(styles, 4)
}

func (s *MemoryRepositoryTestSuite) TestRejectsBadCatalogs() {
	testCases := []struct {
		name   string
		mutate func(c *catalog.Catalog)
	}{
		{
			name: "parent cycle",
			mutate: func(c *catalog.Catalog) {
				c.Races = append(c.Races,
					&dnd5e.Race{Slug: "a", Parent: "b"},
					&dnd5e.Race{Slug: "b", Parent: "a"})
			},
		},
		{
			name: "chain too deep",
			mutate: func(c *catalog.Catalog) {
				c.Races = append(c.Races, &dnd5e.Race{Slug: "drow-noble", Parent: "high-elf"})
			},
		},
		{
			name: "unknown parent",
			mutate: func(c *catalog.Catalog) {
				c.Races = append(c.Races, &dnd5e.Race{Slug: "orphan", Parent: "nowhere"})
			},
		},
		{
			name: "choice without quantity",
			mutate: func(c *catalog.Catalog) {
				c.Feats = append(c.Feats, &dnd5e.Feat{Slug: "broken", Grants: []dnd5e.GrantRecord{
					{Domain: dnd5e.DomainLanguage, IsChoice: true},
				}})
			},
		},
		{
			name: "fixed grant with group",
			mutate: func(c *catalog.Catalog) {
				c.Feats = append(c.Feats, &dnd5e.Feat{Slug: "broken", Grants: []dnd5e.GrantRecord{
					{Domain: dnd5e.DomainLanguage, Target: "orc", ChoiceGroup: "x"},
				}})
			},
		},
		{
			name: "duplicate choice group",
			mutate: func(c *catalog.Catalog) {
				c.Feats = append(c.Feats, &dnd5e.Feat{Slug: "broken", Grants: []dnd5e.GrantRecord{
					{Domain: dnd5e.DomainLanguage, IsChoice: true, Quantity: 1, ChoiceGroup: "x"},
					{Domain: dnd5e.DomainLanguage, IsChoice: true, Quantity: 2, ChoiceGroup: "x"},
				}})
			},
		},
		{
			name: "colon in slug",
			mutate: func(c *catalog.Catalog) {
				c.Backgrounds = append(c.Backgrounds, &dnd5e.Background{Slug: "bad:slug"})
			},
		},
		{
			name: "unknown domain",
			mutate: func(c *catalog.Catalog) {
				c.Feats = append(c.Feats, &dnd5e.Feat{Slug: "broken", Grants: []dnd5e.GrantRecord{
					{Domain: "spell", Target: "fireball"},
				}})
			},
		},
		{
			name: "feature for unknown class",
			mutate: func(c *catalog.Catalog) {
				c.ClassFeatures = append(c.ClassFeatures, &dnd5e.ClassFeature{Slug: "x", Class: "bard", Level: 1})
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c := testutils.NewCatalog()
			tc.mutate(c)
			_, err := catalog.NewMemory(&catalog.MemoryConfig{Catalog: c})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *MemoryRepositoryTestSuite) TestConfigValidation() {
	_, err := catalog.NewMemory(nil)
	s.Error(err)
	_, err = catalog.NewMemory(&catalog.MemoryConfig{})
	s.Error(err)
}

func TestMemoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryRepositoryTestSuite))
}
