package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-character-api/internal/engine"
)

type ModifiersTestSuite struct {
	suite.Suite
}

func TestModifiersSuite(t *testing.T) {
	suite.Run(t, new(ModifiersTestSuite))
}

func (s *ModifiersTestSuite) TestAbilityModifier() {
	testCases := []struct {
		score    int
		expected int
	}{
		{score: 1, expected: -5},
		{score: 7, expected: -2},
		{score: 8, expected: -1},
		{score: 9, expected: -1},
		{score: 10, expected: 0},
		{score: 11, expected: 0},
		{score: 15, expected: 2},
		{score: 18, expected: 4},
		{score: 19, expected: 4},
		{score: 20, expected: 5},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, engine.AbilityModifier(tc.score), "score %d", tc.score)
	}
}

func (s *ModifiersTestSuite) TestProficiencyBonus() {
	testCases := []struct {
		level    int
		expected int
	}{
		{level: 1, expected: 2},
		{level: 4, expected: 2},
		{level: 5, expected: 3},
		{level: 8, expected: 3},
		{level: 9, expected: 4},
		{level: 13, expected: 5},
		{level: 17, expected: 6},
		{level: 20, expected: 6},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, engine.ProficiencyBonus(tc.level), "level %d", tc.level)
	}
}

func (s *ModifiersTestSuite) TestPassiveScore() {
	s.Equal(12, engine.PassiveScore(2, 3, false, false))
	s.Equal(15, engine.PassiveScore(2, 3, true, false))
	s.Equal(18, engine.PassiveScore(2, 3, true, true))
	s.Equal(9, engine.PassiveScore(-1, 2, false, false))
}

func (s *ModifiersTestSuite) TestCarryingCapacity() {
	capacity, push := engine.CarryingCapacity(15)
	s.Equal(225, capacity)
	s.Equal(450, push)
}

func (s *ModifiersTestSuite) TestSpellMath() {
	s.Equal(13, engine.SpellSaveDC(2, 3))
	s.Equal(5, engine.SpellAttackBonus(2, 3))
}
