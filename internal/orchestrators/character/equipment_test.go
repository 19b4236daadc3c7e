package character_test

import (
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	charactersvc "github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

func locPtr(l dnd5e.Location) *dnd5e.Location {
	return &l
}

func boolPtr(b bool) *bool {
	return &b
}

func (s *OrchestratorTestSuite) addItem(charID, item string) *dnd5e.EquipmentEntry {
	out, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		CharacterID: charID,
		Item:        item,
	})
	s.Require().NoError(err)
	return out.Entry
}

func (s *OrchestratorTestSuite) move(charID, entryID string, loc dnd5e.Location, attune *bool) (*charactersvc.UpdateEquipmentOutput, error) {
	return s.orchestrator.UpdateEquipment(s.ctx, &charactersvc.UpdateEquipmentInput{
		CharacterID: charID,
		EntryID:     entryID,
		Location:    locPtr(loc),
		IsAttuned:   attune,
	})
}

func (s *OrchestratorTestSuite) mustMove(charID, entryID string, loc dnd5e.Location) *charactersvc.UpdateEquipmentOutput {
	out, err := s.move(charID, entryID, loc, nil)
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestAddEquipment() {
	char := s.create("dwarf", "", primary("fighter", 1))

	sword := s.addItem(char.ID, "longsword")
	s.Equal(dnd5e.LocationBackpack, sword.Location)
	s.Equal(1, sword.Quantity)
	s.False(sword.Equipped)

	custom, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		CharacterID: char.ID,
		CustomName:  "lucky coin",
		Quantity:    3,
	})
	s.Require().NoError(err)
	s.Equal(3, custom.Entry.Quantity)
	s.True(custom.Entry.IsCustom())

	s.Len(s.get(char.ID).Equipment, 2)
}

func (s *OrchestratorTestSuite) TestAddEquipmentValidation() {
	char := s.create("dwarf", "", primary("fighter", 1))

	testCases := []struct {
		name  string
		input *charactersvc.AddEquipmentInput
		check func(error) bool
	}{
		{
			name:  "nothing to add",
			input: &charactersvc.AddEquipmentInput{CharacterID: char.ID},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "item and custom name",
			input: &charactersvc.AddEquipmentInput{CharacterID: char.ID, Item: "dagger", CustomName: "dagger"},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "negative quantity",
			input: &charactersvc.AddEquipmentInput{CharacterID: char.ID, Item: "dagger", Quantity: -1},
			check: errors.IsInvalidArgument,
		},
		{
			name:  "unknown item",
			input: &charactersvc.AddEquipmentInput{CharacterID: char.ID, Item: "vorpal-sword"},
			check: errors.IsNotFound,
		},
		{
			name:  "unknown character",
			input: &charactersvc.AddEquipmentInput{CharacterID: "missing", Item: "dagger"},
			check: errors.IsNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.AddEquipment(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), "got %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestUpdateEquipment_TwoHandedEvictsBothHands() {
	char := s.create("dwarf", "", primary("fighter", 1))
	sword := s.addItem(char.ID, "longsword")
	shield := s.addItem(char.ID, "shield")
	greatsword := s.addItem(char.ID, "greatsword")

	s.mustMove(char.ID, sword.ID, dnd5e.LocationMainHand)
	s.mustMove(char.ID, shield.ID, dnd5e.LocationOffHand)

	out := s.mustMove(char.ID, greatsword.ID, dnd5e.LocationMainHand)
	s.Equal(dnd5e.LocationMainHand, out.Entry.Location)
	s.True(out.Entry.Equipped)
	s.Require().Len(out.Evicted, 2)
	for _, e := range out.Evicted {
		s.Equal(dnd5e.LocationBackpack, e.Location)
		s.False(e.Equipped)
	}

	_, err := s.move(char.ID, shield.ID, dnd5e.LocationOffHand, nil)
	s.Require().Error(err)
	s.True(errors.HasReason(err, errors.ReasonSlotConflict))
	s.Equal(dnd5e.LocationBackpack, findEntry(s.get(char.ID), shield.ID).Location, "rejected moves change nothing")
}

func (s *OrchestratorTestSuite) TestUpdateEquipment_SlotRules() {
	char := s.create("dwarf", "", primary("fighter", 1))
	mail := s.addItem(char.ID, "chain-mail")
	sword := s.addItem(char.ID, "longsword")
	custom, err := s.orchestrator.AddEquipment(s.ctx, &charactersvc.AddEquipmentInput{
		CharacterID: char.ID,
		CustomName:  "walking stick",
	})
	s.Require().NoError(err)

	_, err = s.move(char.ID, mail.ID, dnd5e.LocationMainHand, nil)
	s.True(errors.HasReason(err, errors.ReasonInvalidItemType), "armor is not wielded")

	_, err = s.move(char.ID, custom.Entry.ID, dnd5e.LocationMainHand, nil)
	s.True(errors.HasReason(err, errors.ReasonInvalidItemType), "custom items stay in the backpack")

	_, err = s.move(char.ID, sword.ID, "tail", nil)
	s.True(errors.HasReason(err, errors.ReasonInvalidLocation))

	_, err = s.move(char.ID, sword.ID, dnd5e.LocationMainHand, boolPtr(true))
	s.True(errors.HasReason(err, errors.ReasonInvalidAttunement))

	_, err = s.move(char.ID, "missing", dnd5e.LocationMainHand, nil)
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.UpdateEquipment(s.ctx, &charactersvc.UpdateEquipmentInput{
		CharacterID: char.ID,
		EntryID:     sword.ID,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUpdateEquipment_AttunementLimit() {
	char := s.create("dwarf", "", primary("fighter", 1))
	ring1 := s.addItem(char.ID, "ring-of-protection")
	ring2 := s.addItem(char.ID, "ring-of-warmth")
	amulet := s.addItem(char.ID, "amulet-of-health")
	cloak := s.addItem(char.ID, "cloak-of-protection")

	_, err := s.move(char.ID, ring1.ID, dnd5e.LocationRing1, boolPtr(true))
	s.Require().NoError(err)
	_, err = s.move(char.ID, ring2.ID, dnd5e.LocationRing2, boolPtr(true))
	s.Require().NoError(err)
	_, err = s.move(char.ID, amulet.ID, dnd5e.LocationNeck, boolPtr(true))
	s.Require().NoError(err)

	_, err = s.move(char.ID, cloak.ID, dnd5e.LocationCloak, boolPtr(true))
	s.Require().Error(err)
	s.True(errors.HasReason(err, errors.ReasonAttunementLimitReached))
	s.Equal(dnd5e.LocationBackpack, findEntry(s.get(char.ID), cloak.ID).Location)

	// Equipping without attuning is fine
	out := s.mustMove(char.ID, cloak.ID, dnd5e.LocationCloak)
	s.True(out.Entry.Equipped)
	s.False(out.Entry.IsAttuned)
}

func (s *OrchestratorTestSuite) TestUpdateEquipment_AttuneInPlace() {
	char := s.create("dwarf", "", primary("fighter", 1))
	ring := s.addItem(char.ID, "ring-of-protection")
	s.mustMove(char.ID, ring.ID, dnd5e.LocationRing1)

	out, err := s.orchestrator.UpdateEquipment(s.ctx, &charactersvc.UpdateEquipmentInput{
		CharacterID: char.ID,
		EntryID:     ring.ID,
		IsAttuned:   boolPtr(true),
	})
	s.Require().NoError(err)
	s.Equal(dnd5e.LocationRing1, out.Entry.Location, "no location keeps the current slot")
	s.True(out.Entry.IsAttuned)

	out = s.mustMove(char.ID, ring.ID, dnd5e.LocationBackpack)
	s.False(out.Entry.IsAttuned, "unequipping ends attunement")
}

func findEntry(char *dnd5e.Character, id string) *dnd5e.EquipmentEntry {
	for i := range char.Equipment {
		if char.Equipment[i].ID == id {
			return &char.Equipment[i]
		}
	}
	return nil
}
