package v1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	v1 "github.com/KirkDiggler/rpg-character-api/internal/handlers/character/v1"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
	charactermock "github.com/KirkDiggler/rpg-character-api/internal/services/character/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockCharService *charactermock.MockService
	handler         *v1.Handler
	ctx             context.Context

	testCharacterID string
	testChoiceID    string
	testCharacter   *dnd5e.Character
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCharService = charactermock.NewMockService(s.ctrl)

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		CharacterService: s.mockCharService,
	})
	s.Require().NoError(err)
	s.handler = handler
	s.ctx = context.Background()

	s.testCharacterID = "char-101"
	s.testChoiceID = "language:race:half-elf:1:extra-language"
	s.testCharacter = &dnd5e.Character{
		ID:       s.testCharacterID,
		Name:     "Tharivol",
		PlayerID: "player-123",
		Race:     "half-elf",
		Classes:  []dnd5e.ClassLevel{{Class: "fighter", Level: 1, IsPrimary: true}},
		AbilityScores: map[dnd5e.Ability]int{
			dnd5e.AbilityStrength: 15,
		},
		Version: 3,
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1.NewHandler(&v1.HandlerConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1.NewHandler(nil)
	s.Require().Error(err)
}

func (s *HandlerTestSuite) TestCreateCharacter() {
	req := s.request(map[string]any{
		"player_id":  "player-123",
		"name":       "Tharivol",
		"race":       "half-elf",
		"background": "noble",
		"classes": []any{
			map[string]any{"class": "fighter", "level": 1, "is_primary": true},
		},
		"ability_scores": map[string]any{"str": 15},
	})

	s.mockCharService.EXPECT().
		CreateCharacter(s.ctx, &character.CreateCharacterInput{
			PlayerID:   "player-123",
			Name:       "Tharivol",
			Race:       "half-elf",
			Background: "noble",
			Classes:    []dnd5e.ClassLevel{{Class: "fighter", Level: 1, IsPrimary: true}},
			AbilityScores: map[dnd5e.Ability]int{
				dnd5e.AbilityStrength: 15,
			},
		}).
		Return(&character.CreateCharacterOutput{Character: s.testCharacter}, nil)

	resp, err := s.handler.CreateCharacter(s.ctx, req)
	s.Require().NoError(err)

	char := resp.GetFields()["character"].GetStructValue().GetFields()
	s.Equal(s.testCharacterID, char["id"].GetStringValue())
	s.Equal(float64(3), char["version"].GetNumberValue())
	s.Equal(float64(15), char["ability_scores"].GetStructValue().GetFields()["str"].GetNumberValue())
}

func (s *HandlerTestSuite) TestCreateCharacterServiceError() {
	s.mockCharService.EXPECT().
		CreateCharacter(s.ctx, gomock.Any()).
		Return(nil, errors.InvalidArgument("validation failed: name: is required"))

	_, err := s.handler.CreateCharacter(s.ctx, s.request(map[string]any{"player_id": "player-123"}))
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestMalformedRequest() {
	req := s.request(map[string]any{
		"character_id": s.testCharacterID,
		"item":         "rope",
		"quantity":     "three",
	})

	_, err := s.handler.AddEquipment(s.ctx, req)
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestListCharactersEmpty() {
	s.mockCharService.EXPECT().
		ListCharacters(s.ctx, &character.ListCharactersInput{PlayerID: "player-123"}).
		Return(&character.ListCharactersOutput{}, nil)

	resp, err := s.handler.ListCharacters(s.ctx, s.request(map[string]any{"player_id": "player-123"}))
	s.Require().NoError(err)

	list := resp.GetFields()["characters"].GetListValue()
	s.Require().NotNil(list, "an empty list is still a list")
	s.Empty(list.GetValues())
}

func (s *HandlerTestSuite) TestUpdateRaceReportsDropped() {
	s.mockCharService.EXPECT().
		UpdateRace(s.ctx, &character.UpdateRaceInput{CharacterID: s.testCharacterID, Race: "dwarf"}).
		Return(&character.UpdateRaceOutput{Character: s.testCharacter, Dropped: 3}, nil)

	resp, err := s.handler.UpdateRace(s.ctx, s.request(map[string]any{
		"character_id": s.testCharacterID,
		"race":         "dwarf",
	}))
	s.Require().NoError(err)
	s.Equal(float64(3), resp.GetFields()["dropped"].GetNumberValue())
}

func (s *HandlerTestSuite) TestListPendingChoicesFlattensOptions() {
	s.mockCharService.EXPECT().
		ListPendingChoices(s.ctx, &character.ListPendingChoicesInput{
			CharacterID:     s.testCharacterID,
			Domain:          dnd5e.DomainProficiency,
			IncludeResolved: true,
		}).
		Return(&character.ListPendingChoicesOutput{Choices: []*dnd5e.PendingChoice{
			{
				ID:        s.testChoiceID,
				Domain:    dnd5e.DomainLanguage,
				Quantity:  1,
				Remaining: 1,
				Options: dnd5e.ExplicitOptions{Options: []dnd5e.Option{
					{Value: "giant", Label: "Giant"},
				}},
			},
			{
				ID:        "proficiency:background:noble:1:gaming-set",
				Domain:    dnd5e.DomainProficiency,
				Quantity:  1,
				Remaining: 1,
				Options: dnd5e.LookupOptions{
					ProficiencyType: dnd5e.ProficiencyTool,
					Subcategory:     "gaming-set",
				},
			},
		}}, nil)

	resp, err := s.handler.ListPendingChoices(s.ctx, s.request(map[string]any{
		"character_id":     s.testCharacterID,
		"domain":           "proficiency",
		"include_resolved": true,
	}))
	s.Require().NoError(err)

	choices := resp.GetFields()["choices"].GetListValue().GetValues()
	s.Require().Len(choices, 2)

	explicit := choices[0].GetStructValue().GetFields()
	s.Equal(s.testChoiceID, explicit["id"].GetStringValue())
	s.Equal("giant", explicit["options"].GetListValue().GetValues()[0].GetStructValue().GetFields()["value"].GetStringValue())
	s.NotContains(explicit, "options_lookup")
	s.NotNil(explicit["selected"].GetListValue())

	lookup := choices[1].GetStructValue().GetFields()
	s.NotContains(lookup, "options")
	s.Equal("gaming-set", lookup["options_lookup"].GetStructValue().GetFields()["subcategory"].GetStringValue())
}

func (s *HandlerTestSuite) TestResolveChoiceGold() {
	s.mockCharService.EXPECT().
		ResolveChoice(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *character.ResolveChoiceInput) (*character.ResolveChoiceOutput, error) {
			s.Equal(s.testCharacterID, input.CharacterID)
			s.Equal([]string{dnd5e.EquipmentModeGold}, input.Selected)
			s.Require().NotNil(input.GoldAmount)
			s.Equal(130, *input.GoldAmount)
			s.False(input.RollGold)
			return &character.ResolveChoiceOutput{
				Choice:    &dnd5e.PendingChoice{ID: input.ChoiceID, Selected: input.Selected},
				Character: s.testCharacter,
			}, nil
		})

	resp, err := s.handler.ResolveChoice(s.ctx, s.request(map[string]any{
		"character_id": s.testCharacterID,
		"choice_id":    "equipment_mode:class:fighter:1:equipment-mode",
		"selected":     []any{"gold"},
		"gold_amount":  130,
	}))
	s.Require().NoError(err)
	s.Contains(resp.GetFields(), "character")
	s.NotContains(resp.GetFields(), "removed")
}

func (s *HandlerTestSuite) TestResolveChoiceRuleViolation() {
	s.mockCharService.EXPECT().
		ResolveChoice(s.ctx, gomock.Any()).
		Return(nil, errors.Rulef(errors.ReasonDuplicateSelection, "giant selected more than once").
			WithMeta("choice_id", s.testChoiceID))

	_, err := s.handler.ResolveChoice(s.ctx, s.request(map[string]any{
		"character_id": s.testCharacterID,
		"choice_id":    s.testChoiceID,
		"selected":     []any{"giant", "giant"},
	}))
	s.Require().Error(err)
	s.Equal(codes.FailedPrecondition, status.Code(err))

	back := errors.FromGRPCError(err)
	s.True(errors.HasReason(back, errors.ReasonDuplicateSelection))
	s.True(errors.IsUnprocessable(back))
}

func (s *HandlerTestSuite) TestUndoChoiceReportsRemoved() {
	s.mockCharService.EXPECT().
		UndoChoice(s.ctx, &character.UndoChoiceInput{CharacterID: s.testCharacterID, ChoiceID: s.testChoiceID}).
		Return(&character.UndoChoiceOutput{
			Choice:    &dnd5e.PendingChoice{ID: s.testChoiceID, Quantity: 1, Remaining: 1},
			Character: s.testCharacter,
		}, nil)

	resp, err := s.handler.UndoChoice(s.ctx, s.request(map[string]any{
		"character_id": s.testCharacterID,
		"choice_id":    s.testChoiceID,
	}))
	s.Require().NoError(err)
	s.Require().Contains(resp.GetFields(), "removed", "zero is reported for undo")
	s.Equal(float64(0), resp.GetFields()["removed"].GetNumberValue())
}

func (s *HandlerTestSuite) TestUpdateEquipment() {
	s.mockCharService.EXPECT().
		UpdateEquipment(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *character.UpdateEquipmentInput) (*character.UpdateEquipmentOutput, error) {
			s.Require().NotNil(input.Location)
			s.Equal(dnd5e.LocationMainHand, *input.Location)
			s.Nil(input.IsAttuned, "absent is_attuned stays unset")
			return &character.UpdateEquipmentOutput{
				Entry: &dnd5e.EquipmentEntry{ID: input.EntryID, Item: "greatsword", Location: dnd5e.LocationMainHand, Equipped: true},
				Evicted: []*dnd5e.EquipmentEntry{
					{ID: "entry-2", Item: "shield", Location: dnd5e.LocationBackpack},
				},
			}, nil
		})

	resp, err := s.handler.UpdateEquipment(s.ctx, s.request(map[string]any{
		"character_id": s.testCharacterID,
		"entry_id":     "entry-1",
		"location":     "main_hand",
	}))
	s.Require().NoError(err)

	evicted := resp.GetFields()["evicted"].GetListValue().GetValues()
	s.Require().Len(evicted, 1)
	s.Equal("entry-2", evicted[0].GetStructValue().GetFields()["id"].GetStringValue())
}

func (s *HandlerTestSuite) TestGetStats() {
	s.mockCharService.EXPECT().
		GetStats(s.ctx, &character.GetStatsInput{CharacterID: s.testCharacterID}).
		Return(&character.GetStatsOutput{
			Stats: &dnd5e.Stats{
				CharacterID: s.testCharacterID,
				ArmorClass:  18,
				SpellSlots:  map[int]int{1: 2},
			},
			Cached: true,
		}, nil)

	resp, err := s.handler.GetStats(s.ctx, s.request(map[string]any{"character_id": s.testCharacterID}))
	s.Require().NoError(err)
	s.True(resp.GetFields()["cached"].GetBoolValue())

	stats := resp.GetFields()["stats"].GetStructValue().GetFields()
	s.Equal(float64(18), stats["armor_class"].GetNumberValue())
	s.Equal(float64(2), stats["spell_slots"].GetStructValue().GetFields()["1"].GetNumberValue())
}

func (s *HandlerTestSuite) TestServeOverGRPC() {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1.RegisterCharacterServiceServer(srv, s.handler)
	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() {
		_ = conn.Close()
	}()

	s.mockCharService.EXPECT().
		GetPendingChoice(gomock.Any(), &character.GetPendingChoiceInput{
			CharacterID: s.testCharacterID,
			ChoiceID:    "bogus",
		}).
		Return(nil, errors.ChoiceNotFoundf("choice %s not found", "bogus"))

	resp := new(structpb.Struct)
	err = conn.Invoke(s.ctx, "/"+v1.ServiceName+"/GetPendingChoice", s.request(map[string]any{
		"character_id": s.testCharacterID,
		"choice_id":    "bogus",
	}), resp)
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))
	s.True(errors.HasReason(errors.FromGRPCError(err), errors.ReasonChoiceNotFound))
}
