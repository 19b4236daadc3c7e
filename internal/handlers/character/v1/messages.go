package v1

import (
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
)

type characterRequest struct {
	CharacterID string `json:"character_id"`
}

type createCharacterRequest struct {
	PlayerID      string                `json:"player_id"`
	Name          string                `json:"name"`
	Race          string                `json:"race"`
	Background    string                `json:"background"`
	Classes       []dnd5e.ClassLevel    `json:"classes"`
	AbilityScores map[dnd5e.Ability]int `json:"ability_scores"`
}

type listCharactersRequest struct {
	PlayerID string `json:"player_id"`
}

type updateRaceRequest struct {
	CharacterID string `json:"character_id"`
	Race        string `json:"race"`
}

type updateBackgroundRequest struct {
	CharacterID string `json:"character_id"`
	Background  string `json:"background"`
}

type updateClassesRequest struct {
	CharacterID string             `json:"character_id"`
	Classes     []dnd5e.ClassLevel `json:"classes"`
}

type updateAbilityScoresRequest struct {
	CharacterID   string                `json:"character_id"`
	AbilityScores map[dnd5e.Ability]int `json:"ability_scores"`
}

type listPendingChoicesRequest struct {
	CharacterID     string       `json:"character_id"`
	Domain          dnd5e.Domain `json:"domain"`
	IncludeResolved bool         `json:"include_resolved"`
}

type choiceRequest struct {
	CharacterID string `json:"character_id"`
	ChoiceID    string `json:"choice_id"`
}

type resolveChoiceRequest struct {
	CharacterID string   `json:"character_id"`
	ChoiceID    string   `json:"choice_id"`
	Selected    []string `json:"selected"`
	GoldAmount  *int     `json:"gold_amount"`
	RollGold    bool     `json:"roll_gold"`
}

type addEquipmentRequest struct {
	CharacterID string `json:"character_id"`
	Item        string `json:"item"`
	CustomName  string `json:"custom_name"`
	Quantity    int    `json:"quantity"`
}

type updateEquipmentRequest struct {
	CharacterID string          `json:"character_id"`
	EntryID     string          `json:"entry_id"`
	Location    *dnd5e.Location `json:"location"`
	IsAttuned   *bool           `json:"is_attuned"`
}

type characterResponse struct {
	Character *dnd5e.Character `json:"character"`
}

type listCharactersResponse struct {
	Characters []*dnd5e.Character `json:"characters"`
}

type deleteCharacterResponse struct {
	Message string `json:"message"`
}

type updateResponse struct {
	Character *dnd5e.Character `json:"character"`
	Dropped   int              `json:"dropped"`
}

type listPendingChoicesResponse struct {
	Choices []*choiceView `json:"choices"`
}

type choiceResponse struct {
	Choice    *choiceView      `json:"choice"`
	Character *dnd5e.Character `json:"character,omitempty"`
	Removed   *int             `json:"removed,omitempty"`
}

type populateResponse struct {
	Character  *dnd5e.Character `json:"character"`
	Selections int              `json:"selections"`
	Items      int              `json:"items"`
	Gold       int              `json:"gold"`
}

type equipmentResponse struct {
	Entry   *dnd5e.EquipmentEntry   `json:"entry"`
	Evicted []*dnd5e.EquipmentEntry `json:"evicted,omitempty"`
}

type statsResponse struct {
	Stats  *dnd5e.Stats `json:"stats"`
	Cached bool         `json:"cached"`
}

// choiceView flattens the option set: explicit lists go to options, catalog
// queries to options_lookup
type choiceView struct {
	ID            string                 `json:"id"`
	Domain        dnd5e.Domain           `json:"domain"`
	Subtype       string                 `json:"subtype,omitempty"`
	Source        dnd5e.EntityKind       `json:"source"`
	SourceName    string                 `json:"source_name"`
	LevelGranted  int                    `json:"level_granted"`
	Required      bool                   `json:"required"`
	Quantity      int                    `json:"quantity"`
	Remaining     int                    `json:"remaining"`
	Selected      []string               `json:"selected"`
	Options       []dnd5e.Option         `json:"options,omitempty"`
	OptionsLookup *dnd5e.LookupOptions   `json:"options_lookup,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

func newChoiceView(c *dnd5e.PendingChoice) *choiceView {
	if c == nil {
		return nil
	}
	v := &choiceView{
		ID:           c.ID,
		Domain:       c.Domain,
		Subtype:      c.Subtype,
		Source:       c.Source,
		SourceName:   c.SourceName,
		LevelGranted: c.LevelGranted,
		Required:     c.Required,
		Quantity:     c.Quantity,
		Remaining:    c.Remaining,
		Selected:     c.Selected,
		Metadata:     c.Metadata,
	}
	if v.Selected == nil {
		v.Selected = []string{}
	}
	switch opts := c.Options.(type) {
	case dnd5e.ExplicitOptions:
		v.Options = opts.Options
	case *dnd5e.ExplicitOptions:
		v.Options = opts.Options
	case dnd5e.LookupOptions:
		v.OptionsLookup = &opts
	case *dnd5e.LookupOptions:
		v.OptionsLookup = opts
	}
	return v
}
