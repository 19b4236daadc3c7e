package dnd5e

import "github.com/KirkDiggler/rpg-toolkit/core"

// EntityTypeCharacter is the core entity type for characters
const EntityTypeCharacter = "character"

// Character is the aggregate persisted per player character. Every owned
// record lives inside it so a mutation is one atomic document write.
type Character struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	PlayerID      string               `json:"player_id,omitempty"`
	Race          string               `json:"race,omitempty"`
	Background    string               `json:"background,omitempty"`
	Classes       []ClassLevel         `json:"classes,omitempty"`
	AbilityScores map[Ability]int      `json:"ability_scores"`
	Selections    []ResolvedSelection  `json:"selections,omitempty"`
	Equipment     []EquipmentEntry     `json:"equipment,omitempty"`
	Wallet        Wallet               `json:"wallet"`
	EquipmentMode *EquipmentModeMarker `json:"equipment_mode,omitempty"`
	CreatedAt     int64                `json:"created_at"`
	UpdatedAt     int64                `json:"updated_at"`
	// Version counts committed writes
	Version int64 `json:"version"`
}

var _ core.Entity = (*Character)(nil)

// GetID returns the character id
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the character entity type
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// ClassLevel is one class a character has levels in
type ClassLevel struct {
	Class     string `json:"class"`
	Subclass  string `json:"subclass,omitempty"`
	Level     int    `json:"level"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// TotalLevel sums levels across all classes
func (c *Character) TotalLevel() int {
	total := 0
	for _, cl := range c.Classes {
		total += cl.Level
	}
	return total
}

// PrimaryClass returns the class flagged primary, falling back to the first
func (c *Character) PrimaryClass() *ClassLevel {
	for i := range c.Classes {
		if c.Classes[i].IsPrimary {
			return &c.Classes[i]
		}
	}
	if len(c.Classes) > 0 {
		return &c.Classes[0]
	}
	return nil
}

// ClassLevelFor returns the entry for a class slug, or nil
func (c *Character) ClassLevelFor(class string) *ClassLevel {
	for i := range c.Classes {
		if c.Classes[i].Class == class {
			return &c.Classes[i]
		}
	}
	return nil
}

// ResolvedSelection is one persisted outcome of a fixed grant or a choice
type ResolvedSelection struct {
	Domain        Domain     `json:"domain"`
	Source        EntityKind `json:"source"`
	SourceSlug    string     `json:"source_slug"`
	ChoiceGroup   string     `json:"choice_group,omitempty"`
	GrantRecordID string     `json:"grant_record_id"`
	Target        string     `json:"target"`
	Value         int        `json:"value,omitempty"`
	Subtype       string     `json:"subtype,omitempty"`
}

// IsFixed reports whether the selection materializes a fixed grant
func (s *ResolvedSelection) IsFixed() bool {
	return s.ChoiceGroup == ""
}

// SourceRef returns the granting entity the selection came from
func (s *ResolvedSelection) SourceRef() EntityRef {
	return EntityRef{Kind: s.Source, Slug: s.SourceSlug}
}

// EquipmentEntry is one item or custom line in a character's inventory
type EquipmentEntry struct {
	ID         string   `json:"id"`
	Item       string   `json:"item,omitempty"`
	CustomName string   `json:"custom_name,omitempty"`
	Quantity   int      `json:"quantity"`
	Location   Location `json:"location"`
	Equipped   bool     `json:"equipped"`
	IsAttuned  bool     `json:"is_attuned"`
	Source     string   `json:"source,omitempty"`
}

// IsCustom reports whether the entry is free text rather than a catalog item
func (e *EquipmentEntry) IsCustom() bool {
	return e.Item == ""
}

// EquipmentModeMarker records the level 1 equipment-or-gold decision
type EquipmentModeMarker struct {
	Mode       string `json:"mode"`
	GoldAmount int    `json:"gold_amount,omitempty"`
	Source     string `json:"source"`
}
