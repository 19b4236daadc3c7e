package dnd5e

import (
	"fmt"
	"strconv"
	"strings"
)

const choiceIDSeparator = ":"

// ChoiceID addresses one choice group on one granting entity. It encodes
// domain:source:source-slug:level:group and round trips through String.
type ChoiceID struct {
	Domain       Domain
	Source       EntityKind
	SourceSlug   string
	LevelGranted int
	Group        string
}

// String encodes the id
func (id ChoiceID) String() string {
	return strings.Join([]string{
		string(id.Domain),
		string(id.Source),
		id.SourceSlug,
		strconv.Itoa(id.LevelGranted),
		id.Group,
	}, choiceIDSeparator)
}

// SourceRef returns the granting entity the id points at
func (id ChoiceID) SourceRef() EntityRef {
	return EntityRef{Kind: id.Source, Slug: id.SourceSlug}
}

// ParseChoiceID decodes an id produced by ChoiceID.String
func ParseChoiceID(raw string) (ChoiceID, error) {
	parts := strings.Split(raw, choiceIDSeparator)
	if len(parts) != 5 {
		return ChoiceID{}, fmt.Errorf("choice id %q: expected 5 parts, got %d", raw, len(parts))
	}

	level, err := strconv.Atoi(parts[3])
	if err != nil || level < 0 {
		return ChoiceID{}, fmt.Errorf("choice id %q: invalid level %q", raw, parts[3])
	}

	id := ChoiceID{
		Domain:       Domain(parts[0]),
		Source:       EntityKind(parts[1]),
		SourceSlug:   parts[2],
		LevelGranted: level,
		Group:        parts[4],
	}
	if !id.Domain.IsValid() {
		return ChoiceID{}, fmt.Errorf("choice id %q: unknown domain %q", raw, parts[0])
	}
	if id.SourceSlug == "" || id.Group == "" {
		return ChoiceID{}, fmt.Errorf("choice id %q: missing source or group", raw)
	}
	return id, nil
}

// Option is one selectable value of a choice
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionSet is either a resolved list of options or a lookup key the caller
// resolves against the catalog lazily.
type OptionSet interface {
	isOptionSet()
}

// ExplicitOptions is a concrete option list
type ExplicitOptions struct {
	Options []Option `json:"options"`
}

func (ExplicitOptions) isOptionSet() {}

// Values returns the option values in order
func (o ExplicitOptions) Values() []string {
	values := make([]string, 0, len(o.Options))
	for _, opt := range o.Options {
		values = append(values, opt.Value)
	}
	return values
}

// Contains reports whether value is one of the options
func (o ExplicitOptions) Contains(value string) bool {
	for _, opt := range o.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// LookupOptions defers the option list to a catalog query
type LookupOptions struct {
	ProficiencyType string `json:"proficiency_type"`
	Subcategory     string `json:"subcategory"`
	Endpoint        string `json:"endpoint,omitempty"`
}

func (LookupOptions) isOptionSet() {}

// PendingChoice describes one choice group and how far it is resolved
type PendingChoice struct {
	ID           string                 `json:"id"`
	Domain       Domain                 `json:"domain"`
	Subtype      string                 `json:"subtype,omitempty"`
	Source       EntityKind             `json:"source"`
	SourceSlug   string                 `json:"source_slug"`
	SourceName   string                 `json:"source_name"`
	ChoiceGroup  string                 `json:"choice_group"`
	LevelGranted int                    `json:"level_granted"`
	Required     bool                   `json:"required"`
	Quantity     int                    `json:"quantity"`
	Remaining    int                    `json:"remaining"`
	Selected     []string               `json:"selected"`
	Options      OptionSet              `json:"options"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// IsPending reports whether selections are still missing
func (p *PendingChoice) IsPending() bool {
	return p.Remaining > 0
}
