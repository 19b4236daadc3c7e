// Package character implements the character orchestrator: choice discovery,
// resolution and undo, fixed grant population, equipment slots and the
// cached derived stat view
package character

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-character-api/internal/engine"
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	"github.com/KirkDiggler/rpg-character-api/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-character-api/internal/pkg/idgen"
	catalogrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
	characterrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/character"
	statsrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/stats"
	"github.com/KirkDiggler/rpg-character-api/internal/services/character"
)

const tracerName = "github.com/KirkDiggler/rpg-character-api/internal/orchestrators/character"

// DefaultMaxGoldAmount caps an explicit gold_amount on the equipment mode choice
const DefaultMaxGoldAmount = 10000

var tracer = otel.Tracer(tracerName)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	CatalogRepo   catalogrepo.Repository
	StatsCache    statsrepo.Repository
	Engine        engine.Engine
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// MaxGoldAmount defaults to DefaultMaxGoldAmount
	MaxGoldAmount int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.CatalogRepo == nil {
		vb.RequiredField("CatalogRepo")
	}
	if c.StatsCache == nil {
		vb.RequiredField("StatsCache")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.MaxGoldAmount < 0 {
		vb.Field("MaxGoldAmount", "cannot be negative")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	catalog       catalogrepo.Repository
	statsCache    statsrepo.Repository
	engine        engine.Engine
	idGen         idgen.Generator
	clock         clock.Clock
	maxGold       int
	handlers      map[dnd5e.Domain]domainHandler
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	maxGold := cfg.MaxGoldAmount
	if maxGold == 0 {
		maxGold = DefaultMaxGoldAmount
	}

	o := &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		catalog:       cfg.CatalogRepo,
		statsCache:    cfg.StatsCache,
		engine:        cfg.Engine,
		idGen:         cfg.IDGenerator,
		clock:         clk,
		maxGold:       maxGold,
	}
	o.handlers = newDomainHandlers(o)

	return o, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

func startSpan(ctx context.Context, operation, characterID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "character."+operation,
		trace.WithAttributes(attribute.String("character.id", characterID)))
}

// entityAttributes tags a span with the entity an operation loaded
func entityAttributes(e core.Entity) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("entity.type", e.GetType()),
		attribute.String("entity.id", e.GetID()),
	}
}

// recordError marks the span failed and hands err back unchanged
func recordError(span trace.Span, err error) error {
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, errors.GetMessage(err))
	if reason := errors.GetReason(err); reason != errors.ReasonNone {
		span.SetAttributes(attribute.String("error.reason", string(reason)))
	}
	return err
}

// invalidateStats drops the cached stat view after a committed write. A
// failure here is logged and never replaces the write's result.
func (o *Orchestrator) invalidateStats(ctx context.Context, characterID string) {
	_, err := o.statsCache.Invalidate(ctx, statsrepo.InvalidateInput{CharacterID: characterID})
	if err != nil {
		slog.ErrorContext(ctx, "failed to invalidate cached stats",
			"character_id", characterID,
			"error", err.Error())
	}
}
