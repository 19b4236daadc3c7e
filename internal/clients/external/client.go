// Package external imports rule catalog entries from the D&D 5e API
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-character-api/internal/clients/external Client

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	internalDnd5e "github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-character-api/internal/errors"
	"github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
)

var (
	slugPattern   = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenPattern = regexp.MustCompile(`-+`)
)

// generateSlug creates a URL-safe slug from a display name
func generateSlug(s string) string {
	slug := strings.ToLower(s)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = hyphenPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Client converts API entities into catalog rows. Imported rows carry no
// grant IDs; the catalog assigns them when it indexes the document.
type Client interface {
	ImportRace(ctx context.Context, slug string) (*internalDnd5e.Race, error)
	ImportClass(ctx context.Context, slug string) (*internalDnd5e.Class, error)
	ImportItem(ctx context.Context, slug string) (*internalDnd5e.Item, error)

	// ImportCatalog fetches the requested rows into one catalog document
	ImportCatalog(ctx context.Context, input *ImportInput) (*catalog.Catalog, error)
}

// ImportInput selects what ImportCatalog pulls. The All flags list every
// race or class the API knows and ignore the explicit slugs.
type ImportInput struct {
	Races      []string
	Classes    []string
	Items      []string
	AllRaces   bool
	AllClasses bool
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate sets defaults for unset fields
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

type client struct {
	dnd5eClient dnd5e.Interface
}

// New creates an importer backed by a caching API client
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	return &client{
		dnd5eClient: dnd5e.NewCachedClient(baseClient, cfg.CacheTTL),
	}, nil
}

func (c *client) ImportRace(_ context.Context, slug string) (*internalDnd5e.Race, error) {
	race, err := c.dnd5eClient.GetRace(slug)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get race %s", slug)
	}
	if race == nil {
		return nil, errors.NotFoundf("race %s not found", slug)
	}
	return convertRace(race), nil
}

func (c *client) ImportClass(_ context.Context, slug string) (*internalDnd5e.Class, error) {
	class, err := c.dnd5eClient.GetClass(slug)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get class %s", slug)
	}
	if class == nil {
		return nil, errors.NotFoundf("class %s not found", slug)
	}
	return convertClass(class), nil
}

func (c *client) ImportItem(_ context.Context, slug string) (*internalDnd5e.Item, error) {
	equipment, err := c.dnd5eClient.GetEquipment(slug)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get equipment %s", slug)
	}
	item := convertEquipment(equipment)
	if item == nil {
		return nil, errors.NotFoundf("equipment %s has no importable type", slug)
	}
	return item, nil
}

func (c *client) ImportCatalog(ctx context.Context, input *ImportInput) (*catalog.Catalog, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	raceKeys := input.Races
	if input.AllRaces {
		refs, err := c.dnd5eClient.ListRaces()
		if err != nil {
			return nil, errors.Wrap(err, "failed to list races")
		}
		raceKeys = referenceKeys(refs)
	}

	classKeys := input.Classes
	if input.AllClasses {
		refs, err := c.dnd5eClient.ListClasses()
		if err != nil {
			return nil, errors.Wrap(err, "failed to list classes")
		}
		classKeys = referenceKeys(refs)
	}

	slog.InfoContext(ctx, "Importing catalog",
		"races", len(raceKeys),
		"classes", len(classKeys),
		"items", len(input.Items))

	races, err := importAll(ctx, raceKeys, c.ImportRace)
	if err != nil {
		return nil, err
	}
	classes, err := importAll(ctx, classKeys, c.ImportClass)
	if err != nil {
		return nil, err
	}
	items, err := importAll(ctx, input.Items, c.ImportItem)
	if err != nil {
		return nil, err
	}

	return &catalog.Catalog{
		Races:   races,
		Classes: classes,
		Items:   items,
	}, nil
}

func referenceKeys(refs []*entities.ReferenceItem) []string {
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		keys = append(keys, ref.Key)
	}
	return keys
}

// importAll loads every key concurrently and returns the rows in key order
func importAll[T any](ctx context.Context, keys []string, load func(context.Context, string) (*T, error)) ([]*T, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	rows := make([]*T, len(sorted))
	errChan := make(chan error, len(sorted))
	var wg sync.WaitGroup

	for i, key := range sorted {
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()

			row, err := load(ctx, key)
			if err != nil {
				slog.Error("Failed to import entry", "key", key, "error", err)
				errChan <- err
				return
			}
			rows[idx] = row
		}(i, key)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}
