package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-character-api/internal/clients/external"
	"github.com/KirkDiggler/rpg-character-api/internal/config"
	"github.com/KirkDiggler/rpg-character-api/internal/entities/dnd5e"
	catalogrepo "github.com/KirkDiggler/rpg-character-api/internal/repositories/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Rule catalog tools",
}

var (
	importRaces      []string
	importClasses    []string
	importItems      []string
	importAllRaces   bool
	importAllClasses bool
	importBase       string
	importOut        string
)

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import races, classes and items from the D&D 5e API",
	Long: `Fetch SRD entries and write them as catalog YAML. Rows from --base are
kept unless an imported row has the same slug.`,
	Example: `  rpg-character-api catalog import --races dwarf,elf --classes fighter --out data/srd.yaml`,
	RunE:    runCatalogImport,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check that a catalog file decodes and indexes",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

func init() {
	catalogImportCmd.Flags().StringSliceVar(&importRaces, "races", nil, "race slugs to import")
	catalogImportCmd.Flags().StringSliceVar(&importClasses, "classes", nil, "class slugs to import")
	catalogImportCmd.Flags().StringSliceVar(&importItems, "items", nil, "equipment slugs to import")
	catalogImportCmd.Flags().BoolVar(&importAllRaces, "all-races", false, "import every race the API lists")
	catalogImportCmd.Flags().BoolVar(&importAllClasses, "all-classes", false, "import every class the API lists")
	catalogImportCmd.Flags().StringVar(&importBase, "base", "", "existing catalog to merge into")
	catalogImportCmd.Flags().StringVar(&importOut, "out", "-", "output path, - for stdout")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func runCatalogImport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.Logger())

	client, err := external.New(&external.Config{
		BaseURL:     cfg.DND5eAPIBaseURL,
		HTTPTimeout: cfg.DND5eAPITimeout,
	})
	if err != nil {
		return err
	}

	imported, err := client.ImportCatalog(cmd.Context(), &external.ImportInput{
		Races:      importRaces,
		Classes:    importClasses,
		Items:      importItems,
		AllRaces:   importAllRaces,
		AllClasses: importAllClasses,
	})
	if err != nil {
		return err
	}

	doc := &catalogrepo.Catalog{}
	if importBase != "" {
		doc, err = catalogrepo.LoadFile(importBase)
		if err != nil {
			return err
		}
	}
	mergeCatalog(doc, imported)

	// Indexing catches dangling parents and malformed grants before writing
	if _, err := catalogrepo.NewMemory(&catalogrepo.MemoryConfig{Catalog: copyCatalog(doc)}); err != nil {
		return fmt.Errorf("imported catalog does not index: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if importOut != "-" {
		f, err := os.Create(importOut) // #nosec G304 -- operator supplied path
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", importOut, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := catalogrepo.Encode(w, doc); err != nil {
		return err
	}

	slog.Info("Catalog written",
		"races", len(doc.Races),
		"classes", len(doc.Classes),
		"items", len(doc.Items),
		"out", importOut)
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	doc, err := catalogrepo.LoadFile(args[0])
	if err != nil {
		return err
	}
	if _, err := catalogrepo.NewMemory(&catalogrepo.MemoryConfig{Catalog: doc}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d races, %d classes, %d backgrounds, %d feats, %d items\n",
		args[0], len(doc.Races), len(doc.Classes), len(doc.Backgrounds), len(doc.Feats), len(doc.Items))
	return err
}

// mergeCatalog replaces same-slug rows in dst and appends new ones
func mergeCatalog(dst, src *catalogrepo.Catalog) {
	dst.Races = mergeRows(dst.Races, src.Races, func(r *dnd5e.Race) string { return r.Slug })
	dst.Classes = mergeRows(dst.Classes, src.Classes, func(c *dnd5e.Class) string { return c.Slug })
	dst.Items = mergeRows(dst.Items, src.Items, func(i *dnd5e.Item) string { return i.Slug })
}

func mergeRows[T any](dst, src []*T, slug func(*T) string) []*T {
	index := make(map[string]int, len(dst))
	for i, row := range dst {
		index[slug(row)] = i
	}
	for _, row := range src {
		if i, ok := index[slug(row)]; ok {
			dst[i] = row
			continue
		}
		index[slug(row)] = len(dst)
		dst = append(dst, row)
	}
	return dst
}

// copyCatalog deep-copies grant slices, since indexing normalizes grants in
// place and the written file should keep IDs unset
func copyCatalog(c *catalogrepo.Catalog) *catalogrepo.Catalog {
	out := *c
	out.Races = make([]*dnd5e.Race, len(c.Races))
	for i, r := range c.Races {
		cp := *r
		cp.Grants = append([]dnd5e.GrantRecord(nil), r.Grants...)
		out.Races[i] = &cp
	}
	out.Classes = make([]*dnd5e.Class, len(c.Classes))
	for i, cl := range c.Classes {
		cp := *cl
		cp.Grants = append([]dnd5e.GrantRecord(nil), cl.Grants...)
		out.Classes[i] = &cp
	}
	out.ClassFeatures = make([]*dnd5e.ClassFeature, len(c.ClassFeatures))
	for i, f := range c.ClassFeatures {
		cp := *f
		cp.Grants = append([]dnd5e.GrantRecord(nil), f.Grants...)
		out.ClassFeatures[i] = &cp
	}
	out.Backgrounds = make([]*dnd5e.Background, len(c.Backgrounds))
	for i, b := range c.Backgrounds {
		cp := *b
		cp.Grants = append([]dnd5e.GrantRecord(nil), b.Grants...)
		out.Backgrounds[i] = &cp
	}
	out.Feats = make([]*dnd5e.Feat, len(c.Feats))
	for i, f := range c.Feats {
		cp := *f
		cp.Grants = append([]dnd5e.GrantRecord(nil), f.Grants...)
		out.Feats[i] = &cp
	}
	return &out
}
