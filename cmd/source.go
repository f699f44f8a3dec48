package cmd

import (
	"fmt"

	"github.com/DivineRock/ffxiv-coord-importer/internal/catalog"
	"github.com/DivineRock/ffxiv-coord-importer/internal/maplink"
	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
	"github.com/DivineRock/ffxiv-coord-importer/internal/resolver"
	"github.com/DivineRock/ffxiv-coord-importer/internal/store"
)

// buildCatalog indexes place names from a YAML file when one is given (flag or
// config), otherwise from the store.
func buildCatalog(file string) (*catalog.Catalog, error) {
	if file == "" {
		file = cfg.Catalog.File
	}

	var tables []model.LanguageTable
	if file != "" {
		var err error
		tables, err = catalog.LoadFile(file)
		if err != nil {
			return nil, err
		}
		logVerbose("Read %d language table(s) from %s", len(tables), file)
	} else {
		s, err := store.New(dataDir, cfg.Data.Driver)
		if err != nil {
			return nil, err
		}
		tables, err = s.ReadTables()
		s.Close()
		if err != nil {
			return nil, fmt.Errorf("reading place names: %w", err)
		}
		if len(tables) == 0 {
			return nil, fmt.Errorf("no place names stored in %s (run catalog load or catalog fetch first)", dataDir)
		}
	}

	langs, err := cfg.Languages()
	if err != nil {
		return nil, err
	}

	c := catalog.Build(langs, tables, logger)
	logger.Info("catalog built",
		"names", c.Len(), "locations", c.Locations(),
		"collisions", c.Count(catalog.Collision), "gaps", c.Count(catalog.Gap))
	return c, nil
}

func newImporter(c *catalog.Catalog) *resolver.Importer {
	return resolver.NewImporter(&resolver.Resolver{
		Catalog:  c,
		Renderer: maplink.TextRenderer{Names: c, Language: catalog.CanonicalLanguage(cfg.Catalog.DisplayLanguage)},
	}, logger)
}
