package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"

	"github.com/DivineRock/ffxiv-coord-importer/internal/catalog"
	"github.com/DivineRock/ffxiv-coord-importer/internal/config"
	"github.com/DivineRock/ffxiv-coord-importer/internal/model"
	"github.com/DivineRock/ffxiv-coord-importer/internal/scraper"
	"github.com/DivineRock/ffxiv-coord-importer/internal/store"
)

var (
	fetchLanguage string
	lookupCatalog string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the place-name catalog",
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load <file.yaml>...",
	Short: "Store place-name tables from YAML files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir, cfg.Data.Driver)
		if err != nil {
			return err
		}
		defer s.Close()

		for _, path := range args {
			tables, err := catalog.LoadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  WARNING: %v\n", err)
				continue
			}
			for _, t := range tables {
				if err := s.WriteLanguageTable(t, path); err != nil {
					return fmt.Errorf("saving %s place names: %w", t.Language, err)
				}
				fmt.Printf("  %s: %d rows from %s\n", t.Language, len(t.Rows), path)
			}
		}

		fmt.Println("Done.")
		return nil
	},
}

var catalogFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download place-name tables from the configured sources (rate-limited)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var sources []config.ScrapeSource
		for _, src := range cfg.Scrape.Sources {
			if fetchLanguage != "" && catalog.CanonicalLanguage(src.Language) != catalog.CanonicalLanguage(fetchLanguage) {
				continue
			}
			sources = append(sources, src)
		}
		if len(sources) == 0 {
			fmt.Println("No matching [[scrape.sources]] configured.")
			return nil
		}

		s, err := store.New(dataDir, cfg.Data.Driver)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		rl := scraper.NewRateLimiter(cfg.Scrape.RateLimit)

		fmt.Printf("Fetching %d source(s)...\n", len(sources))

		for i, src := range sources {
			lang := catalog.CanonicalLanguage(src.Language)

			select {
			case <-ctx.Done():
				fmt.Printf("\nInterrupted after %d/%d sources\n", i, len(sources))
				return nil
			default:
			}

			logVerbose("  [%d/%d] %s %s", i+1, len(sources), lang, src.URL)

			rows, err := scraper.FetchPlaceNames(ctx, src.URL, rl)
			if err != nil {
				fmt.Fprintf(os.Stderr, "  WARNING: failed to fetch %s place names: %v\n", lang, err)
				continue
			}

			if err := s.WriteLanguageTable(model.LanguageTable{Language: lang, Rows: rows}, src.URL); err != nil {
				return fmt.Errorf("saving %s place names: %w", lang, err)
			}

			fmt.Printf("  [%d/%d] %s (%d rows)\n", i+1, len(sources), lang, len(rows))
		}

		fmt.Println("Done.")
		return nil
	},
}

var catalogLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Look up a map by its exact display name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildCatalog(lookupCatalog)
		if err != nil {
			return err
		}

		loc, ok := c.Lookup(args[0])
		if !ok {
			return fmt.Errorf("no location named %q", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Location: %d\n", loc.ID)
		fmt.Fprintf(out, "Region:   %d\n", loc.RegionID)

		var langs []string
		for l := range loc.Names {
			langs = append(langs, l)
		}
		sort.Strings(langs)
		for _, l := range langs {
			fmt.Fprintf(out, "  %-3s %s\n", l, loc.Names[l])
		}
		return nil
	},
}

func init() {
	catalogFetchCmd.Flags().StringVar(&fetchLanguage, "language", "", "Only fetch sources for this language")
	catalogLookupCmd.Flags().StringVar(&lookupCatalog, "catalog", "", "Build the catalog from this YAML file instead of the database")

	catalogCmd.AddCommand(catalogLoadCmd, catalogFetchCmd, catalogLookupCmd)
	rootCmd.AddCommand(catalogCmd)
}
