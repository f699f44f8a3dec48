package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DivineRock/ffxiv-coord-importer/internal/catalog"
	"github.com/DivineRock/ffxiv-coord-importer/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored place names and catalog health",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir, cfg.Data.Driver)
		if err != nil {
			return err
		}

		langs, err := s.Status()
		if err != nil {
			s.Close()
			return fmt.Errorf("reading status: %w", err)
		}
		total := s.RowCount()
		tables, err := s.ReadTables()
		s.Close()
		if err != nil {
			return fmt.Errorf("reading place names: %w", err)
		}

		fmt.Printf("Catalog Status\n")
		fmt.Printf("==============\n")
		fmt.Printf("Database:        %s (%s)\n", dataDir, cfg.Data.Driver)
		fmt.Printf("Stored rows:     %d\n", total)

		if len(langs) > 0 {
			fmt.Printf("\nPer-Language Breakdown\n")
			fmt.Printf("----------------------\n")
			for _, l := range langs {
				fmt.Printf("  %-3s  rows: %6d  loaded: %s  from: %s\n", l.Language, l.Rows, l.LoadedAt, l.Source)
			}
		}

		order, err := cfg.Languages()
		if err != nil {
			return err
		}
		c := catalog.Build(order, tables, nil)

		fmt.Printf("\nIndexed names:   %d\n", c.Len())
		fmt.Printf("Locations:       %d\n", c.Locations())
		fmt.Printf("Collisions:      %d\n", c.Count(catalog.Collision))
		fmt.Printf("Gaps:            %d\n", c.Count(catalog.Gap))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
