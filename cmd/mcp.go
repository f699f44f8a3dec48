package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DivineRock/ffxiv-coord-importer/internal/mcpserver"
)

var mcpCatalog string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server on stdio",
	Long: `Serves the import_coordinates and lookup_location tools over the Model
Context Protocol on standard input and output. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildCatalog(mcpCatalog)
		if err != nil {
			return err
		}

		s := mcpserver.New(mcpserver.NewHandler(newImporter(c), c), version)
		return mcpserver.ServeStdio(s)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpCatalog, "catalog", "", "Build the catalog from this YAML file instead of the database")
	rootCmd.AddCommand(mcpCmd)
}
