package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DivineRock/ffxiv-coord-importer/internal/store"
	"github.com/DivineRock/ffxiv-coord-importer/internal/web"
)

var (
	serveHost    string
	servePort    int
	serveCatalog string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the import API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		c, err := buildCatalog(serveCatalog)
		if err != nil {
			return err
		}

		s, err := store.New(dataDir, cfg.Data.Driver)
		if err != nil {
			return err
		}
		defer s.Close()

		srv := &web.Server{
			Importer: newImporter(c),
			Catalog:  c,
			Store:    s,
			Addr:     fmt.Sprintf("%s:%d", serveHost, servePort),
			Logger:   logger,
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "Build the catalog from this YAML file instead of the database")
	rootCmd.AddCommand(serveCmd)
}
