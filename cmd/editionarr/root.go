package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "editionarr",
	Short: "Sync Radarr folder names with edition metadata",
	Long: `editionarr - keep Radarr movie folder names in sync with metadata

Encodes quality and rating as an {edition-...} token on each movie
folder, renames the folder on disk, and writes the change back to
Radarr so its records stay consistent.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "editionarr.toml", "Path to config file")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("editionarr {{.Version}}\n")
}
