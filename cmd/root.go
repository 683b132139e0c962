package cmd

import (
	"fmt"
	"ghfetch/config"
	"ghfetch/logging"

	"github.com/spf13/cobra"
)

// Global config variable
var cfg *config.Config

// Global flags
var configFile string

// Root command
var rootCmd = &cobra.Command{
	Use:           "ghfetch",
	Short:         "ghfetch - Private GitHub release asset downloader",
	Long: `ghfetch downloads release assets attached to private GitHub repositories.

GitHub does not allow unauthenticated or direct URL-based downloads of assets
attached to private repository releases. ghfetch resolves the numeric asset id
behind a release URL through the GitHub API and streams the binary through the
authenticated asset endpoint into a local cache.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration with optional config file override
		var err error
		cfg, err = config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Ensure required directories exist
		if err := config.EnsureDirectoriesExist(cfg); err != nil {
			return fmt.Errorf("error ensuring directories: %w", err)
		}

		// Initialize logger with JSON format if requested
		if err := logging.InitLogger(cfg.General.LogPath, cfg.General.LogLevel, jsonOutput || jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

func init() {
	// Pre-log important startup messages before logger is initialized
	logging.PreLog("DEBUG", "Initializing ghfetch...")

	// Add subcommands
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(cleanCmd)

	// Allow flags to be placed after arguments
	rootCmd.Flags().SetInterspersed(true)

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (default: GHFETCH_CONFIG_PATH or ./ghfetch.toml)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Output logs in JSON format")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ExitWithError(err)
	}
}
