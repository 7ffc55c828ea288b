// Package cli implements the command-line interface for the lottery CLI.
package cli

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bkastner/lottery-cli-go/internal/core"
)

// Global flags
var (
	verbose    bool
	quiet      bool
	configPath string
	cacheDir   string
	noWait     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "lotterycli",
	Short:   "Lottery CLI – export draw results and dividend datasets",
	Long:    `A command-line utility that fetches lottery draw results and dividend data, merges them with previously exported datasets and writes them as JSON.`,
	Version: core.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		switch {
		case verbose:
			log.SetLevel(log.DebugLevel)
		case quiet:
			log.SetLevel(log.WarnLevel)
		default:
			log.SetLevel(log.InfoLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress messages")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", fmt.Sprintf("Cache directory for raw API responses (default: %s)", core.DefaultCacheDir))
	rootCmd.PersistentFlags().BoolVar(&noWait, "no-wait", false, "Disable the politeness delay before live API calls")
}
