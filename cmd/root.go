// Package cmd provides the ltugen command line: the web UI server, the
// one-shot generate command and version output.
package cmd

import (
	"fmt"
	"os"

	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "ltugen",
	Short: "Coursework site and HTML5 tabs generator",
	Long: `ltugen serves the LTU coursework site with its HTML5 tabs generator.
Tabs are configured in the browser and exported as a standalone HTML
document with inline CSS and JavaScript, ready to paste into an LMS page.

Running ltugen without a subcommand starts the web UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logLevel != "" {
			utils.SetLogLevel(logLevel)
		}
	},
	RunE: runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: $LTUGEN_CONFIG or the first config.yml found)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	addServeFlags(rootCmd)
}

// resolveConfigPath picks the --config flag, then LTUGEN_CONFIG, then the
// search path, creating ./config.yml with defaults when nothing is found.
func resolveConfigPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, config.EnsureFile(cfgFile)
	}
	if p := os.Getenv("LTUGEN_CONFIG"); p != "" {
		return p, config.EnsureFile(p)
	}
	p, err := config.FindPath("./config.yml")
	if err != nil {
		return "", fmt.Errorf("locating config: %w", err)
	}
	return p, nil
}
