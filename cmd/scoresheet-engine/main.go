// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scoresheet-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scoresheet-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the scoresheet-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "scoresheet-engine",
	Short: "Convert competition scoresheet PDFs into structured outputs",
	Long: `scoresheet-engine extracts the score tables from competition scoresheet
PDFs and emits them as CSV, JSON, judge-pivoted CSV, or Tremper-style ranked
text, plus a YAML contest summary parsed from the sheet's prose sections.

Run "convert" for one-shot conversions of local files or URLs, or "serve" to
expose the same pipeline over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scoresheet-engine.yaml or ~/.config/scoresheet-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scoresheet-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scoresheet-engine"))
		}
	}

	viper.SetEnvPrefix("SCORESHEET_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
