// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxivkit CLI: build arXiv API
// URLs, run searches, decode saved responses and inspect identifiers.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxivkit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxResults = 10
)

// rootCmd is the base command for the arxivkit CLI.
var rootCmd = &cobra.Command{
	Use:   "arxivkit",
	Short: "Query the arXiv API and decode its responses",
	Long: `arxivkit builds arXiv API query URLs, fetches and decodes Atom responses,
and validates arXiv identifiers in both the old (math.CA/0501001) and new
(2201.13452v1) forms.

Settings are read from arxivkit.yaml in the current directory or
~/.config/arxivkit/, and may be overridden with ARXIVKIT_* environment
variables (e.g. ARXIVKIT_HTTP_USER_AGENT).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxivkit.yaml or ~/.config/arxivkit/arxivkit.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxivkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxivkit"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("ARXIVKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults() {
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", "arxivkit/"+version)
	viper.SetDefault("query.base_url", "")
	viper.SetDefault("query.max_results", defaultMaxResults)
	viper.SetDefault("query.sort_by", "")
	viper.SetDefault("query.sort_order", "")
	viper.SetDefault("output.format", string(types.OutputTable))
}

// loadConfig decodes the merged viper settings using the yaml tags on
// types.Config, so arxivkit.yaml and the struct share one set of names.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// outputFormat prefers the --format flag over configuration.
func outputFormat(cmd *cobra.Command, cfg types.Config) types.OutputFormat {
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		return types.OutputFormat(f)
	}
	return cfg.Output.Format
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
