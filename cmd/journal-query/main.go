// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the journal-query CLI: keyword and
// year-bounded OpenAlex searches scoped to a curated journal allow-list,
// with RIS export of selected results.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harrylee0412/journal-query/internal/cache"
	"github.com/harrylee0412/journal-query/internal/journals"
	"github.com/harrylee0412/journal-query/internal/openalex"
	"github.com/harrylee0412/journal-query/internal/session"
	"github.com/harrylee0412/journal-query/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the journal-query CLI.
var rootCmd = &cobra.Command{
	Use:   "journal-query",
	Short: "Search top-journal articles on OpenAlex and export RIS",
	Long: `journal-query searches articles from a curated allow-list of journals
through the OpenAlex works API. Filter the allow-list by research field,
ABS ranking tier, and the FT50/UTD24 special collections; the matching
ISSNs scope every query. Results can be paged through, selected across
pages, and exported to RIS citation files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./journal-query.yaml or ~/.config/journal-query/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journal-query")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "journal-query"))
		}
	}

	viper.SetEnvPrefix("JOURNAL_QUERY")
	viper.AutomaticEnv()

	viper.SetDefault("journals_path", "journals.json")
	viper.SetDefault("cache_dir", defaultCacheDir())
	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "journal-query/"+version)
	viper.SetDefault("search.page_size", 20)
	viper.SetDefault("search.sort", openalex.SortCitedByDesc)
	viper.SetDefault("export.output_dir", ".")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".journal-query"
	}
	return filepath.Join(home, ".config", "journal-query")
}

func loadConfig() types.Config {
	return types.Config{
		JournalsPath: viper.GetString("journals_path"),
		CacheDir:     viper.GetString("cache_dir"),
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
			},
			PageSize: viper.GetInt("search.page_size"),
			Sort:     viper.GetString("search.sort"),
			Mailto:   viper.GetString("search.mailto"),
			APIKey:   viper.GetString("search.api_key"),
		},
		Export: types.ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
		},
	}
}

// loadJournals reads the allow-list. A load failure is logged and leaves
// the table empty; searches then report no results rather than aborting.
func loadJournals(cfg types.Config) []types.Journal {
	list, err := journals.Load(cfg.JournalsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load journal list: %v\n", err)
		return nil
	}
	return list
}

// openCache opens the credential cache. A failure is logged and the session
// runs without one.
func openCache(cfg types.Config) *cache.Cache {
	store, err := cache.Open(cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open credential cache: %v\n", err)
		return nil
	}
	return store
}

// newSession wires a Session from config, the allow-list, and the cached
// credential. The config api_key wins over the cached one.
func newSession(cfg types.Config, store *cache.Cache) *session.Session {
	if cfg.Search.APIKey == "" && store != nil {
		if key, err := store.Get(cache.APIKeyEntry); err == nil {
			cfg.Search.APIKey = key
		}
	}
	client := openalex.NewClient(cfg.Search.HTTPConfig)
	return session.New(client, loadJournals(cfg), cfg.Search, store)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
