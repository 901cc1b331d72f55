package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrylee0412/journal-query/internal/cache"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the cached OpenAlex premium API key",
	Long: `Key stores an OpenAlex premium API key in the local cache so searches
attach it automatically. The key is optional; without one, queries run
against the public API.`,
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Save an API key to the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])
		if key == "" {
			return fmt.Errorf("API key is empty")
		}
		store, err := cache.Open(loadConfig().CacheDir)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()
		if err := store.Put(cache.APIKeyEntry, key); err != nil {
			return fmt.Errorf("saving API key: %w", err)
		}
		fmt.Println("API key saved.")
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cached API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(loadConfig().CacheDir)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()
		key, err := store.Get(cache.APIKeyEntry)
		if err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
		if key == "" {
			fmt.Println("No API key cached.")
			return nil
		}
		fmt.Println(key)
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(loadConfig().CacheDir)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()
		if err := store.Delete(cache.APIKeyEntry); err != nil {
			return fmt.Errorf("clearing API key: %w", err)
		}
		fmt.Println("API key cleared.")
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyShowCmd, keyClearCmd)
	rootCmd.AddCommand(keyCmd)
}
