package main

import (
	"fmt"
	"os"

	"github.com/fentz26/blanktimer/internal/config"
	"github.com/fentz26/blanktimer/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blanktimer",
	Short: "BlankTimer - a terminal countdown timer",
	Long:  `BlankTimer is a countdown timer with a ring indicator that survives the process being suspended.`,
	Args:  cobra.MaximumNArgs(1),
	// The bare command behaves like "start".
	RunE: runStart,
}

var (
	configPath   string
	storeBackend string
	dbPath       string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.blanktimer/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "End-time store backend: sqlite, file or memory")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the store database or JSON file")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "Run without the TUI, printing one line per tick")

	// Add subcommands
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(widgetCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(clearCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromHome()
	}
	if err != nil {
		return nil, err
	}

	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured end-time store.
func openStore(cfg *config.Config) (store.EndTimeStore, func() error, error) {
	s, closeFn, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, closeFn, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
