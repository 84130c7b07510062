package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fentz26/blanktimer/internal/tui"
	"github.com/fentz26/blanktimer/internal/widget"
	"github.com/spf13/cobra"
)

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Show the passive countdown widget",
	RunE:  runWidget,
}

var widgetJSON bool

func init() {
	widgetCmd.Flags().BoolVar(&widgetJSON, "json", false, "Print one timeline as JSON and exit")
}

func runWidget(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	provider := &widget.Provider{Window: cfg.Widget.Window}

	if widgetJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(provider.Timeline(time.Now())); err != nil {
			return fmt.Errorf("failed to encode timeline: %w", err)
		}
		return nil
	}

	if err := tui.RunWidget(provider, cfg.Theme); err != nil {
		return fmt.Errorf("widget error: %w", err)
	}
	return nil
}
