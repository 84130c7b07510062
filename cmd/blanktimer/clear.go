package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the stored end time",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear end time: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared")
		return nil
	},
}
