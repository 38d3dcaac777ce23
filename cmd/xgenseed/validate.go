package main

import (
	"fmt"

	"github.com/aretw0/xgenseed/internal/adapters/scenefile"
	"github.com/aretw0/xgenseed/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scene.yaml>",
	Short: "Check a scene description for consistency",
	Long:  `Loads a scene description and reports patch assemblies that cannot be expanded.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runValidate(args[0]); err != nil {
			cmd.SilenceUsage = true
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Scene is valid!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	sc, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	return validator.ValidateScene(sc)
}
