package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/xgenseed"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the assembly model and the available generators",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		return runInfo(cmd.OutOrStdout(), logging.New(level))
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(out io.Writer, logger *slog.Logger) error {
	p := xgenseed.New(xgenseed.WithLogger(logger))
	if err := p.Load(); err != nil {
		return err
	}
	defer logRelease(logger, "plugin", p.Unload)

	factory, err := p.NewAssemblyFactory(xgenseed.DefaultGenerator)
	if err != nil {
		return err
	}
	defer logRelease(logger, "assembly factory", factory.Release)

	meta := factory.Metadata()
	fmt.Fprintf(out, "model:      %s\n", factory.Model())
	fmt.Fprintf(out, "label:      %s\n", meta[domain.MetadataLabel])
	fmt.Fprintf(out, "inputs:     %d\n", len(factory.InputMetadata()))
	fmt.Fprintf(out, "generators: %v\n", p.Generators())
	return nil
}
