package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/xgenseed"
	"github.com/aretw0/xgenseed/internal/adapters/scenefile"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/abort"
	"github.com/aretw0/xgenseed/pkg/assembly"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/observability"
	"github.com/aretw0/xgenseed/pkg/ports"
	"github.com/aretw0/xgenseed/pkg/scene"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// expandOptions holds the flags of the expand command.
type expandOptions struct {
	ScenePath   string
	Assembly    string
	Generator   string
	ArgsFile    string
	MetricsFile string
}

var expandCmd = &cobra.Command{
	Use:   "expand <scene.yaml>",
	Short: "Expand one patch assembly of a scene",
	Long: `Loads a YAML scene description, expands the named patch assembly with the
selected generator and prints a per-face report. Exits non-zero when the
expansion fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := expandOptions{ScenePath: args[0]}
		opts.Assembly, _ = cmd.Flags().GetString("assembly")
		opts.Generator, _ = cmd.Flags().GetString("generator")
		opts.ArgsFile, _ = cmd.Flags().GetString("args-file")
		opts.MetricsFile, _ = cmd.Flags().GetString("metrics-file")

		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logger := logging.New(level)

		sw := abort.NewSignalSwitch()
		defer sw.Stop()

		report, err := runExpand(sw.Context(), opts, logger, sw, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !report.Success {
			cmd.SilenceUsage = true
			return errors.New("expansion failed")
		}
		return nil
	},
}

func init() {
	expandCmd.Flags().StringP("assembly", "a", "", "Name of the patch assembly to expand")
	expandCmd.Flags().StringP("generator", "g", xgenseed.DefaultGenerator, "Generator backend")
	expandCmd.Flags().String("args-file", "", "Read generator_args from this file instead of the scene")
	expandCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the expansion")
	_ = expandCmd.MarkFlagRequired("assembly")
	rootCmd.AddCommand(expandCmd)
}

func runExpand(ctx context.Context, opts expandOptions, logger *slog.Logger, sw ports.AbortSwitch, out io.Writer) (assembly.Report, error) {
	sc, err := scenefile.Load(opts.ScenePath)
	if err != nil {
		return assembly.Report{}, err
	}
	target, ok := findAssembly(sc, opts.Assembly)
	if !ok {
		return assembly.Report{}, fmt.Errorf("%w: %s", domain.ErrUnknownAssembly, opts.Assembly)
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return assembly.Report{}, err
	}

	p := xgenseed.New(xgenseed.WithLogger(logger), xgenseed.WithHooks(metrics.Hooks()))
	if err := p.Load(); err != nil {
		return assembly.Report{}, err
	}
	defer logRelease(logger, "plugin", p.Unload)

	factory, err := p.NewAssemblyFactory(opts.Generator)
	if err != nil {
		return assembly.Report{}, err
	}
	defer logRelease(logger, "assembly factory", factory.Release)

	prm := target.Params.Clone()
	if opts.ArgsFile != "" {
		data, err := os.ReadFile(opts.ArgsFile)
		if err != nil {
			return assembly.Report{}, fmt.Errorf("failed to read generator args: %w", err)
		}
		prm.Insert(domain.KeyGeneratorArgs, string(data))
	}

	patch := factory.Create(target.Name, prm)
	defer logRelease(logger, "patch assembly", patch.Release)

	report := patch.ExpandReport(ctx, sc, target.Parent, sw)
	printReport(out, report)

	if opts.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.MetricsFile, reg); err != nil {
			return report, fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return report, nil
}

// logRelease runs a deferred release and logs its error at debug level.
func logRelease(logger *slog.Logger, what string, release func() error) {
	if err := release(); err != nil {
		logger.Debug("release failed", "resource", what, "error", err)
	}
}

// findAssembly returns the first assembly named name at any depth.
func findAssembly(sc *scene.Scene, name string) (*scene.Assembly, bool) {
	for i := 0; i < sc.NumAssemblies(); i++ {
		a, _ := sc.Assembly(scene.AssemblyID(i))
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

func printReport(out io.Writer, r assembly.Report) {
	for _, f := range r.Faces {
		switch f.Status {
		case domain.FaceRendered:
			fmt.Fprintf(out, "face %d: %s (%s)\n", f.ID, f.Status, f.Assembly)
		case domain.FaceFailed:
			fmt.Fprintf(out, "face %d: %s: %v\n", f.ID, f.Status, f.Err)
		default:
			fmt.Fprintf(out, "face %d: %s\n", f.ID, f.Status)
		}
	}
	fmt.Fprintf(out, "assembly %s: success=%t aborted=%t rendered=%d skipped=%d failed=%d dropped_flushes=%d duration=%s\n",
		r.Assembly, r.Success, r.Aborted, r.Rendered, r.Skipped, r.Failed, r.DroppedFlushes, r.Duration)
	if r.Err != nil {
		fmt.Fprintf(out, "error: %v\n", r.Err)
	}
}
