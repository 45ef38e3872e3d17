package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output  string // output file path; empty writes to stdout
	compact bool   // emit compact JSON instead of indented
	refresh bool   // bypass cached results
}

// buildCommand creates the build command, which runs one chart spec
// through sizing and configuration merge.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <spec>",
		Short: "Size a chart spec and write its merged configuration",
		Example: `  chartfit build revenue.toml
  chartfit build revenue.yaml -o revenue.json --compact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "write compact JSON")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, path string, opts buildOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	spec, err := pipeline.LoadSpec(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, spec, pipeline.Options{
		Compact: opts.compact,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(res.Config))
		return err
	}
	if err := os.WriteFile(opts.output, append(res.Config, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Built %s", res.Name))
	printFile(opts.output)
	printStats(res.Stats.Categories, res.Stats.Series, res.Sizing.Regime.String(), res.CacheInfo.ConfigHit)
	return nil
}
