package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	outDir      string // directory for the generated configs
	concurrency int    // maximum specs processed at once
	compact     bool   // emit compact JSON
	refresh     bool   // bypass cached results
}

// batchCommand creates the batch command, which builds many specs
// concurrently and writes one config per spec.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{concurrency: pipeline.DefaultConcurrency}

	cmd := &cobra.Command{
		Use:     "batch <spec>...",
		Short:   "Build many chart specs concurrently",
		Example: `  chartfit batch charts/*.toml --out-dir dist/charts`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", ".", "directory for the generated configs")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", opts.concurrency, "maximum specs built at once")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "write compact JSON")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, paths []string, opts batchOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	specs := make([]pipeline.ChartSpec, len(paths))
	for i, path := range paths {
		spec, err := pipeline.LoadSpec(path)
		if err != nil {
			return err
		}
		specs[i] = spec
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", opts.outDir, err)
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, len(specs))
	spinner.Start()
	prog := newProgress(logger)
	results, err := runner.ExecuteBatch(ctx, specs, pipeline.Options{
		Compact:  opts.compact,
		Refresh:  opts.refresh,
		Logger:   logger,
		OnResult: spinner.Record,
	}, opts.concurrency)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			printWarning("Batch cancelled")
			return err
		}
		spinner.StopWithError()
		return err
	}
	spinner.StopWithSuccess()

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		out := filepath.Join(opts.outDir, res.Name+".json")
		if err := os.WriteFile(out, append(res.Config, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		rows = append(rows, batchRow(res, out))
	}

	prog.done(fmt.Sprintf("Wrote %d configs to %s", len(results), opts.outDir))
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"chart", "mode", "height", "regime", "cache", "output"}, rows))
	return nil
}

func batchRow(res *pipeline.Result, out string) []string {
	mode := res.Mode
	if mode == "" {
		mode = "-"
	}
	status := iconFresh
	if res.CacheInfo.ConfigHit {
		status = iconCached
	}
	return []string{
		res.Name,
		mode,
		formatNumber(res.Height),
		res.Sizing.Regime.String(),
		status,
		out,
	}
}
