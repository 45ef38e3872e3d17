package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	chartio "github.com/matzehuels/chartfit/pkg/io"
	"github.com/matzehuels/chartfit/pkg/pipeline"
)

// sizeOpts holds the flags shared by the size subcommands.
type sizeOpts struct {
	categories int  // number of categories
	series     int  // number of series per category
	json       bool // print the result as JSON
}

func (o *sizeOpts) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.categories, "categories", "c", 1, "number of categories")
	cmd.Flags().IntVarP(&o.series, "series", "s", 1, "number of series")
	cmd.Flags().BoolVar(&o.json, "json", false, "print the result as JSON")
}

// sizeCommand creates the size command with one subcommand per estimator.
func (c *CLI) sizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Compute bar proportions and chart extents",
	}
	cmd.AddCommand(c.sizeHorizontalCommand())
	cmd.AddCommand(c.sizeResponsiveCommand())
	return cmd
}

// sizeHorizontalCommand creates the "size horizontal" subcommand.
func (c *CLI) sizeHorizontalCommand() *cobra.Command {
	var (
		opts        sizeOpts
		bounds      sizing.Bounds
		lead, trail float64
	)
	cmd := &cobra.Command{
		Use:   "horizontal",
		Short: "Size the category axis so bars keep their ideal width",
		Example: `  chartfit size horizontal -c 12 -s 2
  chartfit size horizontal -c 40 --ideal 20 --min 14 --max 28 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lead") {
				bounds.PaddingLead = sizing.Padding(lead)
			}
			if cmd.Flags().Changed("trail") {
				bounds.PaddingTrail = sizing.Padding(trail)
			}

			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			res, hit, err := runner.SizeHorizontal(cmd.Context(), opts.categories, opts.series, bounds, pipeline.Options{})
			if err != nil {
				return err
			}
			return writeSizing(cmd.OutOrStdout(), opts, res, "", hit, runner.Profiles.Load(), sizing.WithBounds(bounds))
		},
	}
	opts.register(cmd)
	cmd.Flags().Float64Var(&bounds.IdealBarWidth, "ideal", 0, "ideal bar width (default from profile)")
	cmd.Flags().Float64Var(&bounds.MinBarWidth, "min", 0, "minimum bar width (default from profile)")
	cmd.Flags().Float64Var(&bounds.MaxBarWidth, "max", 0, "maximum bar width (default from profile)")
	cmd.Flags().Float64Var(&lead, "lead", 0, "padding before the first category (default from profile)")
	cmd.Flags().Float64Var(&trail, "trail", 0, "padding after the last category (default from profile)")
	return cmd
}

// sizeResponsiveCommand creates the "size responsive" subcommand.
func (c *CLI) sizeResponsiveCommand() *cobra.Command {
	var (
		opts        sizeOpts
		req         sizing.Request
		orientation string
		rangeMin    float64
		rangeMax    float64
	)
	cmd := &cobra.Command{
		Use:   "responsive",
		Short: "Size the value region against a container width",
		Example: `  chartfit size responsive -c 2 --container 900 --range-min 1245 --range-max 1890
  chartfit size responsive -c 5 -s 3 --container 1440 --wide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := chart.ParseOrientation(orientation)
			if err != nil {
				return err
			}
			req.Orientation = o
			req.Categories, req.Series = opts.categories, opts.series
			if cmd.Flags().Changed("range-min") || cmd.Flags().Changed("range-max") {
				req.Range = &chart.Range{Min: rangeMin, Max: rangeMax}
			}

			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			res, hit, err := runner.SizeResponsive(cmd.Context(), req, pipeline.Options{})
			if err != nil {
				return err
			}
			p := runner.Profiles.Load()
			return writeSizing(cmd.OutOrStdout(), opts, res, sizing.Detect(req.ContainerExtent, p), hit, p)
		},
	}
	opts.register(cmd)
	cmd.Flags().Float64Var(&req.ContainerExtent, "container", 800, "container width")
	cmd.Flags().StringVar(&orientation, "orientation", "vertical", "bar orientation: vertical, horizontal")
	cmd.Flags().Float64Var(&rangeMin, "range-min", 0, "smallest data value")
	cmd.Flags().Float64Var(&rangeMax, "range-max", 0, "largest data value")
	cmd.Flags().BoolVar(&req.Stacked, "stacked", false, "series are stacked")
	cmd.Flags().BoolVar(&req.AllowWideBars, "wide", false, "allow thicker bars in wide containers")
	return cmd
}

// sizingOutput is the JSON form of a size command's result.
type sizingOutput struct {
	Result  sizing.Result  `json:"result"`
	Metrics sizing.Metrics `json:"metrics"`
	Layout  sizing.Layout  `json:"layout,omitempty"`
	Cached  bool           `json:"cached"`
}

func writeSizing(w io.Writer, opts sizeOpts, res sizing.Result, layout sizing.Layout, hit bool, p *profile.Profile, bounds ...sizing.BoundsOption) error {
	m, err := sizing.Measure(opts.categories, opts.series, res.Proportions, p, bounds...)
	if err != nil {
		return err
	}
	if opts.json {
		return chartio.WriteJSON(w, sizingOutput{Result: res, Metrics: m, Layout: layout, Cached: hit})
	}

	rows := [][]string{
		{"extent", formatNumber(res.Extent)},
		{"bounds", fmt.Sprintf("%s to %s", formatNumber(res.MinExtent), formatNumber(res.MaxExtent))},
		{"regime", res.Regime.String()},
		{"group", formatNumber(res.Group)},
		{"bar", formatNumber(res.Bar)},
		{"spacing", formatNumber(res.Spacing)},
		{"bar width", formatNumber(m.BarWidth)},
	}
	if res.MaxBarThickness > 0 {
		rows = append(rows, []string{"max thickness", formatNumber(res.MaxBarThickness)})
	}
	if layout != "" {
		rows = append(rows, []string{"layout", string(layout)})
	}
	fmt.Fprintln(w, renderTable([]string{"", "value"}, rows))
	printStats(opts.categories, opts.series, "", hit)
	return nil
}
