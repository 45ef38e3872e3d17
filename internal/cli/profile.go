package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/chart/profile"
	chartio "github.com/matzehuels/chartfit/pkg/io"
)

// profileCommand creates the profile command for inspecting tuning profiles.
func (c *CLI) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and validate tuning profiles",
	}

	cmd.AddCommand(c.profileShowCommand())
	cmd.AddCommand(c.profileValidateCommand())

	return cmd
}

// profileShowCommand creates the "profile show" subcommand. It prints the
// effective profile: the --profile file merged over the defaults.
func (c *CLI) profileShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective tuning profile",
		Example: `  chartfit profile show
  chartfit profile show --format yaml > profile.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := chartio.Format(strings.ToLower(format))
			if f == "yml" {
				f = chartio.FormatYAML
			}
			p, err := c.loadProfile()
			if err != nil {
				return err
			}
			return chartio.Write(cmd.OutOrStdout(), f, p)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(chartio.FormatTOML), "output format: toml, yaml, json")

	return cmd
}

// profileValidateCommand creates the "profile validate" subcommand.
func (c *CLI) profileValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a tuning profile for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.Load(args[0])
			if err != nil {
				return err
			}
			printSuccess("Profile %s is valid", args[0])
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"setting", "value"}, profileRows(p)))
			return nil
		},
	}
}

func profileRows(p *profile.Profile) [][]string {
	band := func(lo, hi float64) string {
		return formatNumber(lo) + " to " + formatNumber(hi)
	}
	return [][]string{
		{"density threshold", fmt.Sprint(p.DensityThreshold)},
		{"bar width", fmt.Sprintf("%s (%s)", formatNumber(p.IdealBarWidth), band(p.MinBarWidth, p.MaxBarWidth))},
		{"horizontal extent", band(p.Horizontal.Floor, p.Horizontal.Ceiling)},
		{"responsive extent", band(p.Responsive.Floor, p.Responsive.Ceiling)},
		{"narrow ceiling", formatNumber(p.Responsive.NarrowCeiling)},
		{"breakpoints", fmt.Sprintf("%s / %s / %s",
			formatNumber(p.Breakpoints.Narrow), formatNumber(p.Breakpoints.Wide), formatNumber(p.Breakpoints.Large))},
		{"thickness", fmt.Sprintf("%s / %s / %s",
			formatNumber(p.Thickness.Default), formatNumber(p.Thickness.Wide), formatNumber(p.Thickness.Large))},
	}
}
