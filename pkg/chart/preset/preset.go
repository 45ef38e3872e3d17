// Package preset builds the styled base configuration of each chart kind
// from theme tokens and folds it together with sizing results and caller
// overrides.
//
// Every builder merges the same layers in the same order with
// [config.MergeAllOptions]:
//
//	Global <- kind preset <- sizing overrides <- caller overrides
//
// and normalizes the result last, so caller overrides can never re-enable
// grid lines on a bar chart's category axis.
package preset

import (
	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/config"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	"github.com/matzehuels/chartfit/pkg/chart/theme"
)

// Kind is a chart type.
type Kind string

const (
	KindBar      Kind = "bar"
	KindLine     Kind = "line"
	KindDoughnut Kind = "doughnut"
)

// Global returns the options shared by every chart kind.
func Global(t theme.Tokens) config.Options {
	return config.Options{
		Extra: config.Values{
			"responsive":          true,
			"maintainAspectRatio": false,
			"layout":              map[string]any{"padding": t.Spacing.ChartPadding.Px()},
			"interaction":         map[string]any{"mode": "nearest", "intersect": false},
		},
		Plugins: map[string]config.Values{
			"legend": {
				"display":  true,
				"position": "bottom",
				"labels": map[string]any{
					"usePointStyle": true,
					"pointStyle":    "circle",
					"boxWidth":      t.Spacing.LegendPointSize.Px(),
					"boxHeight":     t.Spacing.LegendPointSize.Px(),
					"padding":       t.Spacing.LegendPadding.Px(),
					"color":         theme.ToHex(t.Colors.TextDeemphasized),
					"font": map[string]any{
						"family":     t.Font.Family,
						"size":       t.Font.TickSize.Px(),
						"weight":     t.Font.TickWeight,
						"lineHeight": t.Font.LegendLineHeight,
					},
				},
			},
			"tooltip": tooltip(t, t.Colors.TooltipBorder, t.Spacing.TooltipBorderWidth.Px()),
		},
	}
}

func tooltip(t theme.Tokens, border string, borderWidth float64) config.Values {
	return config.Values{
		"enabled":            true,
		"mode":               "index",
		"intersect":          false,
		"backgroundColor":    t.Colors.TooltipBackground,
		"titleColor":         t.Colors.TooltipText,
		"bodyColor":          t.Colors.TooltipText,
		"borderColor":        border,
		"borderWidth":        borderWidth,
		"padding":            t.Spacing.TooltipPadding.Px(),
		"displayColors":      true,
		"multiKeyBackground": "transparent",
		"bodySpacing":        t.Spacing.TooltipBodySpacing.Px(),
		"titleMarginBottom":  t.Spacing.TooltipTitleMarginBottom.Px(),
		"caretSize":          t.Spacing.TooltipCaretSize.Px(),
		"caretPadding":       4.0,
		"boxPadding":         t.Spacing.TooltipBoxPadding.Px(),
		"usePointStyle":      true,
		"titleFont": map[string]any{
			"family": t.Font.Family,
			"size":   t.Font.TooltipTitleSize.Px(),
			"weight": t.Font.TooltipTitleWeight,
		},
		"bodyFont": map[string]any{
			"family": t.Font.Family,
			"size":   t.Font.TooltipBodySize.Px(),
			"weight": t.Font.TooltipBodyWeight,
		},
	}
}

// axis returns a styled scale node. The axis title is present but hidden;
// callers enable it with title.display and title.text.
func axis(t theme.Tokens, id string) config.Node {
	padding := config.Values{"top": 0.0, "bottom": t.Spacing.ScaleTitleGap.Px()}
	if id == "y" {
		padding = config.Values{"top": 0.0, "bottom": 0.0, "left": t.Spacing.ScaleTitleGap.Px(), "right": 0.0}
	}
	return config.Node{
		Grid: config.Values{
			"display":   true,
			"color":     t.Colors.Gridline,
			"drawTicks": false,
		},
		Border: config.Values{
			"display": true,
			"color":   t.Colors.Axis,
		},
		Ticks: config.Values{
			"color":   t.Colors.Tick,
			"padding": t.Spacing.TickPadding.Px(),
			"font": map[string]any{
				"family": t.Font.Family,
				"size":   t.Font.TickSize.Px(),
				"weight": t.Font.TickWeight,
			},
		},
		Title: &config.Title{
			Fields:  config.Values{"display": false, "color": theme.ToHex(t.Colors.TextDeemphasized)},
			Font:    config.Values{"family": t.Font.Family, "size": t.Font.ScaleTitleSize.Px()},
			Padding: padding,
		},
	}
}

func scales(t theme.Tokens, valueAxis string) map[string]config.Node {
	out := map[string]config.Node{"x": axis(t, "x"), "y": axis(t, "y")}
	v := out[valueAxis]
	v.Extra = config.Values{"beginAtZero": true}
	out[valueAxis] = v
	return out
}

// Bar returns the bar chart preset for orient.
func Bar(t theme.Tokens, orient chart.Orientation) config.Options {
	return config.Options{
		Extra:  config.Values{"indexAxis": orient.IndexAxis()},
		Scales: scales(t, orient.ValueAxis()),
		Elements: map[string]config.Values{
			"bar": {
				"borderColor":  t.Colors.BarBorder,
				"borderWidth":  t.Bar.BorderWidth.Px(),
				"borderRadius": t.Bar.BorderRadius.Px(),
			},
		},
	}
}

// Stacked returns the overrides that stack both axes.
func Stacked() config.Options {
	return config.Options{Scales: map[string]config.Node{
		"x": {Extra: config.Values{"stacked": true}},
		"y": {Extra: config.Values{"stacked": true}},
	}}
}

// Line returns the line chart preset.
func Line(t theme.Tokens) config.Options {
	return config.Options{
		Scales: scales(t, "y"),
		Elements: map[string]config.Values{
			"line": {
				"tension":     t.Line.Tension,
				"borderWidth": t.Line.BorderWidth.Px(),
			},
			"point": {
				"radius":           t.Line.PointRadius.Px(),
				"hoverRadius":      t.Line.PointRadius.Px() + 2,
				"borderWidth":      t.Line.PointBorderWidth.Px(),
				"hoverBorderWidth": t.Line.PointBorderWidth.Px(),
				"pointStyle":       "circle",
			},
		},
	}
}

// Doughnut returns the doughnut chart preset.
func Doughnut(t theme.Tokens) config.Options {
	return config.Options{
		Plugins: map[string]config.Values{
			"legend": {
				"position": "right",
				"labels": map[string]any{
					"padding":   12.0,
					"color":     t.Colors.Tick,
					"boxWidth":  12.0,
					"boxHeight": 12.0,
				},
			},
			"tooltip": {
				"borderColor": "transparent",
				"borderWidth": 0.0,
			},
		},
	}
}

// BuildBar layers Global, Bar, the sizing overrides and the caller
// overrides, then normalizes for orient.
func BuildBar(t theme.Tokens, orient chart.Orientation, res sizing.Result, p *profile.Profile, overrides ...config.Options) config.Options {
	layers := append([]config.Options{Global(t), Bar(t, orient), sizing.Apply(res).Options}, overrides...)
	return config.Normalize(config.MergeAllOptions(layers...), orient, p)
}

// BuildLine layers Global, Line and the caller overrides. Line charts keep
// category grid lines, so only tick lengths are normalized.
func BuildLine(t theme.Tokens, p *profile.Profile, overrides ...config.Options) config.Options {
	layers := append([]config.Options{Global(t), Line(t)}, overrides...)
	return config.NormalizeTicks(config.MergeAllOptions(layers...), p)
}

// BuildDoughnut layers Global, Doughnut and the caller overrides.
func BuildDoughnut(t theme.Tokens, overrides ...config.Options) config.Options {
	layers := append([]config.Options{Global(t), Doughnut(t)}, overrides...)
	return config.MergeAllOptions(layers...)
}

// Datasets converts chart data into dataset objects colored from the
// palette. Series with an explicit color keep it.
func Datasets(d chart.Data, t theme.Tokens, kind Kind) []config.Values {
	out := make([]config.Values, len(d.Series))
	for i, s := range d.Series {
		color := s.Color
		if color == "" {
			color = t.SeriesColor(i)
		}
		ds := config.Values{
			"label": s.Label,
			"data":  append([]float64(nil), s.Data...),
		}
		switch kind {
		case KindLine:
			ds["borderColor"] = color
			ds["backgroundColor"] = color
			ds["pointBackgroundColor"] = color
		case KindDoughnut:
			colors := make([]any, len(s.Data))
			for j := range s.Data {
				colors[j] = t.SeriesColor(j)
			}
			ds["backgroundColor"] = colors
		default:
			ds["backgroundColor"] = color
		}
		out[i] = ds
	}
	return out
}
