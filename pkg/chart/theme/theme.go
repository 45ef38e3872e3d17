// Package theme holds the resolved design tokens chart presets are styled
// with.
//
// Tokens are plain values: colors, font settings and pixel sizes that a
// presentation layer has already resolved. chartfit never looks tokens up
// itself; it receives a [Tokens] value from the caller or from a token file
// loaded with [Load], and falls back to [Default] for anything unset.
package theme

import (
	"github.com/matzehuels/chartfit/pkg/io"
)

// Colors are the resolved color tokens.
type Colors struct {
	Axis              string `json:"axis" toml:"axis" yaml:"axis"`
	Gridline          string `json:"gridline" toml:"gridline" yaml:"gridline"`
	Tick              string `json:"tick" toml:"tick" yaml:"tick"`
	TextDeemphasized  string `json:"text_deemphasized" toml:"text_deemphasized" yaml:"text_deemphasized"`
	TooltipBackground string `json:"tooltip_background" toml:"tooltip_background" yaml:"tooltip_background"`
	TooltipBorder     string `json:"tooltip_border" toml:"tooltip_border" yaml:"tooltip_border"`
	TooltipText       string `json:"tooltip_text" toml:"tooltip_text" yaml:"tooltip_text"`
	BarBorder         string `json:"bar_border" toml:"bar_border" yaml:"bar_border"`
	Marker            string `json:"marker" toml:"marker" yaml:"marker"`
}

// Font holds typography tokens.
type Font struct {
	Family             string `json:"family" toml:"family" yaml:"family"`
	TickSize           Length `json:"tick_size" toml:"tick_size" yaml:"tick_size"`
	TickWeight         string `json:"tick_weight" toml:"tick_weight" yaml:"tick_weight"`
	LegendLineHeight   string `json:"legend_line_height" toml:"legend_line_height" yaml:"legend_line_height"`
	ScaleTitleSize     Length `json:"scale_title_size" toml:"scale_title_size" yaml:"scale_title_size"`
	TooltipTitleSize   Length `json:"tooltip_title_size" toml:"tooltip_title_size" yaml:"tooltip_title_size"`
	TooltipTitleWeight string `json:"tooltip_title_weight" toml:"tooltip_title_weight" yaml:"tooltip_title_weight"`
	TooltipBodySize    Length `json:"tooltip_body_size" toml:"tooltip_body_size" yaml:"tooltip_body_size"`
	TooltipBodyWeight  string `json:"tooltip_body_weight" toml:"tooltip_body_weight" yaml:"tooltip_body_weight"`
}

// Spacing holds size and padding tokens in pixels.
type Spacing struct {
	ChartPadding             Length `json:"chart_padding" toml:"chart_padding" yaml:"chart_padding"`
	TickPadding              Length `json:"tick_padding" toml:"tick_padding" yaml:"tick_padding"`
	LegendPointSize          Length `json:"legend_point_size" toml:"legend_point_size" yaml:"legend_point_size"`
	LegendPadding            Length `json:"legend_padding" toml:"legend_padding" yaml:"legend_padding"`
	ScaleTitleGap            Length `json:"scale_title_gap" toml:"scale_title_gap" yaml:"scale_title_gap"`
	TooltipPadding           Length `json:"tooltip_padding" toml:"tooltip_padding" yaml:"tooltip_padding"`
	TooltipTitleMarginBottom Length `json:"tooltip_title_margin_bottom" toml:"tooltip_title_margin_bottom" yaml:"tooltip_title_margin_bottom"`
	TooltipBodySpacing       Length `json:"tooltip_body_spacing" toml:"tooltip_body_spacing" yaml:"tooltip_body_spacing"`
	TooltipCaretSize         Length `json:"tooltip_caret_size" toml:"tooltip_caret_size" yaml:"tooltip_caret_size"`
	TooltipBoxPadding        Length `json:"tooltip_box_padding" toml:"tooltip_box_padding" yaml:"tooltip_box_padding"`
	TooltipBorderWidth       Length `json:"tooltip_border_width" toml:"tooltip_border_width" yaml:"tooltip_border_width"`
}

// Bar holds bar element tokens.
type Bar struct {
	BorderWidth  Length `json:"border_width" toml:"border_width" yaml:"border_width"`
	BorderRadius Length `json:"border_radius" toml:"border_radius" yaml:"border_radius"`
}

// Line holds line and point element tokens.
type Line struct {
	Tension          float64 `json:"tension" toml:"tension" yaml:"tension"`
	BorderWidth      Length  `json:"border_width" toml:"border_width" yaml:"border_width"`
	PointRadius      Length  `json:"point_radius" toml:"point_radius" yaml:"point_radius"`
	PointBorderWidth Length  `json:"point_border_width" toml:"point_border_width" yaml:"point_border_width"`
}

// Tokens is the complete set of resolved design tokens.
type Tokens struct {
	Colors  Colors   `json:"colors" toml:"colors" yaml:"colors"`
	Font    Font     `json:"font" toml:"font" yaml:"font"`
	Spacing Spacing  `json:"spacing" toml:"spacing" yaml:"spacing"`
	Bar     Bar      `json:"bar" toml:"bar" yaml:"bar"`
	Line    Line     `json:"line" toml:"line" yaml:"line"`
	Series  []string `json:"series" toml:"series" yaml:"series"`
}

// Default returns the fallback tokens used when the presentation layer
// supplies nothing.
func Default() Tokens {
	return Tokens{
		Colors: Colors{
			Axis:              "#85888d",
			Gridline:          "#d5d6d8",
			Tick:              "#252b33",
			TextDeemphasized:  "#51555c",
			TooltipBackground: "#ffffff",
			TooltipBorder:     "#c2c4c6",
			TooltipText:       "#252b33",
			BarBorder:         "#ffffff",
			Marker:            "#252b33",
		},
		Font: Font{
			Family:             "Blackbaud Sans, Arial, sans-serif",
			TickSize:           13,
			TickWeight:         "400",
			LegendLineHeight:   "1.5",
			ScaleTitleSize:     13,
			TooltipTitleSize:   15,
			TooltipTitleWeight: "600",
			TooltipBodySize:    15,
			TooltipBodyWeight:  "400",
		},
		Spacing: Spacing{
			ChartPadding:             4,
			TickPadding:              8,
			LegendPointSize:          12,
			LegendPadding:            8,
			ScaleTitleGap:            16,
			TooltipPadding:           8,
			TooltipTitleMarginBottom: 8,
			TooltipBodySpacing:       4,
			TooltipCaretSize:         8,
			TooltipBoxPadding:        4,
			TooltipBorderWidth:       1,
		},
		Bar:  Bar{BorderWidth: 1, BorderRadius: 2},
		Line: Line{Tension: 0.2, BorderWidth: 2, PointRadius: 4, PointBorderWidth: 2},
		Series: []string{
			"#1870b8", "#4da254", "#fcac00", "#d93a3d",
			"#6949b5", "#00b4f1", "#e6659b", "#787b80",
		},
	}
}

// SeriesColor returns the palette color for the i-th series, cycling
// through the palette. It returns "" when the palette is empty.
func (t Tokens) SeriesColor(i int) string {
	if len(t.Series) == 0 || i < 0 {
		return ""
	}
	return t.Series[i%len(t.Series)]
}

// Load reads a token file (TOML, YAML or JSON by extension) over [Default].
func Load(path string) (Tokens, error) {
	t := Default()
	if err := io.ImportFile(path, &t); err != nil {
		return Tokens{}, err
	}
	return t, nil
}

// LoadOrDefault loads the tokens at path, or returns [Default] when path is empty.
func LoadOrDefault(path string) (Tokens, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Px returns l as a plain float64 for embedding in configuration trees.
func (l Length) Px() float64 { return float64(l) }
