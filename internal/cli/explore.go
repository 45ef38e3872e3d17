package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	"github.com/matzehuels/chartfit/pkg/errors"
)

// exploreCommand creates the explore command, an interactive view of both
// estimators as the chart parameters change.
func (c *CLI) exploreCommand() *cobra.Command {
	var m ExploreModel

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Interactively explore how chart parameters change sizing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadProfile()
			if err != nil {
				return err
			}
			m.Profile = p
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	m = NewExploreModel(nil)
	cmd.Flags().IntVarP(&m.Categories, "categories", "c", m.Categories, "initial number of categories")
	cmd.Flags().IntVarP(&m.Series, "series", "s", m.Series, "initial number of series")
	cmd.Flags().Float64Var(&m.Container, "container", m.Container, "initial container width")

	return cmd
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExploreModel - Interactive sizing explorer
// =============================================================================

// exploreField is one adjustable parameter of the explorer.
type exploreField int

const (
	fieldCategories exploreField = iota
	fieldSeries
	fieldContainer
	fieldSpread
	fieldOrientation
	fieldStacked
	fieldWide
	fieldCount
)

var fieldNames = [fieldCount]string{
	"categories", "series", "container", "spread", "orientation", "stacked", "wide bars",
}

const (
	exploreMaxCategories = 200
	exploreMaxSeries     = 12
	exploreContainerStep = 50
	exploreSpreadStep    = 5
	exploreRangeMax      = 1000 // synthetic data maximum the spread is taken from
	previewWidth         = 64   // characters available to the bar preview
	previewScale         = 4    // pixels per preview character
)

// ExploreModel is the bubbletea model behind the explore command.
type ExploreModel struct {
	Profile     *profile.Profile
	Categories  int
	Series      int
	Container   float64
	Spread      int // percent of the data maximum between min and max
	Orientation chart.Orientation
	Stacked     bool
	Wide        bool
	Cursor      exploreField
}

// NewExploreModel creates an explorer with a small two-series chart in a
// regular-width container. A nil profile uses the defaults.
func NewExploreModel(p *profile.Profile) ExploreModel {
	if p == nil {
		p = profile.Default()
	}
	return ExploreModel{
		Profile:     p,
		Categories:  5,
		Series:      2,
		Container:   800,
		Spread:      35,
		Orientation: chart.Vertical,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j", "tab":
		if m.Cursor < fieldCount-1 {
			m.Cursor++
		}
	case "right", "l", "+":
		m = m.adjust(1)
	case "left", "h", "-":
		m = m.adjust(-1)
	case " ", "space", "enter":
		m = m.adjust(0)
	}
	return m, nil
}

// adjust moves the selected field by one step in direction dir. Toggles
// flip regardless of direction.
func (m ExploreModel) adjust(dir int) ExploreModel {
	switch m.Cursor {
	case fieldCategories:
		m.Categories = clampInt(m.Categories+dir, 1, exploreMaxCategories)
	case fieldSeries:
		m.Series = clampInt(m.Series+dir, 1, exploreMaxSeries)
	case fieldContainer:
		m.Container = math.Max(exploreContainerStep, m.Container+float64(dir*exploreContainerStep))
	case fieldSpread:
		m.Spread = clampInt(m.Spread+dir*exploreSpreadStep, 0, 100)
	case fieldOrientation:
		if m.Orientation == chart.Horizontal {
			m.Orientation = chart.Vertical
		} else {
			m.Orientation = chart.Horizontal
		}
	case fieldStacked:
		m.Stacked = !m.Stacked
	case fieldWide:
		m.Wide = !m.Wide
	}
	return m
}

// request returns the responsive sizing request for the current parameters.
func (m ExploreModel) request() sizing.Request {
	return sizing.Request{
		Categories:      m.Categories,
		Series:          m.Series,
		Orientation:     m.Orientation,
		ContainerExtent: m.Container,
		Range: &chart.Range{
			Min: exploreRangeMax * float64(100-m.Spread) / 100,
			Max: exploreRangeMax,
		},
		Stacked:       m.Stacked,
		AllowWideBars: m.Wide,
	}
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sizing Explorer"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ←/→ adjust  space toggle  q quit"))
	b.WriteString("\n\n")

	for f := exploreField(0); f < fieldCount; f++ {
		cursor, style := "  ", listNormalStyle
		if f == m.Cursor {
			cursor, style = "▸ ", listSelectedStyle
		}
		label := lipgloss.NewStyle().Width(13).Render(fieldNames[f])
		b.WriteString(cursor + style.Render(label) + StyleValue.Render(m.fieldValue(f)) + "\n")
	}
	b.WriteString("\n")

	horizontal, herr := sizing.EstimateExtent(m.Categories, m.Series, m.Profile)
	responsive, rerr := sizing.EstimateResponsive(m.request(), m.Profile)

	b.WriteString(renderTable(
		[]string{"", "horizontal", "responsive"},
		[][]string{
			{"extent", resultCell(horizontal.Extent, herr), resultCell(responsive.Extent, rerr)},
			{"regime", regimeCell(horizontal, herr), regimeCell(responsive, rerr)},
			{"group", resultCell(horizontal.Group, herr), resultCell(responsive.Group, rerr)},
			{"bar", resultCell(horizontal.Bar, herr), resultCell(responsive.Bar, rerr)},
			{"max thickness", "-", resultCell(responsive.MaxBarThickness, rerr)},
			{"layout", "-", string(sizing.Detect(m.Container, m.Profile))},
		},
	))
	b.WriteString("\n\n")
	if herr == nil {
		b.WriteString(m.preview(horizontal))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ExploreModel) fieldValue(f exploreField) string {
	switch f {
	case fieldCategories:
		return fmt.Sprint(m.Categories)
	case fieldSeries:
		return fmt.Sprint(m.Series)
	case fieldContainer:
		return formatNumber(m.Container)
	case fieldSpread:
		return fmt.Sprintf("%d%%", m.Spread)
	case fieldOrientation:
		return m.Orientation.String()
	case fieldStacked:
		return onOff(m.Stacked)
	case fieldWide:
		return onOff(m.Wide)
	}
	return ""
}

// preview draws one row of bar groups at the horizontal estimate's bar
// width and spacing, cut off at previewWidth characters.
func (m ExploreModel) preview(r sizing.Result) string {
	metrics, err := sizing.Measure(m.Categories, m.Series, r.Proportions, m.Profile)
	if err != nil {
		return ""
	}
	bar := max(1, int(math.Round(metrics.BarWidth/previewScale)))
	gap := max(1, int(math.Round(r.Spacing/previewScale)))

	var row strings.Builder
	n := 0
	for i := 0; i < m.Categories && n < previewWidth; i++ {
		for s := 0; s < m.Series && n < previewWidth; s++ {
			w := min(bar, previewWidth-n)
			row.WriteString(lipgloss.NewStyle().Foreground(seriesColors[s%len(seriesColors)]).Render(strings.Repeat("█", w)))
			n += w
		}
		if n < previewWidth {
			w := min(gap, previewWidth-n)
			row.WriteString(strings.Repeat(" ", w))
			n += w
		}
	}
	if n >= previewWidth {
		row.WriteString(listDimStyle.Render("…"))
	}
	return row.String()
}

var seriesColors = []lipgloss.Color{colorCyan, colorGreen, colorYellow, colorBlue, colorRed}

func resultCell(v float64, err error) string {
	if err != nil {
		return errors.UserMessage(err)
	}
	return formatNumber(v)
}

func regimeCell(r sizing.Result, err error) string {
	if err != nil {
		return "-"
	}
	return r.Regime.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
