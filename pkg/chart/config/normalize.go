package config

import (
	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
)

// Grid fields consulted by [Normalize].
const (
	GridDisplay    = "display"
	GridDrawTicks  = "drawTicks"
	GridTickColor  = "tickColor"
	GridTickLength = "tickLength"
)

// Normalize applies the post-merge axis rules and returns a new tree.
//
// Tick lengths first follow grid visibility (see [NormalizeTicks]). The
// category axis for orient is then forced to grid.display false and
// tickLength 0, whatever the merged layers asked for. Normalize must run
// after the last merge.
func Normalize(o Options, orient chart.Orientation, p *profile.Profile) Options {
	out := NormalizeTicks(o, p)

	axis := orient.CategoryAxis()
	n := out.Scales[axis]
	if n.Grid == nil {
		n.Grid = Values{}
	}
	n.Grid[GridDisplay] = false
	n.Grid[GridTickLength] = 0.0
	out.Scales[axis] = n
	return out
}

// NormalizeTicks sets the tick length of every axis and returns a new tree.
// An axis whose grid is hidden (display or drawTicks false, or the tick
// color equal to the profile's hidden marker) gets the profile's hidden
// length; other axes get the default length unless one is set.
func NormalizeTicks(o Options, p *profile.Profile) Options {
	out := o.Clone()
	if out.Scales == nil {
		out.Scales = make(map[string]Node, 1)
	}
	for axis, n := range out.Scales {
		if n.Grid == nil {
			n.Grid = Values{}
		}
		switch {
		case gridHidden(n.Grid, p.Ticks.HiddenMarker):
			n.Grid[GridTickLength] = p.Ticks.HiddenLength
		case !n.Grid.Has(GridTickLength):
			n.Grid[GridTickLength] = p.Ticks.Length
		}
		out.Scales[axis] = n
	}
	return out
}

func gridHidden(grid Values, marker string) bool {
	if display, ok := grid.Bool(GridDisplay); ok && !display {
		return true
	}
	if draw, ok := grid.Bool(GridDrawTicks); ok && !draw {
		return true
	}
	color, ok := grid[GridTickColor].(string)
	return ok && marker != "" && color == marker
}
