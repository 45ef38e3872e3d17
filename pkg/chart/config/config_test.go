package config

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/errors"
)

func sampleNode() Node {
	return Node{
		Grid:  Values{"color": "a", "tickLength": 5},
		Ticks: Values{"color": "#252b33", "font": map[string]any{"size": 12}},
		Title: &Title{
			Fields: Values{"display": true, "text": "Revenue"},
			Font:   Values{"size": 14, "weight": "600"},
		},
		Extra: Values{"stacked": true, "beginAtZero": true},
	}
}

func TestMergeIdentity(t *testing.T) {
	base := sampleNode()
	if diff := cmp.Diff(base, Merge(base, Node{})); diff != "" {
		t.Errorf("Merge(base, {}) mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSubtreePreservation(t *testing.T) {
	base := Node{Grid: Values{"color": "a", "tickLength": 5}}
	over := Node{Grid: Values{"color": "b"}}

	got := Merge(base, over)
	want := Node{Grid: Values{"color": "b", "tickLength": 5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeKeepsBaseOnlyKeys(t *testing.T) {
	base := sampleNode()
	over := Node{
		Ticks: Values{"color": "red"},
		Title: &Title{Font: Values{"size": 16}},
		Extra: Values{"stacked": false},
	}

	got := Merge(base, over)
	want := Node{
		Grid:  Values{"color": "a", "tickLength": 5},
		Ticks: Values{"color": "red", "font": map[string]any{"size": 12}},
		Title: &Title{
			Fields: Values{"display": true, "text": "Revenue"},
			Font:   Values{"size": 16, "weight": "600"},
		},
		Extra: Values{"stacked": false, "beginAtZero": true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeAtomicReplacesNestedObject(t *testing.T) {
	base := Node{Ticks: Values{"font": map[string]any{"size": 12, "family": "Arial"}}}
	over := Node{Ticks: Values{"font": map[string]any{"size": 10}}}

	got := Merge(base, over)
	want := map[string]any{"size": 10}
	if diff := cmp.Diff(want, got.Ticks["font"]); diff != "" {
		t.Errorf("ticks.font mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeAtomicOverSubtree(t *testing.T) {
	base := Node{Grid: Values{"color": "a"}}
	over := Node{Extra: Values{"grid": false}}

	got := Merge(base, over)
	if got.Grid != nil {
		t.Errorf("Grid = %v, want nil after atomic override", got.Grid)
	}
	if got.Extra["grid"] != false {
		t.Errorf("Extra[grid] = %v, want false", got.Extra["grid"])
	}
}

func TestMergeDoesNotMutate(t *testing.T) {
	base := sampleNode()
	over := Node{Grid: Values{"color": "b"}, Title: &Title{Padding: Values{"top": 4}}}
	baseCopy, overCopy := base.Clone(), over.Clone()

	got := Merge(base, over)
	got.Grid["color"] = "mutated"
	got.Ticks["font"].(map[string]any)["size"] = 99
	got.Title.Font["size"] = 99

	if diff := cmp.Diff(baseCopy, base); diff != "" {
		t.Errorf("base mutated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(overCopy, over); diff != "" {
		t.Errorf("override mutated (-want +got):\n%s", diff)
	}
}

func TestMergeAll(t *testing.T) {
	a := Node{Grid: Values{"color": "a", "lineWidth": 1}}
	b := Node{Grid: Values{"color": "b"}, Border: Values{"display": false}}
	c := Node{Grid: Values{"lineWidth": 2}}

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	if diff := cmp.Diff(left, right); diff != "" {
		t.Errorf("Merge is not associative (-left +right):\n%s", diff)
	}
	if diff := cmp.Diff(left, MergeAll(a, b, c)); diff != "" {
		t.Errorf("MergeAll mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOptionsDeepPluginKeys(t *testing.T) {
	base := Options{
		Plugins: map[string]Values{
			"tooltip": {"enabled": true, "callbacks": map[string]any{"title": "t", "label": "l"}},
			"legend":  {"display": true, "labels": map[string]any{"boxWidth": 12, "color": "#000"}},
			"title":   {"font": map[string]any{"size": 14, "weight": "bold"}},
		},
	}
	over := Options{
		Plugins: map[string]Values{
			"tooltip": {"callbacks": map[string]any{"label": "L"}},
			"legend":  {"labels": map[string]any{"color": "#fff"}},
			"title":   {"font": map[string]any{"size": 16}},
		},
	}

	got := MergeOptions(base, over)
	want := map[string]Values{
		"tooltip": {"enabled": true, "callbacks": map[string]any{"title": "t", "label": "L"}},
		"legend":  {"display": true, "labels": map[string]any{"boxWidth": 12, "color": "#fff"}},
		"title":   {"font": map[string]any{"size": 16}},
	}
	if diff := cmp.Diff(want, got.Plugins); diff != "" {
		t.Errorf("Plugins mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOptionsScales(t *testing.T) {
	base := Options{
		Scales:   map[string]Node{"x": {Grid: Values{"color": "a"}}, "y": {Extra: Values{"beginAtZero": true}}},
		Elements: map[string]Values{"bar": {"borderRadius": 4}},
		Extra:    Values{"responsive": true},
	}
	over := Options{
		Scales:   map[string]Node{"x": {Grid: Values{"display": false}}},
		Elements: map[string]Values{"bar": {"barPercentage": 0.9}},
		Extra:    Values{"maintainAspectRatio": false},
	}

	got := MergeOptions(base, over)
	want := Options{
		Scales: map[string]Node{
			"x": {Grid: Values{"color": "a", "display": false}},
			"y": {Extra: Values{"beginAtZero": true}},
		},
		Elements: map[string]Values{"bar": {"borderRadius": 4, "barPercentage": 0.9}},
		Extra:    Values{"responsive": true, "maintainAspectRatio": false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeCategoryAxisSuppression(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		orient   chart.Orientation
		category string
		value    string
	}{
		{chart.Vertical, "x", "y"},
		{chart.Horizontal, "y", "x"},
	}

	for _, tt := range tests {
		t.Run(string(tt.orient), func(t *testing.T) {
			o := Options{Scales: map[string]Node{
				tt.category: {Grid: Values{"display": true, "tickLength": 8}},
				tt.value:    {Grid: Values{"color": "#d5d6d8"}},
			}}
			got := Normalize(o, tt.orient, p)

			cat := got.Scales[tt.category].Grid
			if cat[GridDisplay] != false {
				t.Errorf("%s grid.display = %v, want false", tt.category, cat[GridDisplay])
			}
			if cat[GridTickLength] != 0.0 {
				t.Errorf("%s grid.tickLength = %v, want 0", tt.category, cat[GridTickLength])
			}
			val := got.Scales[tt.value].Grid
			if val[GridTickLength] != p.Ticks.Length {
				t.Errorf("%s grid.tickLength = %v, want %v", tt.value, val[GridTickLength], p.Ticks.Length)
			}
			if o.Scales[tt.category].Grid[GridDisplay] != true {
				t.Error("Normalize mutated its input")
			}
		})
	}
}

func TestNormalizeCreatesCategoryAxis(t *testing.T) {
	got := Normalize(Options{}, chart.Vertical, profile.Default())
	want := Values{GridDisplay: false, GridTickLength: 0.0}
	if diff := cmp.Diff(want, got.Scales["x"].Grid); diff != "" {
		t.Errorf("x grid mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeHiddenTickLength(t *testing.T) {
	p := profile.Default()
	p.Ticks.HiddenLength = 3

	tests := []struct {
		name string
		grid Values
		want float64
	}{
		{"display off", Values{"display": false, "tickLength": 20.0}, 3},
		{"draw ticks off", Values{"drawTicks": false}, 3},
		{"hidden marker", Values{"tickColor": "transparent"}, 3},
		{"visible default", Values{"color": "#d5d6d8"}, p.Ticks.Length},
		{"visible explicit", Values{"tickLength": 20.0}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Options{Scales: map[string]Node{"y": {Grid: tt.grid}}}
			got := Normalize(o, chart.Vertical, p)
			if v := got.Scales["y"].Grid[GridTickLength]; v != tt.want {
				t.Errorf("tickLength = %v, want %v", v, tt.want)
			}
		})
	}
}

func TestNormalizeRunsLast(t *testing.T) {
	p := profile.Default()
	merged := MergeAllOptions(
		Options{Scales: map[string]Node{"x": {Grid: Values{"display": false}}}},
		Options{Scales: map[string]Node{"x": {Grid: Values{"display": true, "tickLength": 10}}}},
	)
	got := Normalize(merged, chart.Vertical, p)
	if got.Scales["x"].Grid[GridDisplay] != false || got.Scales["x"].Grid[GridTickLength] != 0.0 {
		t.Errorf("category grid = %v, want display false and tickLength 0", got.Scales["x"].Grid)
	}
}

func TestFromMapRoundTrip(t *testing.T) {
	in := map[string]any{
		"stacked": true,
		"grid":    map[string]any{"color": "#d5d6d8"},
		"title": map[string]any{
			"text":    "Revenue",
			"font":    map[string]any{"size": 14.0},
			"padding": 4.0,
		},
		"ticks": "auto",
	}

	n := FromMap(in)
	if n.Grid["color"] != "#d5d6d8" {
		t.Errorf("Grid = %v, want color set", n.Grid)
	}
	if n.Ticks != nil || n.Extra["ticks"] != "auto" {
		t.Errorf("non-object ticks should stay atomic, got Ticks=%v Extra=%v", n.Ticks, n.Extra)
	}
	if n.Title == nil || n.Title.Font["size"] != 14.0 || n.Title.Fields["padding"] != 4.0 {
		t.Errorf("Title = %+v, want font subtree and atomic padding", n.Title)
	}
	if diff := cmp.Diff(in, n.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsJSON(t *testing.T) {
	raw := `{"plugins":{"legend":{"display":false}},"responsive":true,"scales":{"y":{"grid":{"color":"red"}}}}`

	var o Options
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if o.Scales["y"].Grid["color"] != "red" {
		t.Errorf("scales.y.grid.color = %v, want red", o.Scales["y"].Grid["color"])
	}

	out, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != raw {
		t.Errorf("Marshal() = %s, want %s", out, raw)
	}
}

func TestOptionsFromMapRejectsNonObjects(t *testing.T) {
	_, err := OptionsFromMap(map[string]any{"plugins": map[string]any{"legend": false}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("OptionsFromMap() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}
