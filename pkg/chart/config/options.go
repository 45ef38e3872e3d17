package config

// Top-level keys of a chart options tree.
const (
	KeyScales   = "scales"
	KeyPlugins  = "plugins"
	KeyElements = "elements"
)

// deepPluginKeys lists plugin fields merged one level deeper than the rest.
var deepPluginKeys = map[string]string{
	"tooltip": "callbacks",
	"legend":  "labels",
}

// Options is a chart-level configuration tree: per-axis scale nodes, plugin
// and element settings keyed by name, and any other top-level keys.
type Options struct {
	Scales   map[string]Node
	Plugins  map[string]Values
	Elements map[string]Values
	Extra    Values
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	out := Options{
		Plugins:  cloneMap(o.Plugins),
		Elements: cloneMap(o.Elements),
		Extra:    o.Extra.Clone(),
	}
	if o.Scales != nil {
		out.Scales = make(map[string]Node, len(o.Scales))
		for k, n := range o.Scales {
			out.Scales[k] = n.Clone()
		}
	}
	return out
}

// Scale returns the node for axis and whether it exists.
func (o Options) Scale(axis string) (Node, bool) {
	n, ok := o.Scales[axis]
	return n, ok
}

// MergeOptions returns base with override layered on top.
//
// Scales merge per axis with [Merge]. Plugins and elements merge field by
// field per name; tooltip.callbacks and legend.labels merge one level
// deeper so a caller can replace a single callback or label setting. Extra
// keys replace. Neither input is modified.
func MergeOptions(base, override Options) Options {
	out := Options{
		Plugins:  mergeMaps(base.Plugins, override.Plugins, mergePlugin),
		Elements: mergeMaps(base.Elements, override.Elements, func(_ string, a, b Values) Values { return a.Merge(b) }),
		Extra:    mergeValues(base.Extra, override.Extra),
	}
	if base.Scales != nil || override.Scales != nil {
		out.Scales = make(map[string]Node, len(base.Scales)+len(override.Scales))
		for k, n := range base.Scales {
			out.Scales[k] = n.Clone()
		}
		for k, n := range override.Scales {
			out.Scales[k] = Merge(base.Scales[k], n)
		}
	}
	return out
}

// MergeAllOptions folds trees left to right with [MergeOptions].
func MergeAllOptions(trees ...Options) Options {
	var out Options
	for _, t := range trees {
		out = MergeOptions(out, t)
	}
	return out
}

func mergePlugin(name string, base, override Values) Values {
	out := base.Merge(override)
	key, ok := deepPluginKeys[name]
	if !ok {
		return out
	}
	a, aok := asValues(base[key])
	b, bok := asValues(override[key])
	if aok && bok {
		out[key] = map[string]any(a.Merge(b))
	}
	return out
}

func cloneMap(m map[string]Values) map[string]Values {
	if m == nil {
		return nil
	}
	out := make(map[string]Values, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}
