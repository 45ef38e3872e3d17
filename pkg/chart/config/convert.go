package config

import (
	"encoding/json"

	"github.com/matzehuels/chartfit/pkg/errors"
)

// FromMap converts a decoded, untyped axis object into a [Node]. Object
// values under grid, border, ticks and title become subtrees; everything
// else (including non-object values under those keys) goes to Extra.
func FromMap(m map[string]any) Node {
	var n Node
	for k, v := range m {
		sub, isMap := asValues(v)
		switch {
		case isMap && k == KeyGrid:
			n.Grid = sub.Clone()
		case isMap && k == KeyBorder:
			n.Border = sub.Clone()
		case isMap && k == KeyTicks:
			n.Ticks = sub.Clone()
		case isMap && k == KeyTitle:
			n.Title = titleFromMap(sub)
		default:
			if n.Extra == nil {
				n.Extra = Values{}
			}
			n.Extra[k] = cloneAny(v)
		}
	}
	return n
}

func titleFromMap(m Values) *Title {
	t := &Title{}
	for k, v := range m {
		sub, isMap := asValues(v)
		switch {
		case isMap && k == KeyFont:
			t.Font = sub.Clone()
		case isMap && k == KeyPadding:
			t.Padding = sub.Clone()
		default:
			if t.Fields == nil {
				t.Fields = Values{}
			}
			t.Fields[k] = cloneAny(v)
		}
	}
	return t
}

// OptionsFromMap converts a decoded, untyped chart options object into
// [Options]. Every entry under scales, plugins and elements must itself be
// an object; anything else is INVALID_INPUT.
func OptionsFromMap(m map[string]any) (Options, error) {
	var o Options
	for k, v := range m {
		switch k {
		case KeyScales:
			entries, err := objectEntries(k, v)
			if err != nil {
				return Options{}, err
			}
			o.Scales = make(map[string]Node, len(entries))
			for axis, e := range entries {
				o.Scales[axis] = FromMap(e)
			}
		case KeyPlugins, KeyElements:
			entries, err := objectEntries(k, v)
			if err != nil {
				return Options{}, err
			}
			vals := make(map[string]Values, len(entries))
			for name, e := range entries {
				vals[name] = e.Clone()
			}
			if k == KeyPlugins {
				o.Plugins = vals
			} else {
				o.Elements = vals
			}
		default:
			if o.Extra == nil {
				o.Extra = Values{}
			}
			o.Extra[k] = cloneAny(v)
		}
	}
	return o, nil
}

func objectEntries(key string, v any) (map[string]Values, error) {
	m, ok := asValues(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be an object, got %T", key, v)
	}
	out := make(map[string]Values, len(m))
	for name, e := range m {
		sub, ok := asValues(e)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s.%s must be an object, got %T", key, name, e)
		}
		out[name] = sub
	}
	return out, nil
}

// ToMap flattens n back into an untyped object.
func (n Node) ToMap() map[string]any {
	out := map[string]any(n.Extra.Clone())
	if out == nil {
		out = map[string]any{}
	}
	put := func(key string, v Values) {
		if v != nil {
			out[key] = map[string]any(v.Clone())
		}
	}
	put(KeyGrid, n.Grid)
	put(KeyBorder, n.Border)
	put(KeyTicks, n.Ticks)
	if n.Title != nil {
		t := map[string]any(n.Title.Fields.Clone())
		if t == nil {
			t = map[string]any{}
		}
		if n.Title.Font != nil {
			t[KeyFont] = map[string]any(n.Title.Font.Clone())
		}
		if n.Title.Padding != nil {
			t[KeyPadding] = map[string]any(n.Title.Padding.Clone())
		}
		out[KeyTitle] = t
	}
	return out
}

// ToMap flattens o back into an untyped, chart-library shaped object.
func (o Options) ToMap() map[string]any {
	out := map[string]any(o.Extra.Clone())
	if out == nil {
		out = map[string]any{}
	}
	if len(o.Scales) > 0 {
		scales := make(map[string]any, len(o.Scales))
		for axis, n := range o.Scales {
			scales[axis] = n.ToMap()
		}
		out[KeyScales] = scales
	}
	if len(o.Plugins) > 0 {
		out[KeyPlugins] = valuesMap(o.Plugins)
	}
	if len(o.Elements) > 0 {
		out[KeyElements] = valuesMap(o.Elements)
	}
	return out
}

func valuesMap(m map[string]Values) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		vals := map[string]any(v.Clone())
		if vals == nil {
			vals = map[string]any{}
		}
		out[k] = vals
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToMap())
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*n = FromMap(m)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ToMap())
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Options) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := OptionsFromMap(m)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
