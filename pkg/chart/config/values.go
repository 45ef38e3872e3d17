package config

import "maps"

// Values is a set of atomic configuration fields. Nested maps and slices
// stored in Values are opaque: a merge replaces them wholesale.
type Values map[string]any

// Clone returns a deep copy of v. A nil Values clones to nil.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = cloneAny(val)
	}
	return out
}

// Merge returns a copy of v with every key of override replacing the
// corresponding key of v. Neither input is modified.
func (v Values) Merge(override Values) Values {
	out := v.Clone()
	if out == nil {
		out = make(Values, len(override))
	}
	for k, val := range override {
		out[k] = cloneAny(val)
	}
	return out
}

// Bool returns the boolean at key and whether it was a bool.
func (v Values) Bool(key string) (b, ok bool) {
	b, ok = v[key].(bool)
	return b, ok
}

// Has reports whether key is set.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// mergeValues merges override into base, treating nil as absent.
func mergeValues(base, override Values) Values {
	switch {
	case override == nil:
		return base.Clone()
	case base == nil:
		return override.Clone()
	default:
		return base.Merge(override)
	}
}

// mergeMaps merges two keyed collections of Values key by key.
func mergeMaps(base, override map[string]Values, merge func(key string, a, b Values) Values) map[string]Values {
	if base == nil && override == nil {
		return nil
	}
	out := make(map[string]Values, len(base)+len(override))
	for k, v := range base {
		out[k] = v.Clone()
	}
	for k, v := range override {
		if a, ok := base[k]; ok {
			out[k] = merge(k, a, v)
		} else {
			out[k] = v.Clone()
		}
	}
	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case Values:
		return t.Clone()
	case map[string]any:
		return map[string]any(Values(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneAny(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	case []float64:
		return append([]float64(nil), t...)
	default:
		return v
	}
}

// asValues returns v as Values when it is a string-keyed map.
func asValues(v any) (Values, bool) {
	switch t := v.(type) {
	case Values:
		return t, true
	case map[string]any:
		return Values(t), true
	case map[any]any:
		out := make(Values, len(t))
		for k, e := range t {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = e
		}
		return out, true
	}
	return nil, false
}

func without(v Values, keys ...string) Values {
	if v == nil {
		return nil
	}
	out := maps.Clone(v)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
