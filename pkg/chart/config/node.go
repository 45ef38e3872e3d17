package config

// Mergeable subtree keys of an axis node.
const (
	KeyGrid   = "grid"
	KeyBorder = "border"
	KeyTicks  = "ticks"
	KeyTitle  = "title"
)

// Mergeable subtree keys of a title.
const (
	KeyFont    = "font"
	KeyPadding = "padding"
)

// Title is the axis-title subtree. Font and Padding merge field by field;
// everything else lives in Fields and is replaced wholesale.
type Title struct {
	Fields  Values
	Font    Values
	Padding Values
}

// Clone returns a deep copy of t.
func (t *Title) Clone() *Title {
	if t == nil {
		return nil
	}
	return &Title{Fields: t.Fields.Clone(), Font: t.Font.Clone(), Padding: t.Padding.Clone()}
}

// Node is one axis (scale) configuration. Grid, Border, Ticks and Title are
// mergeable subtrees; a nil subtree is absent. Extra holds every other key as
// an atomic value.
type Node struct {
	Grid   Values
	Border Values
	Ticks  Values
	Title  *Title
	Extra  Values
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	return Node{
		Grid:   n.Grid.Clone(),
		Border: n.Border.Clone(),
		Ticks:  n.Ticks.Clone(),
		Title:  n.Title.Clone(),
		Extra:  n.Extra.Clone(),
	}
}

// IsZero reports whether n holds no keys at all.
func (n Node) IsZero() bool {
	return len(n.Grid) == 0 && len(n.Border) == 0 && len(n.Ticks) == 0 &&
		n.Title == nil && len(n.Extra) == 0
}

// Merge returns base with override layered on top.
//
// Keys of override.Extra replace those of base. Grid, Border and Ticks merge
// field by field when both sides hold them, and are copied from whichever side
// does otherwise. Title merges the same way, recursing into Font and Padding.
// An atomic value under a subtree key (for instance "grid": false) replaces
// the subtree. Neither input is modified.
func Merge(base, override Node) Node {
	out := Node{
		Grid:   mergeValues(base.Grid, override.Grid),
		Border: mergeValues(base.Border, override.Border),
		Ticks:  mergeValues(base.Ticks, override.Ticks),
		Title:  mergeTitle(base.Title, override.Title),
		Extra:  mergeValues(base.Extra, override.Extra),
	}

	// A subtree on one side and an atomic value under the same key on the
	// other: the override wins.
	for key, subtree := range map[string]bool{
		KeyGrid:   override.Grid != nil,
		KeyBorder: override.Border != nil,
		KeyTicks:  override.Ticks != nil,
		KeyTitle:  override.Title != nil,
	} {
		if subtree {
			out.Extra = without(out.Extra, key)
		}
	}
	if override.Extra.Has(KeyGrid) {
		out.Grid = nil
	}
	if override.Extra.Has(KeyBorder) {
		out.Border = nil
	}
	if override.Extra.Has(KeyTicks) {
		out.Ticks = nil
	}
	if override.Extra.Has(KeyTitle) {
		out.Title = nil
	}
	return out
}

// MergeAll folds nodes left to right with [Merge].
func MergeAll(nodes ...Node) Node {
	var out Node
	for _, n := range nodes {
		out = Merge(out, n)
	}
	return out
}

func mergeTitle(base, override *Title) *Title {
	switch {
	case override == nil:
		return base.Clone()
	case base == nil:
		return override.Clone()
	}
	out := &Title{
		Fields:  mergeValues(base.Fields, override.Fields),
		Font:    mergeValues(base.Font, override.Font),
		Padding: mergeValues(base.Padding, override.Padding),
	}
	if override.Font != nil {
		out.Fields = without(out.Fields, KeyFont)
	}
	if override.Padding != nil {
		out.Fields = without(out.Fields, KeyPadding)
	}
	if override.Fields.Has(KeyFont) {
		out.Font = nil
	}
	if override.Fields.Has(KeyPadding) {
		out.Padding = nil
	}
	return out
}
