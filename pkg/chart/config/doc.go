// Package config merges layered chart configuration trees.
//
// Chart libraries take one large options object. chartfit builds it from
// layers: a global style preset, a chart-type preset, the overrides derived
// from sizing, and finally whatever the caller supplies. Later layers win,
// but a layer that only touches grid.color must not wipe out grid.tickLength
// set by an earlier one.
//
// Instead of merging untyped maps recursively, the tree is tagged. A [Node]
// (one axis) holds the four mergeable subtrees as explicit fields (Grid,
// Border, Ticks and Title, whose Font and Padding merge too) plus an Extra
// map of atomic values that an override replaces wholesale. [Options] holds
// the per-axis nodes together with plugin and element settings.
//
//	base := config.Node{Grid: config.Values{"color": "a", "tickLength": 5}}
//	over := config.Node{Grid: config.Values{"color": "b"}}
//	config.Merge(base, over) // Grid: {"color": "b", "tickLength": 5}
//
// Merges never modify their inputs. [Normalize] runs once after the last
// merge and enforces the axis rules: tick lengths follow grid visibility and
// the category axis never shows grid lines.
package config
