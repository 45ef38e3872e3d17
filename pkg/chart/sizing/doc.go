// Package sizing computes bar proportions and axis extents for bar charts.
//
// Three estimators share one tuning [profile.Profile]:
//
//   - [ComputeProportions] classifies a chart as sparse or dense from its
//     total bar count and returns the group proportion, bar proportion and
//     inter-category spacing that keep each bar close to the ideal width.
//   - [EstimateExtent] grows the category axis (the height of a horizontal
//     bar chart) with the data so bars stay within their width bounds.
//   - [EstimateResponsive] sizes the axis perpendicular to a container whose
//     width the chart cannot control, adapting proportions and bar thickness
//     instead of bar width.
//
// All functions are pure: they never log, never block and never mutate the
// profile, so they are safe to call from any number of goroutines. Invalid
// requests fail with INVALID_INPUT, malformed bounds or profiles with
// INVALID_CONFIGURATION (see package errors).
//
// # Example
//
//	p := profile.Default()
//	res, err := sizing.EstimateExtent(7, 2, p)
//	if err != nil {
//	    return err
//	}
//	overrides := sizing.Apply(res)
package sizing
