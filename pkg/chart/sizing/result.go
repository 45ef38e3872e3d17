package sizing

// Result is the output of the extent estimators.
type Result struct {
	// Extent is the content size along the axis being solved for.
	Extent float64 `json:"extent"`
	Proportions
	// MaxBarThickness caps the rendered bar thickness. Zero means no cap.
	MaxBarThickness float64 `json:"max_bar_thickness,omitempty"`
	// MinExtent and MaxExtent are the bounds Extent was clamped into.
	MinExtent float64 `json:"min_extent"`
	MaxExtent float64 `json:"max_extent"`
}
