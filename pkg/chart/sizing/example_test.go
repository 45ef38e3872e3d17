package sizing_test

import (
	"fmt"

	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
)

func ExampleComputeProportions() {
	p := profile.Default()

	props, err := sizing.ComputeProportions(7, 2, p)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s group=%.3f spacing=%.0f\n", props.Regime, props.Group, props.Spacing)
	// Output: dense group=0.889 spacing=4
}

func ExampleEstimateExtent() {
	p := profile.Default()

	res, err := sizing.EstimateExtent(7, 2, p)
	if err != nil {
		panic(err)
	}
	fmt.Printf("height=%.0f range=[%.0f, %.0f]\n", res.Extent, res.MinExtent, res.MaxExtent)
	// Output: height=336 range=[276, 444]
}

func ExampleEstimateResponsive() {
	p := profile.Default()

	res, err := sizing.EstimateResponsive(sizing.Request{
		Categories:      2,
		Series:          1,
		ContainerExtent: 1000,
		Range:           &chart.Range{Min: 1245, Max: 1890},
		AllowWideBars:   true,
	}, p)
	if err != nil {
		panic(err)
	}
	fmt.Printf("extent=%.1f group=%.1f bar=%.1f thickness=%.0f\n",
		res.Extent, res.Group, res.Bar, res.MaxBarThickness)
	// Output: extent=345.4 group=0.5 bar=0.8 thickness=40
}
