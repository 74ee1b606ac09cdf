package chart_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/chart/layer"
)

func ExampleComposer_Draw() {
	reg := chart.NewRegistry("example")
	reg.Register(layer.NewBars("y", layer.Dataset{
		{Key: 0, Values: []float64{10, 20}},
		{Key: 1, Values: []float64{5, 25}},
	}, layer.WithNames("plan", "fact")))

	in := chart.DefaultInput()
	in.Axes = []axis.Declaration{
		{Name: "x", Position: axis.Bottom, Primary: true},
		{Name: "y", Position: axis.Left},
	}
	c := chart.New(in, reg, nil)
	root := c.Draw(context.Background())

	fmt.Println(len(root.Find("bar")), "bars in", len(c.Columns()), "columns")

	tip, _ := c.Interactions().Hover(chart.DefaultMargin+1, 100)
	for _, row := range tip.Rows[0] {
		fmt.Println(row.Title, row.Value)
	}
	// Output:
	// 4 bars in 2 columns
	// plan 10
	// fact 20
}
