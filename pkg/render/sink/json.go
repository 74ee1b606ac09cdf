package sink

import (
	"encoding/json"

	"github.com/matzehuels/chartkit/pkg/chart/interact"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/gauge"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name   string
	legend []interact.LegendEntry
	gauge  *gauge.Geometry
}

// WithJSONName records the panel name.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONLegend includes the chart legend, as returned by
// [interact.Coordinator.Legend].
func WithJSONLegend(entries []interact.LegendEntry) JSONOption {
	return func(r *jsonRenderer) { r.legend = entries }
}

// WithJSONGauge includes computed dial geometry.
func WithJSONGauge(g gauge.Geometry) JSONOption {
	return func(r *jsonRenderer) { r.gauge = &g }
}

// Document is the JSON form of a rendered panel.
type Document struct {
	Name   string                 `json:"name,omitempty"`
	Width  float64                `json:"width"`
	Height float64                `json:"height"`
	Legend []interact.LegendEntry `json:"legend,omitempty"`
	Gauge  *gauge.Geometry        `json:"gauge,omitempty"`
	Scene  *scene.Node            `json:"scene"`
}

// RenderJSON exports the scene and the optional legend and gauge
// geometry as indented JSON.
func RenderJSON(root *scene.Node, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if root == nil {
		root = scene.NewRoot(0, 0)
	}
	doc := Document{
		Name:   r.name,
		Width:  root.W,
		Height: root.H,
		Legend: r.legend,
		Gauge:  r.gauge,
		Scene:  root,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode json")
	}
	return data, nil
}
