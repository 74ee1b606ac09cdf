package chart

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/chartkit/pkg/chart/layer"
)

// Registry holds a chart's layers in registration order and assigns their
// ids. Ids are name-based UUIDs derived from the registry name, the layer
// registration index, kind and axis, so the same chart definition always yields the
// same ids.
type Registry struct {
	ns     uuid.UUID
	layers []layer.Layer
	next   int
	gen    int
}

// NewRegistry creates an empty registry for the chart called name.
func NewRegistry(name string) *Registry {
	return &Registry{ns: uuid.NewSHA1(uuid.NameSpaceOID, []byte("chartkit/"+name))}
}

// Namespace returns the UUID namespace of the registry.
func (r *Registry) Namespace() uuid.UUID { return r.ns }

// Register adds l, assigns its id and returns it.
func (r *Registry) Register(l layer.Layer) string {
	id := LayerID(r.ns, r.next, l)
	r.next++
	r.gen++
	l.SetID(id)
	r.layers = append(r.layers, l)
	return id
}

// LayerID derives the id of the index-th layer of a registry.
func LayerID(ns uuid.UUID, index int, l layer.Layer) string {
	name := fmt.Sprintf("%d/%s/%s", index, l.Kind(), l.SecondaryAxis())
	return "layer-" + uuid.NewSHA1(ns, []byte(name)).String()
}

// Layers returns the registered layers.
func (r *Registry) Layers() []layer.Layer { return slices.Clone(r.layers) }

// Len returns the number of registered layers.
func (r *Registry) Len() int { return len(r.layers) }

// Generation changes on every Register and Remove.
func (r *Registry) Generation() int { return r.gen }

// First returns the first registered layer.
func (r *Registry) First() (layer.Layer, bool) {
	if len(r.layers) == 0 {
		return nil, false
	}
	return r.layers[0], true
}

// Get returns the layer with the given id.
func (r *Registry) Get(id string) (layer.Layer, bool) {
	for _, l := range r.layers {
		if l.ID() == id {
			return l, true
		}
	}
	return nil, false
}

// Remove unregisters the layer with the given id. Other ids are kept.
func (r *Registry) Remove(id string) bool {
	i := slices.IndexFunc(r.layers, func(l layer.Layer) bool { return l.ID() == id })
	if i < 0 {
		return false
	}
	r.layers = slices.Delete(r.layers, i, i+1)
	r.gen++
	return true
}
