package io

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// WriteJSON encodes t as JSON and writes it to w. NaN values are written
// as null, so the output can be re-imported with [ReadJSON].
func WriteJSON(t Table, w io.Writer) error {
	out := jsonTable{Names: t.Names, Data: make([]jsonDatum, len(t.Data))}
	for i, d := range t.Data {
		values := make([]*float64, len(d.Values))
		for j, v := range d.Values {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				values[j] = &d.Values[j]
			}
		}
		out.Data[i] = jsonDatum{Key: d.Key, Values: values, Label: d.Label}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(t, f)
}
