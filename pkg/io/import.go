package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartkit/pkg/chart/layer"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// ImportOption configures [Import].
type ImportOption func(*importer)

type importer struct {
	sheet string
}

// WithSheet selects the XLSX worksheet. The default is the first sheet.
func WithSheet(name string) ImportOption { return func(i *importer) { i.sheet = name } }

// Import reads a dataset file, choosing the format by extension: .csv,
// .json or .xlsx.
func Import(path string, opts ...ImportOption) (Table, error) {
	var im importer
	for _, opt := range opts {
		opt(&im)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return importFile(path, ReadCSV)
	case ".json":
		return importFile(path, ReadJSON)
	case ".xlsx", ".xlsm":
		return ImportXLSX(path, im.sheet)
	default:
		return Table{}, errors.New(errors.ErrCodeInvalidFormat, "%s: unsupported data format %q (want .csv, .json or .xlsx)", path, ext)
	}
}

func importFile(path string, read func(io.Reader) (Table, error)) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Table{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	t, err := read(f)
	if err != nil {
		return Table{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return t, nil
}

// ReadCSV decodes a CSV table from r. ReadCSV does not close r.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode csv")
	}
	return fromRows("csv", rows)
}

// ImportXLSX reads a worksheet of an XLSX workbook. An empty sheet name
// selects the first sheet.
func ImportXLSX(path, sheet string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open %s", path)
	}
	defer f.Close()
	return readWorkbook(f, path, sheet)
}

func readWorkbook(f *excelize.File, source, sheet string) (Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, errors.New(errors.ErrCodeInvalidData, "%s: workbook has no sheets", source)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeNotFound, err, "%s: sheet %q", source, sheet)
	}
	return fromRows(source+":"+sheet, rows)
}

// jsonDatum mirrors layer.Datum with nullable values.
type jsonDatum struct {
	Key    float64    `json:"key"`
	Values []*float64 `json:"values"`
	Label  string     `json:"label,omitempty"`
}

type jsonTable struct {
	Names []string    `json:"names"`
	Data  []jsonDatum `json:"data"`
}

// ReadJSON decodes a [Table] object or a bare array of bins from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidData, err, "read json")
	}
	var jt jsonTable
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &jt.Data)
	} else {
		err = json.Unmarshal(raw, &jt)
	}
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}

	t := Table{Names: jt.Names, Data: make(layer.Dataset, len(jt.Data))}
	for i, d := range jt.Data {
		values := make([]float64, len(d.Values))
		for j, v := range d.Values {
			values[j] = math.NaN()
			if v != nil {
				values[j] = *v
			}
		}
		t.Data[i] = layer.Datum{Key: d.Key, Values: values, Label: d.Label}
	}
	return t, nil
}
