package io

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/chartkit/pkg/chart/layer"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// Table is a dataset with its series names.
type Table struct {
	Names []string      `json:"names,omitempty"`
	Data  layer.Dataset `json:"data"`
}

// labelColumn is the header of the optional category label column.
const labelColumn = "label"

// fromRows converts a header row and data rows into a table. source names
// the input in errors.
func fromRows(source string, rows [][]string) (Table, error) {
	if len(rows) == 0 {
		return Table{}, errors.New(errors.ErrCodeInvalidData, "%s: no header row", source)
	}
	header := rows[0]
	if len(header) == 0 {
		return Table{}, errors.New(errors.ErrCodeInvalidData, "%s: empty header row", source)
	}

	labelCol := -1
	var valueCols []int
	var t Table
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if strings.EqualFold(name, labelColumn) && labelCol < 0 {
			labelCol = i
			continue
		}
		valueCols = append(valueCols, i)
		t.Names = append(t.Names, name)
	}

	for r, row := range rows[1:] {
		line := r + 2
		if blank(row) {
			continue
		}
		key, err := parseKey(cell(row, 0))
		if err != nil {
			return Table{}, errors.Wrap(errors.ErrCodeInvalidData, err, "%s: row %d: key", source, line)
		}
		d := layer.Datum{Key: key, Values: make([]float64, len(valueCols))}
		if labelCol >= 0 {
			d.Label = strings.TrimSpace(cell(row, labelCol))
		}
		for j, c := range valueCols {
			v, err := parseValue(cell(row, c))
			if err != nil {
				return Table{}, errors.Wrap(errors.ErrCodeInvalidData, err, "%s: row %d: column %q", source, line, header[c])
			}
			d.Values[j] = v
		}
		t.Data = append(t.Data, d)
	}
	return t, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseKey reads a primary key: a number, an RFC 3339 timestamp or a date.
// Times are returned as Unix milliseconds.
func parseKey(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixMilli()), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidData, "%q is not a number or time", s)
}

// parseValue reads a series value. Empty cells are gaps.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidData, "%q is not a number", s)
	}
	return v, nil
}
