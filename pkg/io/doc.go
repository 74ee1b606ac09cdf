// Package io imports and exports chart datasets.
//
// # Overview
//
// Layers draw a [layer.Dataset]: an ordered list of bins, each with a
// primary key, one value per series and an optional category label. This
// package reads datasets from the tabular files dashboards point at and
// writes them back as JSON:
//
//   - CSV: a header row followed by one row per bin
//   - XLSX: the same layout on a worksheet, read with excelize
//   - JSON: a [Table] object or a bare array of bins
//
// # Tabular Layout
//
// CSV and XLSX share a layout. The first column is the primary key; an
// optional column named "label" holds category labels; every other column
// is a series, named by its header:
//
//	key,label,plan,fact
//	1,north,10,12
//	2,south,20,
//
// Keys are numbers, RFC 3339 timestamps or dates (2006-01-02). Timestamps
// become Unix milliseconds so temporal axes can map them. An empty value
// cell becomes NaN, which lines and areas draw as a gap.
//
// # JSON Format
//
//	{
//	  "names": ["plan", "fact"],
//	  "data": [
//	    {"key": 1, "values": [10, 12], "label": "north"},
//	    {"key": 2, "values": [20, null]}
//	  ]
//	}
//
// A bare array of bins is accepted as well. JSON null values become NaN.
//
// # Usage
//
//	t, err := io.Import("sales.xlsx", io.WithSheet("2024"))
//	bars := layer.NewBars("y", t.Data, layer.WithNames(t.Names...))
//
// [layer.Dataset]: github.com/matzehuels/chartkit/pkg/chart/layer.Dataset
package io
