package io

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/chartkit/pkg/errors"
)

func TestReadCSV(t *testing.T) {
	in := "key,label,plan,fact\n1,north,10,12\n2,south,20,\n\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if !slices.Equal(tbl.Names, []string{"plan", "fact"}) {
		t.Errorf("Names = %v", tbl.Names)
	}
	if len(tbl.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2 (blank line skipped)", len(tbl.Data))
	}
	d := tbl.Data[1]
	if d.Key != 2 || d.Label != "south" || d.Values[0] != 20 || !math.IsNaN(d.Values[1]) {
		t.Errorf("row 2 = %+v", d)
	}
}

func TestReadCSVWithoutLabels(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("key,a\n2024-01-02,5\n2024-01-02T00:00:01Z,6\n"))
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	day := float64(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli())
	if tbl.Data[0].Key != day || tbl.Data[1].Key != day+1000 {
		t.Errorf("keys = %v, %v, want %v, %v", tbl.Data[0].Key, tbl.Data[1].Key, day, day+1000)
	}
	if tbl.Data[0].Label != "" {
		t.Errorf("label = %q, want empty", tbl.Data[0].Label)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidData},
		{"bad key", "key,a\nx,1\n", errors.ErrCodeInvalidData},
		{"bad value", "key,a\n1,one\n", errors.ErrCodeInvalidData},
		{"bad quoting", "key,a\n1,\"2\n", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadCSV() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		names []string
	}{
		{"object", `{"names":["a","b"],"data":[{"key":1,"values":[1,null],"label":"x"}]}`, []string{"a", "b"}},
		{"array", ` [{"key":1,"values":[1,null],"label":"x"}]`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ReadJSON(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("ReadJSON() error: %v", err)
			}
			if !slices.Equal(tbl.Names, tt.names) {
				t.Errorf("Names = %v, want %v", tbl.Names, tt.names)
			}
			d := tbl.Data[0]
			if d.Key != 1 || d.Label != "x" || d.Values[0] != 1 || !math.IsNaN(d.Values[1]) {
				t.Errorf("datum = %+v", d)
			}
		})
	}

	if _, err := ReadJSON(strings.NewReader("{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadJSON(malformed) error = %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in, err := ReadCSV(strings.NewReader("key,label,a,b\n1,x,1.5,\n2,y,,3\n"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(in, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	out, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if !slices.Equal(out.Names, in.Names) || len(out.Data) != len(in.Data) {
		t.Fatalf("round trip = %+v", out)
	}
	for i := range in.Data {
		a, b := in.Data[i], out.Data[i]
		if a.Key != b.Key || a.Label != b.Label || !sameValues(a.Values, b.Values) {
			t.Errorf("row %d = %+v, want %+v", i, b, a)
		}
	}
}

func sameValues(a, b []float64) bool {
	return slices.EqualFunc(a, b, func(x, y float64) bool {
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	})
}

func writeWorkbook(t *testing.T, sheet string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatal(err)
		}
	}
	cells := map[string]any{
		"A1": "key", "B1": "label", "C1": "volume",
		"A2": 1, "B2": "mon", "C2": 7.5,
		"A3": 2, "B3": "tue",
	}
	for cell, v := range cells {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error: %v", err)
	}
	return path
}

func TestImportXLSX(t *testing.T) {
	path := writeWorkbook(t, "Sheet1")
	tbl, err := Import(path)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if !slices.Equal(tbl.Names, []string{"volume"}) || len(tbl.Data) != 2 {
		t.Fatalf("table = %+v", tbl)
	}
	if tbl.Data[0].Values[0] != 7.5 || tbl.Data[1].Label != "tue" || !math.IsNaN(tbl.Data[1].Values[0]) {
		t.Errorf("data = %+v", tbl.Data)
	}

	if _, err := Import(path, WithSheet("missing")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Import(missing sheet) error = %v", err)
	}
}

func TestImportXLSXNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Q1")
	tbl, err := ImportXLSX(path, "Q1")
	if err != nil {
		t.Fatalf("ImportXLSX() error: %v", err)
	}
	if len(tbl.Data) != 2 {
		t.Errorf("len(Data) = %d, want 2", len(tbl.Data))
	}
}

func TestImportByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "d.csv")
	if err := os.WriteFile(csvPath, []byte("key,a\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if tbl, err := Import(csvPath); err != nil || len(tbl.Data) != 1 {
		t.Errorf("Import(csv) = %+v, %v", tbl, err)
	}

	jsonPath := filepath.Join(dir, "d.json")
	tbl, _ := ReadCSV(strings.NewReader("key,a\n1,2\n"))
	if err := ExportJSON(tbl, jsonPath); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	if got, err := Import(jsonPath); err != nil || got.Data[0].Values[0] != 2 {
		t.Errorf("Import(json) = %+v, %v", got, err)
	}

	tests := []struct {
		path string
		code errors.Code
	}{
		{filepath.Join(dir, "d.txt"), errors.ErrCodeInvalidFormat},
		{filepath.Join(dir, "missing.csv"), errors.ErrCodeFileNotFound},
		{filepath.Join(dir, "missing.xlsx"), errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		if _, err := Import(tt.path); !errors.Is(err, tt.code) {
			t.Errorf("Import(%s) error = %v, want %s", filepath.Base(tt.path), err, tt.code)
		}
	}
}
