package sink

import (
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatJSON, FormatPDF, FormatPNG}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormats resolves a comma-separated format list. Duplicates are
// dropped; an empty list selects SVG.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		f := Format(name)
		switch f {
		case FormatSVG, FormatJSON, FormatPDF, FormatPNG:
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, json, pdf or png)", part)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []Format{FormatSVG}
	}
	return out, nil
}

// Render writes root in format f. JSON options apply only to JSON output.
func Render(f Format, root *scene.Node, jsonOpts ...JSONOption) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(root), nil
	case FormatJSON:
		return RenderJSON(root, jsonOpts...)
	case FormatPDF:
		return RenderPDF(root)
	case FormatPNG:
		return RenderPNG(root, 2)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}
