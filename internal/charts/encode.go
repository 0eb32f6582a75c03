// internal/charts/encode.go
package charts

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Format names an output encoding for chart specs.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPNG  Format = "png"
)

// ParseFormat normalizes a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json, yaml or png)", name)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string { return string(f) }

// Encode writes spec to w in the given format.
func Encode(w io.Writer, spec ChartSpec, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(spec)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(spec); err != nil {
			return err
		}
		return enc.Close()
	case FormatPNG:
		return RenderPNG(w, spec, DefaultWidth, DefaultHeight)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
