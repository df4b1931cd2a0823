// Package output renders command results in text, JSON, or YAML. Text
// rendering leans on internal/ui for styling; structured formats
// reuse the snake_case wire tags on the result types.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json, or yaml)", s)
}

// Sanitize strips terminal control characters from user-controlled
// strings to prevent ANSI escape injection. Removes 0x00-0x1f (except
// tab) and 0x7f.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

// writeStructured dispatches to the non-text encoders.
func writeStructured(w io.Writer, format Format, v any) error {
	if format == FormatYAML {
		return writeYAML(w, v)
	}
	return writeJSON(w, v)
}
