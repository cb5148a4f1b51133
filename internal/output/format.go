// Package output renders emission and structure results as text, JSON, or
// XML.
package output

import (
	"fmt"
	"strings"
)

// Format selects an output rendering.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatXML
)

// ParseFormat parses a format name; the empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatText, fmt.Errorf("invalid format %q: use text, json, or xml", s)
	}
}
