package models

import "strings"

// fillPatterns lists pattern fill names by their excelize index.
var fillPatterns = []string{
	"none", "solid", "mediumGray", "darkGray", "lightGray", "darkHorizontal", "darkVertical",
	"darkDown", "darkUp", "darkGrid", "darkTrellis", "lightHorizontal", "lightVertical",
	"lightDown", "lightUp", "lightGrid", "lightTrellis", "gray125", "gray0625",
}

// borderStyles lists border line styles by their excelize index.
var borderStyles = []string{
	"none", "thin", "medium", "dashed", "dotted", "thick", "double", "hair", "mediumDashed",
	"dashDot", "mediumDashDot", "dashDotDot", "mediumDashDotDot", "slantDashDot",
}

// FillPatternName returns the name of a pattern index, "" when out of range.
func FillPatternName(idx int) string {
	if idx < 0 || idx >= len(fillPatterns) {
		return ""
	}
	return fillPatterns[idx]
}

// FillPatternIndex returns the index of a pattern name.
func FillPatternIndex(name string) (int, bool) {
	for i, p := range fillPatterns {
		if p == name {
			return i, true
		}
	}
	return 0, false
}

// BorderStyleName returns the name of a border style index, "" when out of range.
func BorderStyleName(idx int) string {
	if idx < 0 || idx >= len(borderStyles) {
		return ""
	}
	return borderStyles[idx]
}

// BorderStyleIndex returns the index of a border style name.
func BorderStyleIndex(name string) (int, bool) {
	for i, s := range borderStyles {
		if s == name {
			return i, true
		}
	}
	return 0, false
}

// NormalizeARGB turns a 6- or 8-digit hex color (optionally "#"-prefixed) into upper-case
// 8-digit ARGB. Anything else yields nil.
func NormalizeARGB(color string) *string {
	c := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if !isHex(c) {
		return nil
	}
	switch len(c) {
	case 6:
		c = "FF" + c
	case 8:
	default:
		return nil
	}
	return &c
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789ABCDEFabcdef", r) {
			return false
		}
	}
	return true
}
