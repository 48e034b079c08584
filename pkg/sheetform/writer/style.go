package writer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/numfmt"
	"github.com/xuri/excelize/v2"
)

const (
	maxFontSize   = 409
	maxFontFamily = 31
)

var (
	horizontalAlignments = []string{"general", "left", "center", "right", "fill", "justify", "centerContinuous", "distributed"}
	verticalAlignments   = []string{"top", "center", "bottom", "justify", "distributed"}
)

// StyleWarning is a recoverable per-cell problem: the offending formula or style attribute
// was dropped and the conversion went on.
type StyleWarning struct {
	Sheet     string
	Cell      string
	Component string
	Err       error
}

func (w *StyleWarning) Error() string {
	return fmt.Sprintf("sheet %q cell %s: %s: %v", w.Sheet, w.Cell, w.Component, w.Err)
}

func (w *StyleWarning) Unwrap() error {
	return w.Err
}

// stylePart applies one sub-object of a format to an excelize style.
type stylePart struct {
	component string
	apply     func(*excelize.Style)
}

// styleSpec is the validated style of one cell.
type styleSpec struct {
	numFmt string
	parts  []stylePart
}

func (s styleSpec) empty() bool {
	return s.numFmt == "" && len(s.parts) == 0
}

func (s styleSpec) base() *excelize.Style {
	style := &excelize.Style{}
	if s.numFmt == "" {
		return style
	}
	if id, ok := numfmt.BuiltinID(s.numFmt); ok {
		style.NumFmt = id
	} else {
		code := s.numFmt
		style.CustomNumFmt = &code
	}
	return style
}

// issue is a dropped style attribute.
type issue struct {
	component string
	err       error
}

// buildStyleSpec converts the format sub-objects into style parts. Nil fields are skipped and
// invalid ones are dropped with an issue.
func buildStyleSpec(numFmt string, format *models.FormatInfo) (styleSpec, []issue) {
	spec := styleSpec{numFmt: numFmt}
	var issues []issue
	if format == nil {
		return spec, nil
	}

	font, fontIssues := buildFont(format.Font)
	issues = append(issues, fontIssues...)
	if font != nil {
		spec.parts = append(spec.parts, stylePart{"font", func(s *excelize.Style) { s.Font = font }})
	}

	al, alIssues := buildAlignment(format.Alignment)
	issues = append(issues, alIssues...)
	if al != nil {
		spec.parts = append(spec.parts, stylePart{"alignment", func(s *excelize.Style) { s.Alignment = al }})
	}

	fill, fillIssues := buildFill(format.Fill)
	issues = append(issues, fillIssues...)
	if fill != nil {
		spec.parts = append(spec.parts, stylePart{"fill", func(s *excelize.Style) { s.Fill = *fill }})
	}

	borders, borderIssues := buildBorders(format.Border)
	issues = append(issues, borderIssues...)
	if len(borders) > 0 {
		spec.parts = append(spec.parts, stylePart{"border", func(s *excelize.Style) { s.Border = borders }})
	}

	return spec, issues
}

// rgb returns the trailing six hex digits of an ARGB or RGB color.
func rgb(color string) (string, error) {
	c := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(c) < 6 || models.NormalizeARGB(c[len(c)-6:]) == nil {
		return "", fmt.Errorf("invalid color %q", color)
	}
	return strings.ToUpper(c[len(c)-6:]), nil
}

func buildFont(f models.Font) (*excelize.Font, []issue) {
	if f.Name == nil && f.Size == nil && f.Bold == nil && f.Italic == nil && f.Color == nil {
		return nil, nil
	}

	var issues []issue
	font := &excelize.Font{}
	set := false
	if f.Name != nil {
		if n := utf8.RuneCountInString(*f.Name); n == 0 || n > maxFontFamily {
			issues = append(issues, issue{"font.name", fmt.Errorf("font name %q must be 1-%d characters", *f.Name, maxFontFamily)})
		} else {
			font.Family = *f.Name
			set = true
		}
	}
	if f.Size != nil {
		if *f.Size < 1 || *f.Size > maxFontSize {
			issues = append(issues, issue{"font.size", fmt.Errorf("font size %v out of range 1-%d", *f.Size, maxFontSize)})
		} else {
			font.Size = *f.Size
			set = true
		}
	}
	if f.Bold != nil {
		font.Bold = *f.Bold
		set = true
	}
	if f.Italic != nil {
		font.Italic = *f.Italic
		set = true
	}
	if f.Color != nil {
		if c, err := rgb(*f.Color); err != nil {
			issues = append(issues, issue{"font.color", err})
		} else {
			font.Color = c
			set = true
		}
	}
	if !set {
		return nil, issues
	}
	return font, issues
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

func buildAlignment(a models.Alignment) (*excelize.Alignment, []issue) {
	var issues []issue
	al := &excelize.Alignment{}
	set := false
	if a.Horizontal != nil {
		if oneOf(*a.Horizontal, horizontalAlignments) {
			al.Horizontal = *a.Horizontal
			set = true
		} else {
			issues = append(issues, issue{"alignment.horizontal", fmt.Errorf("unknown horizontal alignment %q", *a.Horizontal)})
		}
	}
	if a.Vertical != nil {
		if oneOf(*a.Vertical, verticalAlignments) {
			al.Vertical = *a.Vertical
			set = true
		} else {
			issues = append(issues, issue{"alignment.vertical", fmt.Errorf("unknown vertical alignment %q", *a.Vertical)})
		}
	}
	if a.WrapText != nil {
		al.WrapText = *a.WrapText
		set = true
	}
	if !set {
		return nil, issues
	}
	return al, issues
}

func buildFill(f models.Fill) (*excelize.Fill, []issue) {
	if !f.HasColor() {
		return nil, nil
	}
	c, err := rgb(*f.Color)
	if err != nil {
		return nil, []issue{{"fill.color", err}}
	}

	var issues []issue
	pattern := 1 // solid
	if f.Pattern != nil && *f.Pattern != "" && *f.Pattern != "none" {
		if idx, ok := models.FillPatternIndex(*f.Pattern); ok {
			pattern = idx
		} else {
			issues = append(issues, issue{"fill.pattern", fmt.Errorf("unknown fill pattern %q", *f.Pattern)})
		}
	}
	return &excelize.Fill{Type: "pattern", Pattern: pattern, Color: []string{c}}, issues
}

func buildBorders(b models.Border) ([]excelize.Border, []issue) {
	var borders []excelize.Border
	var issues []issue
	for _, side := range b.Sides() {
		if side.Side.Style == nil || *side.Side.Style == "" || *side.Side.Style == "none" {
			continue
		}
		idx, ok := models.BorderStyleIndex(*side.Side.Style)
		if !ok {
			issues = append(issues, issue{"border." + side.Name, fmt.Errorf("unknown border style %q", *side.Side.Style)})
			continue
		}
		borders = append(borders, excelize.Border{Type: side.Name, Style: idx, Color: "000000"})
	}
	return borders, issues
}

// newStyle registers the style of a cell. When the combined style is rejected, parts are
// added back one at a time and the ones that fail are dropped with an issue.
func newStyle(f *excelize.File, spec styleSpec) (int, []issue) {
	style := spec.base()
	for _, p := range spec.parts {
		p.apply(style)
	}
	id, err := f.NewStyle(style)
	if err == nil {
		return id, nil
	}

	var issues []issue
	style = spec.base()
	if _, err := f.NewStyle(style); err != nil {
		issues = append(issues, issue{"number_format", err})
		style = &excelize.Style{}
	}
	for _, p := range spec.parts {
		candidate := *style
		p.apply(&candidate)
		if _, err := f.NewStyle(&candidate); err != nil {
			issues = append(issues, issue{p.component, err})
			continue
		}
		style = &candidate
	}
	id, err = f.NewStyle(style)
	if err != nil {
		return 0, append(issues, issue{"style", err})
	}
	return id, issues
}
