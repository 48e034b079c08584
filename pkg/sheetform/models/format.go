package models

// FormatInfo is the canonical per-cell visual format.
type FormatInfo struct {
	// IsMerged is true for every cell covered by a merge region, anchor included.
	IsMerged bool `json:"is_merged"`
	// Font holds the font attributes.
	Font Font `json:"font"`
	// Alignment holds the text alignment attributes.
	Alignment Alignment `json:"alignment"`
	// Fill holds the background fill attributes.
	Fill Fill `json:"fill"`
	// Border holds the line style of each side.
	Border Border `json:"border"`
	// NumberFormat is the raw format code, e.g. "0%" or "\"$\"#,##0.00".
	NumberFormat string `json:"number_format"`
	// MergeRange is set on the anchor cell of a merge region only.
	MergeRange *MergeRange `json:"merge_range,omitempty"`
}

// Font describes a cell font. Nil fields are unknown.
type Font struct {
	Name   *string  `json:"name"`
	Size   *float64 `json:"size"`
	Bold   *bool    `json:"bold"`
	Italic *bool    `json:"italic"`
	// Color is an 8-digit ARGB hex string.
	Color *string `json:"color"`
}

// IsBold reports whether the font is explicitly bold.
func (f Font) IsBold() bool {
	return f.Bold != nil && *f.Bold
}

// IsItalic reports whether the font is explicitly italic.
func (f Font) IsItalic() bool {
	return f.Italic != nil && *f.Italic
}

// Alignment describes horizontal/vertical placement and wrapping.
type Alignment struct {
	Horizontal *string `json:"horizontal"`
	Vertical   *string `json:"vertical"`
	WrapText   *bool   `json:"wrap_text"`
}

// Fill describes a pattern fill.
type Fill struct {
	// Color is an 8-digit ARGB hex string; "00000000" means no fill.
	Color   *string `json:"color"`
	Pattern *string `json:"pattern"`
}

// NoFillColor is the ARGB sentinel used for cells without a background.
const NoFillColor = "00000000"

// HasColor reports whether the fill carries a real background color.
func (f Fill) HasColor() bool {
	return f.Color != nil && *f.Color != "" && *f.Color != NoFillColor
}

// Border holds the four cell sides.
type Border struct {
	Left   BorderSide `json:"left"`
	Right  BorderSide `json:"right"`
	Top    BorderSide `json:"top"`
	Bottom BorderSide `json:"bottom"`
}

// BorderSide is a single border line.
type BorderSide struct {
	// Style is the line style name (thin, medium, dashed, ...), nil when absent.
	Style *string `json:"style"`
}

// Sides returns the sides keyed by their spreadsheet names in a fixed order.
func (b Border) Sides() []NamedSide {
	return []NamedSide{
		{Name: "left", Side: b.Left},
		{Name: "right", Side: b.Right},
		{Name: "top", Side: b.Top},
		{Name: "bottom", Side: b.Bottom},
	}
}

// NamedSide pairs a border side with its name.
type NamedSide struct {
	Name string
	Side BorderSide
}

// MergeRange is a merge rectangle, 1-based and inclusive.
type MergeRange struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`
}

// Rows returns the number of rows spanned.
func (m MergeRange) Rows() int { return m.MaxRow - m.MinRow + 1 }

// Cols returns the number of columns spanned.
func (m MergeRange) Cols() int { return m.MaxCol - m.MinCol + 1 }

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
