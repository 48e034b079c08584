package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"golang.org/x/net/html"
)

func rich(value any, format models.FormatInfo) *models.Rich {
	return &models.Rich{Value: value, Format: &format}
}

func withDisplay(c *models.Rich, dv string) *models.Rich {
	c.DisplayValue = &dv
	return c
}

func bold() models.FormatInfo {
	return models.FormatInfo{Font: models.Font{Bold: models.Ptr(true)}, NumberFormat: "General"}
}

func general() models.FormatInfo {
	return models.FormatInfo{NumberFormat: "General"}
}

func sampleWorkbook() *models.Workbook {
	merged := models.FormatInfo{
		IsMerged:     true,
		NumberFormat: "General",
		MergeRange:   &models.MergeRange{MinRow: 3, MinCol: 2, MaxRow: 3, MaxCol: 3},
	}
	covered := models.FormatInfo{IsMerged: true, NumberFormat: "General"}

	budget := &models.Sheet{Name: "Budget", Rows: [][]models.Cell{
		{rich("Item", general()), rich("Share", general()), rich("Cost", general())},
		{rich("Rent", general()), withDisplay(rich(0.25, models.FormatInfo{NumberFormat: "0%"}), "25.0%"), withDisplay(rich(1234.5, models.FormatInfo{NumberFormat: `"$"#,##0.00`}), "$1,234.50")},
		{rich("Note", general()), rich("spans", merged), rich(nil, covered)},
		{rich("Due", general()), rich(45292.0, models.FormatInfo{NumberFormat: "yyyy-mm-dd"}), rich("Total", bold())},
	}}
	notes := &models.Sheet{Name: "Notes <x>", Rows: [][]models.Cell{
		{rich("Title", general())},
	}}
	return &models.Workbook{Sheets: []*models.Sheet{budget, notes}}
}

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func inputsByID(doc *html.Node) map[string]*html.Node {
	inputs := map[string]*html.Node{}
	for _, in := range findAll(doc, "input") {
		id, _ := attr(in, "id")
		inputs[id] = in
	}
	return inputs
}

func TestFormHeadersAndInputs(t *testing.T) {
	page, err := Form(sampleWorkbook(), "")
	require.NoError(t, err)
	doc := parse(t, page)

	inputs := inputsByID(doc)
	assert.Len(t, inputs, 4)
	for _, id := range []string{"field-Budget-2-2", "field-Budget-2-3", "field-Budget-3-2", "field-Budget-4-2"} {
		assert.Contains(t, inputs, id)
	}
	// row 1, column 1 and the bold cell stay text
	assert.NotContains(t, inputs, "field-Budget-1-2")
	assert.NotContains(t, inputs, "field-Budget-2-1")
	assert.NotContains(t, inputs, "field-Budget-4-3")
	assert.NotContains(t, inputs, "field-Notes <x>-1-1")

	for id, in := range inputs {
		name, _ := attr(in, "name")
		assert.Equal(t, id, name)
	}
}

func TestFormInputTyping(t *testing.T) {
	page, err := Form(sampleWorkbook(), "")
	require.NoError(t, err)
	inputs := inputsByID(parse(t, page))

	tests := []struct {
		id    string
		typ   string
		value string
	}{
		{"field-Budget-2-2", InputNumber, "25.0"},
		{"field-Budget-2-3", InputNumber, "1234.50"},
		{"field-Budget-3-2", InputText, "spans"},
		{"field-Budget-4-2", InputDate, "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			in, ok := inputs[tt.id]
			require.True(t, ok)
			typ, _ := attr(in, "type")
			value, _ := attr(in, "value")
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestFormMergesAndTabs(t *testing.T) {
	page, err := Form(sampleWorkbook(), "Budget form")
	require.NoError(t, err)
	doc := parse(t, page)

	rows := findAll(doc, "tr")
	require.Len(t, rows, 5)
	mergedRow := findAll(rows[2], "td")
	require.Len(t, mergedRow, 2)
	colspan, _ := attr(mergedRow[1], "colspan")
	rowspan, _ := attr(mergedRow[1], "rowspan")
	assert.Equal(t, "2", colspan)
	assert.Equal(t, "1", rowspan)

	var tabs []*html.Node
	for _, b := range findAll(doc, "button") {
		if _, ok := attr(b, "data-sheet"); ok {
			tabs = append(tabs, b)
		}
	}
	require.Len(t, tabs, 2)
	class, _ := attr(tabs[0], "class")
	assert.Equal(t, "active", class)
	_, hasClass := attr(tabs[1], "class")
	assert.False(t, hasClass)
	assert.Equal(t, "Notes <x>", tabs[1].FirstChild.Data)

	assert.Contains(t, page, "<title>Budget form</title>")
	assert.NotContains(t, page, "Notes <x></button>")
	assert.Len(t, findAll(doc, "form"), 2)
}

func TestCellStyle(t *testing.T) {
	format := &models.FormatInfo{
		Font: models.Font{
			Name:   models.Ptr("Arial\"; background: url(x)"),
			Size:   models.Ptr(12.5),
			Bold:   models.Ptr(true),
			Italic: models.Ptr(true),
			Color:  models.Ptr("FFFF0000"),
		},
		Alignment: models.Alignment{Horizontal: models.Ptr("center")},
		Fill:      models.Fill{Color: models.Ptr("FF00FF00"), Pattern: models.Ptr("solid")},
	}
	classes, style := cellStyle(format)
	assert.Equal(t, "bold-text italic-text centered", classes)
	assert.Equal(t, "font-family: Arial background urlx; font-size: 12.5pt; color: #FF0000; background-color: #00FF00", string(style))

	noFill := &models.FormatInfo{
		Alignment: models.Alignment{Horizontal: models.Ptr("right")},
		Fill:      models.Fill{Color: models.Ptr(models.NoFillColor)},
	}
	classes, style = cellStyle(noFill)
	assert.Equal(t, "right-aligned", classes)
	assert.Empty(t, string(style))
}

func TestInputFor(t *testing.T) {
	tests := []struct {
		name  string
		cell  *models.Rich
		typ   string
		value string
	}{
		{"percent", withDisplay(rich(0.5, general()), "50.0%"), InputNumber, "50.0"},
		{"euro", withDisplay(rich(2000.0, general()), "€2,000.00"), InputNumber, "2000.00"},
		{"date word", rich("2024-03-05T00:00:00", models.FormatInfo{NumberFormat: "Short Date"}), InputDate, "2024-03-05"},
		{"date mask", rich(int64(45292), models.FormatInfo{NumberFormat: "m/d/yy"}), InputDate, "2024-01-01"},
		{"text", rich(42.0, general()), InputText, "42.0"},
		{"empty", rich(nil, general()), InputText, ""},
		{"boolean", rich(true, general()), InputText, "True"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := inputFor(tt.cell)
			assert.Equal(t, tt.typ, in.Type)
			assert.Equal(t, tt.value, in.Value)
		})
	}
}

func TestScalarCellsRenderAsText(t *testing.T) {
	wb := &models.Workbook{Sheets: []*models.Sheet{{Name: "S", Rows: [][]models.Cell{
		{models.Scalar{Value: "a"}, models.Scalar{Value: int64(2)}},
		{models.Scalar{Value: nil}, models.Scalar{Value: 2.5}},
	}}}}
	page, err := Form(wb, "")
	require.NoError(t, err)
	doc := parse(t, page)
	assert.Empty(t, findAll(doc, "input"))
	assert.Len(t, findAll(doc, "td"), 4)
	assert.Contains(t, page, "<td>2.5</td>")
}
