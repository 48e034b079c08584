package parser

import (
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/numfmt"
	"github.com/xuri/excelize/v2"
)

// FormatExtractor reads cell styles into FormatInfo. It caches by style id and lives for one
// decode call only.
type FormatExtractor struct {
	f     *excelize.File
	cache map[int]models.FormatInfo
}

// NewFormatExtractor creates an extractor over one parsed workbook.
func NewFormatExtractor(f *excelize.File) *FormatExtractor {
	return &FormatExtractor{f: f, cache: make(map[int]models.FormatInfo)}
}

// Extract returns the format of one cell. It never fails: unreadable styles give a format
// whose attributes are all nil and whose number format is General.
func (e *FormatExtractor) Extract(sheetName, cell string) models.FormatInfo {
	styleID, err := e.f.GetCellStyle(sheetName, cell)
	if err != nil {
		return models.FormatInfo{NumberFormat: numfmt.General}
	}
	if fi, ok := e.cache[styleID]; ok {
		return fi
	}

	style, err := e.f.GetStyle(styleID)
	if err != nil || style == nil {
		fi := models.FormatInfo{NumberFormat: numfmt.General}
		e.cache[styleID] = fi
		return fi
	}

	fi := FormatFromStyle(style)
	e.cache[styleID] = fi
	return fi
}

// FormatFromStyle converts an excelize style definition into FormatInfo.
func FormatFromStyle(style *excelize.Style) models.FormatInfo {
	fi := models.FormatInfo{
		NumberFormat: numfmt.Code(style.NumFmt, style.CustomNumFmt),
	}

	if font := style.Font; font != nil {
		if font.Family != "" {
			fi.Font.Name = models.Ptr(font.Family)
		}
		if font.Size > 0 {
			fi.Font.Size = models.Ptr(font.Size)
		}
		fi.Font.Bold = models.Ptr(font.Bold)
		fi.Font.Italic = models.Ptr(font.Italic)
		if font.Color != "" {
			fi.Font.Color = models.NormalizeARGB(font.Color)
		}
	}

	if al := style.Alignment; al != nil {
		if al.Horizontal != "" {
			fi.Alignment.Horizontal = models.Ptr(al.Horizontal)
		}
		if al.Vertical != "" {
			fi.Alignment.Vertical = models.Ptr(al.Vertical)
		}
		fi.Alignment.WrapText = models.Ptr(al.WrapText)
	}

	if style.Fill.Type == "pattern" {
		if name := models.FillPatternName(style.Fill.Pattern); name != "" && name != "none" {
			fi.Fill.Pattern = models.Ptr(name)
		}
		if len(style.Fill.Color) > 0 && style.Fill.Color[0] != "" {
			fi.Fill.Color = models.NormalizeARGB(style.Fill.Color[0])
		}
	}

	for _, b := range style.Border {
		name := models.BorderStyleName(b.Style)
		if name == "" || name == "none" {
			continue
		}
		side := models.BorderSide{Style: models.Ptr(name)}
		switch b.Type {
		case "left":
			fi.Border.Left = side
		case "right":
			fi.Border.Right = side
		case "top":
			fi.Border.Top = side
		case "bottom":
			fi.Border.Bottom = side
		}
	}

	return fi
}
