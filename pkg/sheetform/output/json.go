// Package output serializes workbook models to JSON.
package output

import (
	"bytes"
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// ToJSON serializes a workbook as {"<sheet>": [[cell, ...], ...], ...} in sheet order.
func ToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes one sheet as its array of rows.
func SheetToJSON(sheet *models.Sheet, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// marshal indents after encoding because the models write themselves through MarshalJSON,
// whose output json-iterator copies verbatim.
func marshal(v any, pretty bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || !pretty {
		return data, err
	}
	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SheetFileName derives a file name for a sheet's JSON document.
func SheetFileName(name string) string {
	safe := unsafeFileChars.ReplaceAllString(name, "_")
	if safe == "" || safe == "." || safe == ".." {
		safe = "sheet"
	}
	return safe + ".json"
}

// WriteSheets writes one JSON file per sheet into dir and returns the paths written.
func WriteSheets(wb *models.Workbook, dir string, pretty bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	seen := make(map[string]int)
	paths := make([]string, 0, len(wb.Sheets))
	for _, sheet := range wb.Sheets {
		data, err := SheetToJSON(sheet, pretty)
		if err != nil {
			return nil, err
		}
		name := SheetFileName(sheet.Name)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = name[:len(name)-len(".json")] + "_" + strconv.Itoa(n) + ".json"
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
