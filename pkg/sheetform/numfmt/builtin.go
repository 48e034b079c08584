// Package numfmt resolves number format codes and derives or inverts the percent and
// currency display overlays.
package numfmt

// General is the default format code.
const General = "General"

// builtin maps the built-in number format ids defined by ECMA-376 to their format codes.
var builtin = map[int]string{
	0:  General,
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `"$"#,##0_);("$"#,##0)`,
	6:  `"$"#,##0_);[Red]("$"#,##0)`,
	7:  `"$"#,##0.00_);("$"#,##0.00)`,
	8:  `"$"#,##0.00_);[Red]("$"#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	41: `_(* #,##0_);_(* \(#,##0\);_(* "-"_);_(@_)`,
	42: `_("$"* #,##0_);_("$"* \(#,##0\);_("$"* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* \(#,##0.00\);_(* "-"??_);_(@_)`,
	44: `_("$"* #,##0.00_);_("$"* \(#,##0.00\);_("$"* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// Code returns the format code for a style's number format id and optional custom code.
// A non-empty custom code wins; unknown ids fall back to General.
func Code(id int, custom *string) string {
	if custom != nil && *custom != "" {
		return *custom
	}
	if code, ok := builtin[id]; ok {
		return code
	}
	return General
}

// BuiltinID returns the built-in id for a format code, if there is one.
func BuiltinID(code string) (int, bool) {
	for id, c := range builtin {
		if c == code {
			return id, true
		}
	}
	return 0, false
}
