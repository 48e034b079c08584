package numfmt

import (
	"strings"

	"github.com/xuri/nfp"
)

// IsDate reports whether a format code renders dates: either its name says so, or one of its
// sections contains date/time tokens.
func IsDate(code string) bool {
	if strings.Contains(strings.ToLower(code), "date") {
		return true
	}
	if code == "" || code == General {
		return false
	}
	p := nfp.NumberFormatParser()
	for _, section := range p.Parse(code) {
		for _, token := range section.Items {
			switch token.TType {
			case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
				return true
			}
		}
	}
	return false
}
