package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/efp"
)

var errUnbalanced = errors.New("unbalanced parentheses")

// checkFormula tokenizes a formula (without its leading "=") and rejects text the tokenizer
// cannot make sense of. It does not validate function names or references.
func checkFormula(formula string) (err error) {
	if strings.TrimSpace(formula) == "" {
		return errors.New("empty formula")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cannot tokenize formula: %v", r)
		}
	}()

	ps := efp.ExcelParser()
	depth := 0
	for _, token := range ps.Parse(formula) {
		switch token.TType {
		case efp.TokenTypeUnknown:
			return fmt.Errorf("unexpected token %q", token.TValue)
		case efp.TokenTypeFunction, efp.TokenTypeSubexpression:
			switch token.TSubType {
			case efp.TokenSubTypeStart:
				depth++
			case efp.TokenSubTypeStop:
				depth--
				if depth < 0 {
					return errUnbalanced
				}
			}
		}
	}
	if depth != 0 {
		return errUnbalanced
	}
	return nil
}
