// Package render turns a built schema model into its textual
// representations: round-trip JSON, object-literal Go source, and typed
// record Go source. Renderers only read the model; the same database value
// can be rendered concurrently by all three.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// exportName converts a catalog identifier like user_accounts into an
// exported Go identifier (UserAccounts). Identifiers that would start with a
// digit get an X prefix.
func exportName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, part := range parts {
		b.WriteString(titleCaser.String(part))
	}

	out := b.String()
	if out == "" {
		return "X"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "X" + out
	}

	return out
}

// literalValue renders a snapshot value as a Go literal.
func literalValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func sourceHeader(pkg string) string {
	return "// Code generated by schemalens. DO NOT EDIT.\n\npackage " + pkg + "\n"
}
