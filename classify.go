package schemalens

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the semantic classification of a column, used to drive code
// generation. It is deliberately coarser than the database's native type
// names: every column maps to exactly one kind.
type Kind string

const (
	KindBit     Kind = "bit"
	KindInteger Kind = "integer"
	KindString  Kind = "string"
	KindFloat   Kind = "float"
)

var (
	booleanNamePattern = regexp.MustCompile(`^is_|_is_|^has_`)
	integerTypePattern = regexp.MustCompile(`integer|int|smallint|tinyint|mediumint|bigint`)
	stringTypePattern  = regexp.MustCompile(`char|varchar|tinytext|text|mediumtext|longtext`)
	floatTypePattern   = regexp.MustCompile(`float|double|real|decimal`)
	dateTypePattern    = regexp.MustCompile(`date|time|datetime|timestamp`)
)

// Classify maps a column's name and catalog type strings to a Kind. Matching
// is case-insensitive and the first rule wins:
//
//  1. bit: columnType is exactly tinyint(1), or an integer-typed column whose
//     name marks it as a flag (is_*, *_is_*, has_*), or a literal boolean.
//  2. 64-bit integers are rejected: their range exceeds the numeric
//     representation of the generated code.
//  3. integer, string, float by data type token.
//  4. Anything else degrades to string rather than failing, so a schema with
//     exotic types still renders.
func Classify(columnName, dataType, columnType string) (Kind, error) {
	name := strings.ToLower(columnName)
	dt := strings.ToLower(strings.TrimSpace(dataType))
	ct := strings.ToLower(strings.TrimSpace(columnType))

	switch {
	case ct == "tinyint(1)":
		return KindBit, nil
	case integerTypePattern.MatchString(dt) && booleanNamePattern.MatchString(name):
		return KindBit, nil
	case dt == "boolean":
		return KindBit, nil
	}

	if strings.Contains(dt, "bigint") {
		return "", fmt.Errorf("%w: %s exceeds the generated numeric range", ErrUnsupportedType, dataType)
	}

	switch {
	case integerTypePattern.MatchString(dt):
		return KindInteger, nil
	case stringTypePattern.MatchString(dt):
		return KindString, nil
	case floatTypePattern.MatchString(dt):
		return KindFloat, nil
	}

	return KindString, nil
}

// IsDateLike reports whether the data type holds a calendar or clock value.
// Date-like columns are rendered as strings by the code generators.
func IsDateLike(dataType string) bool {
	return dateTypePattern.MatchString(strings.ToLower(strings.TrimSpace(dataType)))
}
