package schemalens

import (
	"fmt"
	"strconv"
)

// FieldError describes a single catalog field that failed validation. It
// wraps ErrMissingField or ErrInvalidFieldValue so callers can branch with
// errors.Is while still seeing which field was at fault.
type FieldError struct {
	Field    string
	Expected string
	Actual   string
	err      error
}

func (e *FieldError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("%v: %s (expected %s)", e.err, e.Field, e.Expected)
	}

	return fmt.Sprintf("%v: %s (expected %s, got %s)", e.err, e.Field, e.Expected, e.Actual)
}

func (e *FieldError) Unwrap() error {
	return e.err
}

func missingField(name, expected string) error {
	return &FieldError{Field: name, Expected: expected, err: ErrMissingField}
}

func invalidField(name, expected, actual string) error {
	return &FieldError{Field: name, Expected: expected, Actual: actual, err: ErrInvalidFieldValue}
}

// Allowed values for the enumerated catalog fields.
var (
	nullableValues  = []string{"YES", "NO"}
	columnKeyValues = []string{"PRI", "UNI", "MUL", ""}
)

// Validate checks one raw catalog row against the required-field and shape
// contract and returns the normalized column. Validation never repairs a row:
// the first offending field aborts construction with a FieldError naming it.
//
// Thirteen fields are required; the length, precision, scale, charset and
// collation fields stay optional because the catalog reports them as NULL for
// types they do not apply to. isGenerated must be present but accepts any
// string beyond the usual NEVER/ALWAYS literals, since storage engines extend
// that vocabulary.
func Validate(row RawColumnRow) (*Column, error) {
	col := &Column{}

	required := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"tableCatalog", row.TableCatalog, &col.TableCatalog},
		{"tableSchema", row.TableSchema, &col.TableSchema},
		{"tableName", row.TableName, &col.TableName},
		{"columnName", row.ColumnName, &col.ColumnName},
	}
	for _, f := range required {
		if f.src == nil {
			return nil, missingField(f.name, "string")
		}
		*f.dst = *f.src
	}

	if row.OrdinalPosition == nil {
		return nil, missingField("ordinalPosition", "positive integer")
	}
	if *row.OrdinalPosition <= 0 {
		return nil, invalidField("ordinalPosition", "positive integer", strconv.FormatInt(*row.OrdinalPosition, 10))
	}
	col.OrdinalPosition = int(*row.OrdinalPosition)

	if row.IsNullable == nil {
		return nil, missingField("isNullable", enumList(nullableValues))
	}
	if !contains(nullableValues, *row.IsNullable) {
		return nil, invalidField("isNullable", enumList(nullableValues), strconv.Quote(*row.IsNullable))
	}
	col.IsNullable = *row.IsNullable

	if row.DataType == nil {
		return nil, missingField("dataType", "non-empty string")
	}
	if *row.DataType == "" {
		return nil, invalidField("dataType", "non-empty string", `""`)
	}
	col.DataType = *row.DataType

	if row.ColumnType == nil {
		return nil, missingField("columnType", "non-empty string")
	}
	if *row.ColumnType == "" {
		return nil, invalidField("columnType", "non-empty string", `""`)
	}
	col.ColumnType = *row.ColumnType

	if row.ColumnKey == nil {
		return nil, missingField("columnKey", enumList(columnKeyValues))
	}
	if !contains(columnKeyValues, *row.ColumnKey) {
		return nil, invalidField("columnKey", enumList(columnKeyValues), strconv.Quote(*row.ColumnKey))
	}
	col.ColumnKey = *row.ColumnKey

	requiredTail := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"extra", row.Extra, &col.Extra},
		{"privileges", row.Privileges, &col.Privileges},
		{"columnComment", row.ColumnComment, &col.ColumnComment},
		{"isGenerated", row.IsGenerated, &col.IsGenerated},
	}
	for _, f := range requiredTail {
		if f.src == nil {
			return nil, missingField(f.name, "string")
		}
		*f.dst = *f.src
	}

	// Optional fields carry over as-is, NULLs included.
	col.ColumnDefault = row.ColumnDefault
	col.CharacterMaximumLength = row.CharacterMaximumLength
	col.CharacterOctetLength = row.CharacterOctetLength
	col.NumericPrecision = row.NumericPrecision
	col.NumericScale = row.NumericScale
	col.DatetimePrecision = row.DatetimePrecision
	col.CharacterSetName = row.CharacterSetName
	col.CollationName = row.CollationName
	col.GenerationExpression = row.GenerationExpression

	return col, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}

	return false
}

func enumList(values []string) string {
	s := "one of"
	for _, v := range values {
		s += " " + strconv.Quote(v)
	}

	return s
}
