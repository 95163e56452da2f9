package render

import (
	"fmt"
	"strings"

	schemalens "github.com/schemalens/schemalens"
)

// Records emits one typed struct per table plus a constructor that coerces a
// raw row map into it. String-like and date-like columns become string
// fields, everything else float64. Coercion in the generated code is
// deliberately permissive: a value that does not parse as a number becomes
// NaN instead of failing, mirroring how the consumers of these records treat
// malformed catalog data. An empty model renders as an empty string.
func Records(db *schemalens.Database, pkg string) (string, error) {
	if db == nil || db.Len() == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString(sourceHeader(pkg))
	b.WriteString("\nimport (\n\t\"fmt\"\n\t\"math\"\n\t\"strconv\"\n)\n")

	for _, table := range db.Tables() {
		structName := exportName(table.Name)

		fieldTypes := make(map[string]string, table.Len())
		width := 0
		for _, col := range table.Columns() {
			fieldType, err := recordFieldType(col)
			if err != nil {
				return "", fmt.Errorf("table %s, column %s: %w", table.Name, col.ColumnName, err)
			}
			fieldTypes[col.ColumnName] = fieldType
			if n := len(exportName(col.ColumnName)); n > width {
				width = n
			}
		}

		b.WriteString("\n// ")
		b.WriteString(structName)
		b.WriteString(" is the typed record of one ")
		b.WriteString(table.Name)
		b.WriteString(" row.\n")
		b.WriteString("type ")
		b.WriteString(structName)
		b.WriteString(" struct {\n")
		for _, col := range table.Columns() {
			b.WriteString(fmt.Sprintf("\t%-*s %s\n", width, exportName(col.ColumnName), fieldTypes[col.ColumnName]))
		}
		b.WriteString("}\n")

		b.WriteString("\n// New")
		b.WriteString(structName)
		b.WriteString(" builds a ")
		b.WriteString(structName)
		b.WriteString(" from a raw row map, coercing every field to its declared type.\n")
		b.WriteString("func New")
		b.WriteString(structName)
		b.WriteString("(rec map[string]any) ")
		b.WriteString(structName)
		b.WriteString(" {\n\treturn ")
		b.WriteString(structName)
		b.WriteString("{\n")
		for _, col := range table.Columns() {
			coerce := "asNumber"
			if fieldTypes[col.ColumnName] == "string" {
				coerce = "asString"
			}
			b.WriteString(fmt.Sprintf("\t\t%-*s %s(rec[%q]),\n", width+1, exportName(col.ColumnName)+":", coerce, col.ColumnName))
		}
		b.WriteString("\t}\n}\n")
	}

	b.WriteString(coercionHelpers)

	return b.String(), nil
}

// recordFieldType decides the generated Go type of one column.
func recordFieldType(col *schemalens.Column) (string, error) {
	if schemalens.IsDateLike(col.DataType) {
		return "string", nil
	}

	kind, err := schemalens.Classify(col.ColumnName, col.DataType, col.ColumnType)
	if err != nil {
		return "", err
	}
	if kind == schemalens.KindString {
		return "string", nil
	}

	return "float64", nil
}

const coercionHelpers = `
func asString(v any) string {
	if v == nil {
		return ""
	}

	return fmt.Sprint(v)
}

// asNumber coerces v to float64. Values that do not parse as numbers become
// NaN rather than failing.
func asNumber(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int64:
		return float64(value)
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return math.NaN()
		}

		return f
	default:
		return math.NaN()
	}
}
`
