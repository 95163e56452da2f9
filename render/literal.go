package render

import (
	"strings"

	schemalens "github.com/schemalens/schemalens"
)

// Literal emits one Go map-literal declaration per table, each entry holding
// the full field snapshot of one column keyed by column name. The output is a
// complete source file in the given package. An empty model renders as an
// empty string.
func Literal(db *schemalens.Database, pkg string) (string, error) {
	if db == nil || db.Len() == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString(sourceHeader(pkg))

	for _, table := range db.Tables() {
		b.WriteString("\n// ")
		b.WriteString(exportName(table.Name))
		b.WriteString("Columns holds the catalog metadata of the ")
		b.WriteString(table.Name)
		b.WriteString(" table, keyed by column name.\n")
		b.WriteString("var ")
		b.WriteString(exportName(table.Name))
		b.WriteString("Columns = map[string]map[string]any{\n")

		for _, col := range table.Columns() {
			b.WriteString("\t")
			b.WriteString(literalValue(col.ColumnName))
			b.WriteString(": {\n")

			snapshot := col.Snapshot()
			for _, field := range schemalens.ColumnFieldOrder {
				b.WriteString("\t\t")
				b.WriteString(literalValue(field))
				b.WriteString(": ")
				b.WriteString(literalValue(snapshot[field]))
				b.WriteString(",\n")
			}

			b.WriteString("\t},\n")
		}

		b.WriteString("}\n")
	}

	return b.String(), nil
}
