package schemalens

import (
	"fmt"
	"strings"
)

// Default table character set and collation, used when neither the options
// nor the catalog supply one.
const (
	DefaultCharset   = "utf8mb4"
	DefaultCollation = "utf8mb4_unicode_ci"
)

// CreateTableOptions adjusts DDL generation. Zero values fall back to the
// first column's charset/collation, then to the package defaults.
type CreateTableOptions struct {
	Charset   string
	Collation string
}

// CreateTable renders the table as a single CREATE TABLE statement. Columns
// are emitted in insertion order; primary-key columns accumulate into one
// trailing PRIMARY KEY clause and each UNI column gets its own UNIQUE KEY
// clause. Generating DDL for an empty table is an error, never an empty
// statement.
func (t *Table) CreateTable(opts CreateTableOptions) (string, error) {
	if t.Len() == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyTable, t.Name)
	}

	var (
		defs        []string
		primaryKeys []string
		uniqueKeys  []string
		indexedCols []string
	)

	for _, col := range t.Columns() {
		def := "`" + col.ColumnName + "` " + col.ColumnType
		if !col.AllowsNull() {
			def += " NOT NULL"
		}
		if col.ColumnDefault != nil {
			def += " DEFAULT " + formatDefaultValue(col.DataType, col.ColumnDefault)
		}
		if col.IsAutoIncrement() {
			def += " AUTO_INCREMENT"
		}
		if col.ColumnComment != "" {
			def += " COMMENT '" + escapeSQLString(col.ColumnComment) + "'"
		}
		defs = append(defs, def)

		switch col.ColumnKey {
		case "PRI":
			primaryKeys = append(primaryKeys, col.ColumnName)
		case "UNI":
			uniqueKeys = append(uniqueKeys, col.ColumnName)
		case "MUL":
			// Secondary indexes are tracked but never emitted; index
			// creation is outside the generated statement.
			indexedCols = append(indexedCols, col.ColumnName)
		}
	}
	_ = indexedCols

	if len(primaryKeys) > 0 {
		defs = append(defs, "PRIMARY KEY ("+backtickList(primaryKeys)+")")
	}
	for _, name := range uniqueKeys {
		defs = append(defs, "UNIQUE KEY `"+name+"_unique` (`"+name+"`)")
	}

	charset, collation := t.tableCharset(opts)

	var b strings.Builder
	b.WriteString("CREATE TABLE `")
	b.WriteString(t.Name)
	b.WriteString("` (\n  ")
	b.WriteString(strings.Join(defs, ",\n  "))
	b.WriteString("\n) DEFAULT CHARSET=")
	b.WriteString(charset)
	b.WriteString(" COLLATE=")
	b.WriteString(collation)
	b.WriteString(";")

	return b.String(), nil
}

// tableCharset resolves the table-level charset and collation: supplied
// option, else the first column's catalog values, else the fixed defaults.
func (t *Table) tableCharset(opts CreateTableOptions) (string, string) {
	charset := opts.Charset
	collation := opts.Collation

	if cols := t.Columns(); len(cols) > 0 {
		first := cols[0]
		if charset == "" && first.CharacterSetName != nil {
			charset = *first.CharacterSetName
		}
		if collation == "" && first.CollationName != nil {
			collation = *first.CollationName
		}
	}

	if charset == "" {
		charset = DefaultCharset
	}
	if collation == "" {
		collation = DefaultCollation
	}

	return charset, collation
}

// formatDefaultValue renders a column default by type family: string-family
// values are quoted and escaped, CURRENT_TIMESTAMP stays a bare keyword on
// timestamp/datetime columns, binary defaults become hex literals, and
// everything else (numeric, boolean) passes through verbatim.
func formatDefaultValue(dataType string, value *string) string {
	if value == nil {
		// Unreachable through CreateTable, which only formats present
		// defaults, but a nil default still has a spelling.
		return "NULL"
	}

	dt := strings.ToLower(strings.TrimSpace(dataType))

	switch {
	case strings.Contains(dt, "char") || strings.Contains(dt, "text") || dt == "enum" || dt == "set":
		return "'" + escapeSQLString(*value) + "'"
	case (dt == "timestamp" || dt == "datetime") && strings.EqualFold(*value, "CURRENT_TIMESTAMP"):
		return "CURRENT_TIMESTAMP"
	case strings.Contains(dt, "blob") || strings.Contains(dt, "binary"):
		return "x'" + *value + "'"
	default:
		return *value
	}
}

// escapeSQLString doubles backslashes and single quotes so the result can be
// embedded between single quotes in a statement.
func escapeSQLString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", "''")

	return s
}

func backtickList(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "`" + name + "`"
	}

	return strings.Join(quoted, ", ")
}
