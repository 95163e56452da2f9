package schemalens

import "strings"

// RawColumnRow is one record of an INFORMATION_SCHEMA.COLUMNS-style catalog
// query, exactly as the database reported it. Pointer fields distinguish a
// catalog column that was absent from one that was SQL NULL. Raw rows are
// never mutated; they only enter the model through Validate.
type RawColumnRow struct {
	TableCatalog           *string
	TableSchema            *string
	TableName              *string
	ColumnName             *string
	OrdinalPosition        *int64
	ColumnDefault          *string
	IsNullable             *string
	DataType               *string
	CharacterMaximumLength *int64
	CharacterOctetLength   *int64
	NumericPrecision       *int64
	NumericScale           *int64
	DatetimePrecision      *int64
	CharacterSetName       *string
	CollationName          *string
	ColumnType             *string
	ColumnKey              *string
	Extra                  *string
	Privileges             *string
	ColumnComment          *string
	IsGenerated            *string
	GenerationExpression   *string
}

// Column is the validated, camel-cased form of one catalog row. Instances are
// created exclusively by Validate and are treated as immutable by every
// renderer.
type Column struct {
	TableCatalog           string  `json:"tableCatalog"`
	TableSchema            string  `json:"tableSchema"`
	TableName              string  `json:"tableName"`
	ColumnName             string  `json:"columnName"`
	OrdinalPosition        int     `json:"ordinalPosition"`
	ColumnDefault          *string `json:"columnDefault"`
	IsNullable             string  `json:"isNullable"`
	DataType               string  `json:"dataType"`
	CharacterMaximumLength *int64  `json:"characterMaximumLength"`
	CharacterOctetLength   *int64  `json:"characterOctetLength"`
	NumericPrecision       *int64  `json:"numericPrecision"`
	NumericScale           *int64  `json:"numericScale"`
	DatetimePrecision      *int64  `json:"datetimePrecision"`
	CharacterSetName       *string `json:"characterSetName"`
	CollationName          *string `json:"collationName"`
	ColumnType             string  `json:"columnType"`
	ColumnKey              string  `json:"columnKey"`
	Extra                  string  `json:"extra"`
	Privileges             string  `json:"privileges"`
	ColumnComment          string  `json:"columnComment"`
	IsGenerated            string  `json:"isGenerated"`
	GenerationExpression   *string `json:"generationExpression"`
}

// ColumnFieldOrder lists the camel-cased field names of Column in declaration
// order. Renderers that emit key/value snapshots iterate this list so output
// is deterministic.
var ColumnFieldOrder = []string{
	"tableCatalog",
	"tableSchema",
	"tableName",
	"columnName",
	"ordinalPosition",
	"columnDefault",
	"isNullable",
	"dataType",
	"characterMaximumLength",
	"characterOctetLength",
	"numericPrecision",
	"numericScale",
	"datetimePrecision",
	"characterSetName",
	"collationName",
	"columnType",
	"columnKey",
	"extra",
	"privileges",
	"columnComment",
	"isGenerated",
	"generationExpression",
}

// IsPrimaryKey reports whether the column is part of the table's primary key.
func (c *Column) IsPrimaryKey() bool {
	return c.ColumnKey == "PRI"
}

// AllowsNull reports whether the column accepts NULL values.
func (c *Column) AllowsNull() bool {
	return c.IsNullable == "YES"
}

// IsAutoIncrement reports whether the column is auto-incremented.
func (c *Column) IsAutoIncrement() bool {
	return strings.Contains(c.Extra, "auto_increment")
}

// Definition renders the short column definition used in summaries:
// name and column type, with PRIMARY KEY, AUTO_INCREMENT and NOT NULL
// markers in that order.
func (c *Column) Definition() string {
	def := c.ColumnName + " " + c.ColumnType
	if c.IsPrimaryKey() {
		def += " PRIMARY KEY"
	}
	if c.IsAutoIncrement() {
		def += " AUTO_INCREMENT"
	}
	if !c.AllowsNull() {
		def += " NOT NULL"
	}

	return def
}

// Snapshot returns a plain key/value view of every field, keyed by the
// camel-cased field name. Nullable fields that are NULL appear as nil.
func (c *Column) Snapshot() map[string]any {
	return map[string]any{
		"tableCatalog":           c.TableCatalog,
		"tableSchema":            c.TableSchema,
		"tableName":              c.TableName,
		"columnName":             c.ColumnName,
		"ordinalPosition":        c.OrdinalPosition,
		"columnDefault":          stringOrNil(c.ColumnDefault),
		"isNullable":             c.IsNullable,
		"dataType":               c.DataType,
		"characterMaximumLength": intOrNil(c.CharacterMaximumLength),
		"characterOctetLength":   intOrNil(c.CharacterOctetLength),
		"numericPrecision":       intOrNil(c.NumericPrecision),
		"numericScale":           intOrNil(c.NumericScale),
		"datetimePrecision":      intOrNil(c.DatetimePrecision),
		"characterSetName":       stringOrNil(c.CharacterSetName),
		"collationName":          stringOrNil(c.CollationName),
		"columnType":             c.ColumnType,
		"columnKey":              c.ColumnKey,
		"extra":                  c.Extra,
		"privileges":             c.Privileges,
		"columnComment":          c.ColumnComment,
		"isGenerated":            c.IsGenerated,
		"generationExpression":   stringOrNil(c.GenerationExpression),
	}
}

// Table is a named, insertion-ordered collection of columns. The key order
// list exists alongside the lookup map so render order never depends on map
// iteration. Every contained column's TableName matches the table's name;
// that holds by construction in Database.AddRow and is not re-checked here.
type Table struct {
	Name    string
	columns map[string]*Column
	order   []string
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		columns: map[string]*Column{},
	}
}

// AddColumn inserts a column keyed by its name. A column with an already
// present name replaces the existing one without changing its position
// (catalog data is assumed to have unique column names per table, so a
// duplicate is treated as fresher metadata for the same column).
func (t *Table) AddColumn(col *Column) {
	if _, exists := t.columns[col.ColumnName]; !exists {
		t.order = append(t.order, col.ColumnName)
	}
	t.columns[col.ColumnName] = col
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	col, ok := t.columns[name]
	return col, ok
}

// Columns returns the columns in insertion order.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, 0, len(t.order))
	for _, name := range t.order {
		cols = append(cols, t.columns[name])
	}

	return cols
}

// Len returns the number of columns.
func (t *Table) Len() int {
	return len(t.order)
}

// Database is a named, insertion-ordered collection of tables, built by
// folding a flat catalog row stream. The first-seen order of table names
// determines render order.
type Database struct {
	Name   string
	tables map[string]*Table
	order  []string
}

// NewDatabase creates an empty database model.
func NewDatabase(name string) *Database {
	return &Database{
		Name:   name,
		tables: map[string]*Table{},
	}
}

// AddRow validates one raw catalog row and inserts the resulting column into
// its table, creating the table on first sight. A validation failure leaves
// the model untouched for that row; the caller decides whether to skip the
// row or abort the batch.
func (d *Database) AddRow(row RawColumnRow) error {
	col, err := Validate(row)
	if err != nil {
		return err
	}

	table, ok := d.tables[col.TableName]
	if !ok {
		table = NewTable(col.TableName)
		d.tables[col.TableName] = table
		d.order = append(d.order, col.TableName)
	}
	table.AddColumn(col)

	return nil
}

// Table returns the table with the given name.
func (d *Database) Table(name string) (*Table, bool) {
	table, ok := d.tables[name]
	return table, ok
}

// Tables returns the tables in first-seen order.
func (d *Database) Tables() []*Table {
	tables := make([]*Table, 0, len(d.order))
	for _, name := range d.order {
		tables = append(tables, d.tables[name])
	}

	return tables
}

// Len returns the number of tables.
func (d *Database) Len() int {
	return len(d.order)
}

// BuildDatabase folds an ordered row list into a database model, aborting on
// the first invalid row. Callers that prefer to skip bad rows fold manually
// with AddRow.
func BuildDatabase(name string, rows []RawColumnRow) (*Database, error) {
	db := NewDatabase(name)
	for _, row := range rows {
		if err := db.AddRow(row); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func stringOrNil(v *string) any {
	if v == nil {
		return nil
	}

	return *v
}

func intOrNil(v *int64) any {
	if v == nil {
		return nil
	}

	return *v
}
