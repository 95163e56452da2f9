package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	schemalens "github.com/schemalens/schemalens"
)

// Inspector reads catalog metadata from an open MySQL connection.
type Inspector struct {
	db *sql.DB
}

// NewInspector creates an inspector over an open connection. The inspector
// does not own the connection; the caller closes it.
func NewInspector(db *sql.DB) *Inspector {
	return &Inspector{db: db}
}

// System schemas excluded from database listings.
var systemSchemas = map[string]bool{
	"information_schema": true,
	"performance_schema": true,
	"mysql":              true,
	"sys":                true,
}

// ListDatabases returns the names of the server's user databases.
func (i *Inspector) ListDatabases(ctx context.Context) ([]string, error) {
	rows, err := i.db.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var databases []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResultScanFailed, err)
		}
		if !systemSchemas[name] {
			databases = append(databases, name)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	return databases, nil
}

// columnsQuery fetches every column description of a database, ordered by
// table name then ordinal position so the model builds tables and columns in
// catalog order.
const columnsQuery = `
	SELECT
		TABLE_CATALOG,
		TABLE_SCHEMA,
		TABLE_NAME,
		COLUMN_NAME,
		ORDINAL_POSITION,
		COLUMN_DEFAULT,
		IS_NULLABLE,
		DATA_TYPE,
		CHARACTER_MAXIMUM_LENGTH,
		CHARACTER_OCTET_LENGTH,
		NUMERIC_PRECISION,
		NUMERIC_SCALE,
		DATETIME_PRECISION,
		CHARACTER_SET_NAME,
		COLLATION_NAME,
		COLUMN_TYPE,
		COLUMN_KEY,
		EXTRA,
		PRIVILEGES,
		COLUMN_COMMENT,
		GENERATION_EXPRESSION
	FROM information_schema.COLUMNS
	WHERE TABLE_SCHEMA = ?
	ORDER BY TABLE_NAME, ORDINAL_POSITION`

// FetchColumns runs the catalog query for one database and returns the raw
// rows, unvalidated. Rows come back ordered by table name then ordinal
// position.
func (i *Inspector) FetchColumns(ctx context.Context, database string) ([]schemalens.RawColumnRow, error) {
	rows, err := i.db.QueryContext(ctx, columnsQuery, database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var result []schemalens.RawColumnRow
	for rows.Next() {
		var (
			catalog, schema, tableName, columnName sql.NullString
			ordinalPosition                        sql.NullInt64
			columnDefault, isNullable, dataType    sql.NullString
			charMaxLength, charOctetLength         sql.NullInt64
			numericPrecision, numericScale         sql.NullInt64
			datetimePrecision                      sql.NullInt64
			charsetName, collationName, columnType sql.NullString
			columnKey, extra, privileges, comment  sql.NullString
			generationExpression                   sql.NullString
		)

		err := rows.Scan(&catalog, &schema, &tableName, &columnName,
			&ordinalPosition, &columnDefault, &isNullable, &dataType,
			&charMaxLength, &charOctetLength, &numericPrecision,
			&numericScale, &datetimePrecision, &charsetName, &collationName,
			&columnType, &columnKey, &extra, &privileges, &comment,
			&generationExpression)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResultScanFailed, err)
		}

		row := schemalens.RawColumnRow{
			TableCatalog:           nullableString(catalog),
			TableSchema:            nullableString(schema),
			TableName:              nullableString(tableName),
			ColumnName:             nullableString(columnName),
			OrdinalPosition:        nullableInt(ordinalPosition),
			ColumnDefault:          nullableString(columnDefault),
			IsNullable:             nullableString(isNullable),
			DataType:               nullableString(dataType),
			CharacterMaximumLength: nullableInt(charMaxLength),
			CharacterOctetLength:   nullableInt(charOctetLength),
			NumericPrecision:       nullableInt(numericPrecision),
			NumericScale:           nullableInt(numericScale),
			DatetimePrecision:      nullableInt(datetimePrecision),
			CharacterSetName:       nullableString(charsetName),
			CollationName:          nullableString(collationName),
			ColumnType:             nullableString(columnType),
			ColumnKey:              nullableString(columnKey),
			Extra:                  nullableString(extra),
			Privileges:             nullableString(privileges),
			ColumnComment:          nullableString(comment),
			GenerationExpression:   nullableString(generationExpression),
		}
		row.IsGenerated = generationStatus(generationExpression)

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	return result, nil
}

// InspectDatabase fetches the catalog rows of one database and folds them
// into a schema model.
func (i *Inspector) InspectDatabase(ctx context.Context, database string) (*schemalens.Database, error) {
	rows, err := i.FetchColumns(ctx, database)
	if err != nil {
		return nil, err
	}

	return schemalens.BuildDatabase(database, rows)
}

// generationStatus derives the generation status field from the generation
// expression: MySQL reports an empty expression for plain columns.
func generationStatus(expr sql.NullString) *string {
	status := "NEVER"
	if expr.Valid && strings.TrimSpace(expr.String) != "" {
		status = "ALWAYS"
	}

	return &status
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}

	s := v.String

	return &s
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}

	n := v.Int64

	return &n
}
