package schemalens

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func column(t *testing.T, row RawColumnRow) *Column {
	t.Helper()

	col, err := Validate(row)
	assert.NoError(t, err)

	return col
}

func TestCreateTable(t *testing.T) {
	t.Run("PrimaryKeyAndUniqueKey", func(t *testing.T) {
		id := validRow("users", "id", 1)
		id.ColumnKey = strPtr("PRI")
		id.Extra = strPtr("auto_increment")

		email := validRow("users", "email", 2)
		email.DataType = strPtr("varchar")
		email.ColumnType = strPtr("varchar(255)")
		email.ColumnKey = strPtr("UNI")

		table := NewTable("users")
		table.AddColumn(column(t, id))
		table.AddColumn(column(t, email))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)

		expected := "CREATE TABLE `users` (\n" +
			"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
			"  `email` varchar(255) NOT NULL,\n" +
			"  PRIMARY KEY (`id`),\n" +
			"  UNIQUE KEY `email_unique` (`email`)\n" +
			") DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;"
		assert.Equal(t, expected, ddl)
		assert.NotContains(t, ddl, "DEFAULT NULL")
	})

	t.Run("Idempotent", func(t *testing.T) {
		row := validRow("users", "id", 1)

		table := NewTable("users")
		table.AddColumn(column(t, row))

		first, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)

		second, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("EmptyTable", func(t *testing.T) {
		table := NewTable("empty")

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.IsError(t, err, ErrEmptyTable)
		assert.Contains(t, err.Error(), "empty")
		assert.Equal(t, "", ddl)
	})

	t.Run("CurrentTimestampDefaultUnquoted", func(t *testing.T) {
		row := validRow("events", "created_at", 1)
		row.DataType = strPtr("timestamp")
		row.ColumnType = strPtr("timestamp")
		row.ColumnDefault = strPtr("CURRENT_TIMESTAMP")

		table := NewTable("events")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "DEFAULT CURRENT_TIMESTAMP")
		assert.NotContains(t, ddl, "'CURRENT_TIMESTAMP'")
	})

	t.Run("StringDefaultQuoted", func(t *testing.T) {
		row := validRow("settings", "value", 1)
		row.DataType = strPtr("varchar")
		row.ColumnType = strPtr("varchar(64)")
		row.ColumnDefault = strPtr("0")

		table := NewTable("settings")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "DEFAULT '0'")
	})

	t.Run("NumericDefaultUnquoted", func(t *testing.T) {
		row := validRow("settings", "retries", 1)
		row.ColumnDefault = strPtr("3")

		table := NewTable("settings")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "DEFAULT 3")
		assert.NotContains(t, ddl, "DEFAULT '3'")
	})

	t.Run("BinaryDefaultHexLiteral", func(t *testing.T) {
		row := validRow("files", "checksum", 1)
		row.DataType = strPtr("binary")
		row.ColumnType = strPtr("binary(16)")
		row.ColumnDefault = strPtr("00")

		table := NewTable("files")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "DEFAULT x'00'")
	})

	t.Run("CommentEscaped", func(t *testing.T) {
		row := validRow("users", "nickname", 1)
		row.DataType = strPtr("varchar")
		row.ColumnType = strPtr("varchar(32)")
		row.ColumnComment = strPtr(`the user's "handle" \ alias`)

		table := NewTable("users")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, `COMMENT 'the user''s "handle" \\ alias'`)
	})

	t.Run("NullableColumnOmitsNotNull", func(t *testing.T) {
		row := validRow("users", "bio", 1)
		row.IsNullable = strPtr("YES")
		row.DataType = strPtr("text")
		row.ColumnType = strPtr("text")

		table := NewTable("users")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.NotContains(t, ddl, "NOT NULL")
	})

	t.Run("MulColumnsNotEmitted", func(t *testing.T) {
		id := validRow("posts", "id", 1)
		id.ColumnKey = strPtr("PRI")

		author := validRow("posts", "author_id", 2)
		author.ColumnKey = strPtr("MUL")

		table := NewTable("posts")
		table.AddColumn(column(t, id))
		table.AddColumn(column(t, author))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "PRIMARY KEY (`id`)")
		assert.NotContains(t, ddl, "KEY `author_id")
		assert.NotContains(t, ddl, "INDEX")
	})

	t.Run("CompositePrimaryKeyInColumnOrder", func(t *testing.T) {
		a := validRow("memberships", "user_id", 1)
		a.ColumnKey = strPtr("PRI")

		b := validRow("memberships", "group_id", 2)
		b.ColumnKey = strPtr("PRI")

		table := NewTable("memberships")
		table.AddColumn(column(t, a))
		table.AddColumn(column(t, b))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "PRIMARY KEY (`user_id`, `group_id`)")
	})

	t.Run("CharsetResolution", func(t *testing.T) {
		row := validRow("users", "name", 1)
		row.DataType = strPtr("varchar")
		row.ColumnType = strPtr("varchar(64)")
		row.CharacterSetName = strPtr("latin1")
		row.CollationName = strPtr("latin1_swedish_ci")

		table := NewTable("users")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "CHARSET=latin1 COLLATE=latin1_swedish_ci")

		ddl, err = table.CreateTable(CreateTableOptions{Charset: "utf8mb4", Collation: "utf8mb4_bin"})
		assert.NoError(t, err)
		assert.Contains(t, ddl, "CHARSET=utf8mb4 COLLATE=utf8mb4_bin")
	})

	t.Run("SingleStatement", func(t *testing.T) {
		row := validRow("users", "id", 1)

		table := NewTable("users")
		table.AddColumn(column(t, row))

		ddl, err := table.CreateTable(CreateTableOptions{})
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(ddl, ";"))
		assert.Equal(t, 1, strings.Count(ddl, ";"))
	})
}

func TestEscapeSQLString(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"it's", "it''s"},
		{`back\slash`, `back\\slash`},
		{`both'\`, `both''\\`},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, escapeSQLString(tc.in))
	}
}
