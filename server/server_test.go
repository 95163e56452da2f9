package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	schemalens "github.com/schemalens/schemalens"
)

type stubCatalog struct {
	databases []string
	models    map[string]*schemalens.Database
	err       error
}

func (s *stubCatalog) ListDatabases(ctx context.Context) ([]string, error) {
	return s.databases, s.err
}

func (s *stubCatalog) InspectDatabase(ctx context.Context, database string) (*schemalens.Database, error) {
	if s.err != nil {
		return nil, s.err
	}

	db, ok := s.models[database]
	if !ok {
		return nil, errors.New("unknown database: " + database)
	}

	return db, nil
}

func testModel(t *testing.T) *schemalens.Database {
	t.Helper()

	strPtr := func(s string) *string { return &s }
	intPtr := func(i int64) *int64 { return &i }

	rows := []schemalens.RawColumnRow{
		{
			TableSchema:     strPtr("app"),
			TableName:       strPtr("users"),
			ColumnName:      strPtr("id"),
			OrdinalPosition: intPtr(1),
			IsNullable:      strPtr("NO"),
			DataType:        strPtr("int"),
			ColumnType:      strPtr("int(11)"),
			ColumnKey:       strPtr("PRI"),
			Extra:           strPtr("auto_increment"),
			Privileges:      strPtr("select"),
			ColumnComment:   strPtr(""),
			IsGenerated:     strPtr("NEVER"),
			TableCatalog:    strPtr("def"),
		},
		{
			TableSchema:     strPtr("app"),
			TableName:       strPtr("users"),
			ColumnName:      strPtr("email"),
			OrdinalPosition: intPtr(2),
			IsNullable:      strPtr("NO"),
			DataType:        strPtr("varchar"),
			ColumnType:      strPtr("varchar(255)"),
			ColumnKey:       strPtr("UNI"),
			Extra:           strPtr(""),
			Privileges:      strPtr("select"),
			ColumnComment:   strPtr(""),
			IsGenerated:     strPtr("NEVER"),
			TableCatalog:    strPtr("def"),
		},
	}

	db, err := schemalens.BuildDatabase("app", rows)
	assert.NoError(t, err)

	return db
}

func newTestServer(t *testing.T, catalog Catalog) *Server {
	t.Helper()

	return NewServer(Config{
		Catalog: catalog,
		Package: "dbschema",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestDatabaseList(t *testing.T) {
	catalog := &stubCatalog{databases: []string{"app", "analytics"}}
	srv := newTestServer(t, catalog)

	rec := get(t, srv.Handler(), "/api/database.list")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Databases []string `json:"databases"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"app", "analytics"}, body.Databases)
}

func TestDatabaseListEmpty(t *testing.T) {
	srv := newTestServer(t, &stubCatalog{})

	rec := get(t, srv.Handler(), "/api/database.list")
	assert.Equal(t, http.StatusOK, rec.Code)
	// nil slice must render as [], not null
	assert.Contains(t, rec.Body.String(), `"databases":[]`)
}

func TestDatabaseListUpstreamError(t *testing.T) {
	srv := newTestServer(t, &stubCatalog{err: errors.New("connection refused")})

	rec := get(t, srv.Handler(), "/api/database.list")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestTableList(t *testing.T) {
	catalog := &stubCatalog{models: map[string]*schemalens.Database{"app": testModel(t)}}
	srv := newTestServer(t, catalog)

	rec := get(t, srv.Handler(), "/api/tables.list?database=app")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Database string `json:"database"`
		Tables   []struct {
			Name    string `json:"name"`
			Columns []struct {
				ColumnName string `json:"columnName"`
			} `json:"columns"`
		} `json:"tables"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "app", body.Database)
	assert.Equal(t, 1, len(body.Tables))
	assert.Equal(t, "users", body.Tables[0].Name)
	assert.Equal(t, 2, len(body.Tables[0].Columns))
	assert.Equal(t, "id", body.Tables[0].Columns[0].ColumnName)
}

func TestMissingDatabaseParam(t *testing.T) {
	srv := newTestServer(t, &stubCatalog{})

	for _, path := range []string{
		"/api/tables.list",
		"/api/schema.json",
		"/api/schema.ddl",
		"/api/schema.go",
	} {
		rec := get(t, srv.Handler(), path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
		assert.Contains(t, rec.Body.String(), "database query parameter is required")
	}
}

func TestValidationErrorStatus(t *testing.T) {
	catalog := &stubCatalog{err: schemalens.ErrMissingField}
	srv := newTestServer(t, catalog)

	rec := get(t, srv.Handler(), "/api/schema.json?database=app")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSchemaJSON(t *testing.T) {
	catalog := &stubCatalog{models: map[string]*schemalens.Database{"app": testModel(t)}}
	srv := newTestServer(t, catalog)

	rec := get(t, srv.Handler(), "/api/schema.json?database=app")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var cols []schemalens.Column
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cols))
	assert.Equal(t, 2, len(cols))
}

func TestSchemaDDL(t *testing.T) {
	catalog := &stubCatalog{models: map[string]*schemalens.Database{"app": testModel(t)}}
	srv := newTestServer(t, catalog)

	rec := get(t, srv.Handler(), "/api/schema.ddl?database=app")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CREATE TABLE `users`")
	assert.Contains(t, rec.Body.String(), "PRIMARY KEY (`id`)")
	assert.Contains(t, rec.Body.String(), "UNIQUE KEY `email_unique` (`email`)")
}

func TestSchemaDDLEmptyTableSkipped(t *testing.T) {
	db := schemalens.NewDatabase("app")
	catalog := &stubCatalog{models: map[string]*schemalens.Database{"app": db}}
	srv := newTestServer(t, catalog)

	rec := get(t, srv.Handler(), "/api/schema.ddl?database=app")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", rec.Body.String())
}

func TestSchemaGoStyles(t *testing.T) {
	catalog := &stubCatalog{models: map[string]*schemalens.Database{"app": testModel(t)}}
	srv := newTestServer(t, catalog)

	t.Run("DefaultIsLiteral", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/api/schema.go?database=app")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "var UsersColumns = map[string]map[string]any{")
		assert.True(t, strings.HasPrefix(rec.Body.String(), "// Code generated by schemalens. DO NOT EDIT."))
	})

	t.Run("Records", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/api/schema.go?database=app&style=records")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "type Users struct {")
		assert.Contains(t, rec.Body.String(), "func NewUsers(rec map[string]any) Users {")
	})

	t.Run("UnknownStyle", func(t *testing.T) {
		rec := get(t, srv.Handler(), "/api/schema.go?database=app&style=rust")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown style: rust")
	})
}
