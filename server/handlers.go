package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	schemalens "github.com/schemalens/schemalens"
	"github.com/schemalens/schemalens/render"
)

var errMissingDatabase = errors.New("database query parameter is required")

// handleDatabaseList answers GET /api/database.list with the server's user
// databases.
func (s *Server) handleDatabaseList(w http.ResponseWriter, r *http.Request) {
	databases, err := s.catalog.ListDatabases(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	if databases == nil {
		databases = []string{}
	}

	s.writeJSON(w, map[string]any{"databases": databases})
}

// handleTableList answers GET /api/tables.list?database=<name> with table
// names and per-column definitions.
func (s *Server) handleTableList(w http.ResponseWriter, r *http.Request) {
	db, ok := s.inspect(w, r)
	if !ok {
		return
	}

	type tableEntry struct {
		Name    string              `json:"name"`
		Columns []*schemalens.Column `json:"columns"`
	}

	tables := []tableEntry{}
	for _, table := range db.Tables() {
		tables = append(tables, tableEntry{Name: table.Name, Columns: table.Columns()})
	}

	s.writeJSON(w, map[string]any{"database": db.Name, "tables": tables})
}

// handleSchemaJSON answers GET /api/schema.json?database=<name> with the
// round-trip JSON rendering.
func (s *Server) handleSchemaJSON(w http.ResponseWriter, r *http.Request) {
	db, ok := s.inspect(w, r)
	if !ok {
		return
	}

	out, err := render.JSON(db)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// handleSchemaDDL answers GET /api/schema.ddl?database=<name> with one
// CREATE TABLE statement per table. Tables are rendered independently: a
// failing table is reported as a comment without blocking the rest.
func (s *Server) handleSchemaDDL(w http.ResponseWriter, r *http.Request) {
	db, ok := s.inspect(w, r)
	if !ok {
		return
	}

	var statements []string
	for _, table := range db.Tables() {
		ddl, err := table.CreateTable(schemalens.CreateTableOptions{})
		if err != nil {
			s.logger.Warn("skipping table", "table", table.Name, "error", err)
			statements = append(statements, "-- "+table.Name+": "+err.Error())

			continue
		}
		statements = append(statements, ddl)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(strings.Join(statements, "\n\n")))
}

// handleSchemaGo answers GET /api/schema.go?database=<name>&style=<style>
// with generated Go source; style is literal (default) or records.
func (s *Server) handleSchemaGo(w http.ResponseWriter, r *http.Request) {
	db, ok := s.inspect(w, r)
	if !ok {
		return
	}

	var (
		out string
		err error
	)

	switch style := r.URL.Query().Get("style"); style {
	case "", "literal":
		out, err = render.Literal(db, s.pkg)
	case "records":
		out, err = render.Records(db, s.pkg)
	default:
		s.writeError(w, http.StatusBadRequest, errors.New("unknown style: "+style))
		return
	}

	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// inspect resolves the database query parameter and builds the schema model.
func (s *Server) inspect(w http.ResponseWriter, r *http.Request) (*schemalens.Database, bool) {
	name := r.URL.Query().Get("database")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, errMissingDatabase)
		return nil, false
	}

	db, err := s.catalog.InspectDatabase(r.Context(), name)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, schemalens.ErrMissingField) || errors.Is(err, schemalens.ErrInvalidFieldValue) {
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, status, err)

		return nil, false
	}

	return db, true
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
