package inspect

import "errors"

// Connection errors
var (
	ErrConnectionFailed   = errors.New("failed to connect to database")
	ErrInvalidDatabaseURL = errors.New("invalid database URL")
	ErrUnsupportedScheme  = errors.New("unsupported database URL scheme")
	ErrEmptyDatabaseURL   = errors.New("database URL cannot be empty")
)

// Catalog query errors
var (
	ErrQueryFailed      = errors.New("catalog query failed")
	ErrResultScanFailed = errors.New("catalog result scan failed")
	ErrDatabaseNotFound = errors.New("database not found")
)
