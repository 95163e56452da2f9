package schemalens

import "errors"

// Validation errors
var (
	// ErrMissingField is returned when a required catalog field is absent from a raw row.
	ErrMissingField = errors.New("required field is missing")
	// ErrInvalidFieldValue is returned when a catalog field fails its shape or enum check.
	ErrInvalidFieldValue = errors.New("field value does not match expected shape")
)

// Classification errors
var (
	// ErrUnsupportedType is returned for column types whose value range the
	// generated numeric representation cannot round-trip (64-bit integers).
	ErrUnsupportedType = errors.New("unsupported column type")
)

// DDL generation errors
var (
	// ErrEmptyTable is returned when generating DDL for a table with no columns.
	ErrEmptyTable = errors.New("table has no columns")
)

// Configuration errors
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnsupportedDriver is returned for database drivers other than mysql.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
