// Package inspect connects to a MySQL server and reads its catalog metadata
// into raw rows for the schema model. It is the only package that talks to a
// database; everything downstream works on the rows it produces.
package inspect

import (
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// Connector opens MySQL connections from mysql:// URLs.
type Connector struct {
	poolSettings ConnectionPoolSettings
}

// ConnectionPoolSettings defines database connection pool configuration.
type ConnectionPoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ConnectionInfo contains parsed database connection information.
type ConnectionInfo struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Options  map[string]string
}

// NewConnector creates a connector with default pool settings.
func NewConnector() *Connector {
	return &Connector{
		poolSettings: ConnectionPoolSettings{
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
	}
}

// SetPoolSettings configures connection pool settings.
func (c *Connector) SetPoolSettings(settings ConnectionPoolSettings) {
	c.poolSettings = settings
}

// ValidateDatabaseURL checks that the URL is a well-formed mysql:// URL.
func (c *Connector) ValidateDatabaseURL(databaseURL string) error {
	if databaseURL == "" {
		return ErrEmptyDatabaseURL
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		return ErrInvalidDatabaseURL
	}

	if u.Scheme != "mysql" {
		return fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return ErrInvalidDatabaseURL
	}

	return nil
}

// ParseConnectionInfo parses a mysql:// URL into its parts. The path
// component (the database) may be empty: server-level inspection starts with
// no database selected.
func (c *Connector) ParseConnectionInfo(databaseURL string) (ConnectionInfo, error) {
	if err := c.ValidateDatabaseURL(databaseURL); err != nil {
		return ConnectionInfo{}, err
	}

	u, _ := url.Parse(databaseURL)

	info := ConnectionInfo{
		Host:     u.Hostname(),
		Port:     u.Port(),
		Database: strings.TrimPrefix(u.Path, "/"),
		Options:  make(map[string]string),
	}
	if info.Port == "" {
		info.Port = "3306"
	}
	if u.User != nil {
		info.Username = u.User.Username()
		if password, ok := u.User.Password(); ok {
			info.Password = password
		}
	}

	for key, values := range u.Query() {
		if len(values) > 0 {
			info.Options[key] = values[0]
		}
	}

	return info, nil
}

// DSN converts parsed connection info to the go-sql-driver format.
func (info ConnectionInfo) DSN() string {
	var b strings.Builder
	if info.Username != "" {
		b.WriteString(info.Username)
		if info.Password != "" {
			b.WriteString(":")
			b.WriteString(info.Password)
		}
		b.WriteString("@")
	}

	b.WriteString("tcp(")
	b.WriteString(info.Host)
	b.WriteString(":")
	b.WriteString(info.Port)
	b.WriteString(")/")
	b.WriteString(info.Database)

	if len(info.Options) > 0 {
		keys := make([]string, 0, len(info.Options))
		for key := range info.Options {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		sep := "?"
		for _, key := range keys {
			b.WriteString(sep)
			b.WriteString(key)
			b.WriteString("=")
			b.WriteString(info.Options[key])
			sep = "&"
		}
	}

	return b.String()
}

// Connect establishes a MySQL connection from a mysql:// URL and applies the
// pool settings.
func (c *Connector) Connect(databaseURL string) (*sql.DB, error) {
	info, err := c.ParseConnectionInfo(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", info.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	db.SetMaxOpenConns(c.poolSettings.MaxOpenConns)
	db.SetMaxIdleConns(c.poolSettings.MaxIdleConns)
	db.SetConnMaxLifetime(c.poolSettings.ConnMaxLifetime)

	return db, nil
}
