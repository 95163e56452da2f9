package main

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	schemalens "github.com/schemalens/schemalens"
	"github.com/schemalens/schemalens/inspect"
)

// Error definitions
var (
	ErrNoDatabasesConfigured = errors.New("no databases configured")
	ErrEnvironmentNotFound   = errors.New("environment not found")
	ErrMissingDBOrEnv        = errors.New("either database URL or environment must be specified")
	ErrEmptyConnectionString = errors.New("database connection string is empty")
)

// resolveConnection determines the database URL to use: the command-line URL
// wins over the named environment from the configuration file.
func resolveConnection(config *schemalens.Config, dbURL, env string) (string, error) {
	switch {
	case dbURL != "":
		return dbURL, nil
	case env != "":
		if config.Databases == nil {
			return "", ErrNoDatabasesConfigured
		}

		envConfig, exists := config.Databases[env]
		if !exists {
			return "", fmt.Errorf("%w: %q", ErrEnvironmentNotFound, env)
		}

		connection := schemalens.ExpandEnvVars(envConfig.Connection)
		if connection == "" {
			return "", ErrEmptyConnectionString
		}

		return connection, nil
	default:
		return "", ErrMissingDBOrEnv
	}
}

// connect opens and pings a connection for the resolved URL.
func connect(databaseURL string) (*inspect.Inspector, func() error, error) {
	connector := inspect.NewConnector()

	db, err := connector.Connect(databaseURL)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("%w: %w", inspect.ErrConnectionFailed, err)
	}

	return inspect.NewInspector(db), db.Close, nil
}

// openBrowser starts the platform browser on the given URL. Failure to open
// is not fatal; the URL is always printed anyway.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
