package schemalens

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config represents the schemalens configuration file.
type Config struct {
	Databases  map[string]DatabaseConfig `yaml:"databases"`
	Generation GenerationConfig          `yaml:"generation"`
	Server     ServerConfig              `yaml:"server"`
}

// DatabaseConfig represents one named database connection.
type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	Connection string `yaml:"connection"`
	Database   string `yaml:"database"`
}

// GenerationConfig represents code generation settings.
type GenerationConfig struct {
	Output  string `yaml:"output"`
	Package string `yaml:"package"`
	Format  string `yaml:"format"`
}

// ServerConfig represents the HTTP server settings.
type ServerConfig struct {
	Port int  `yaml:"port"`
	Open bool `yaml:"open"`
}

// Output formats accepted by generation.format and the export command.
var OutputFormats = []string{"json", "ddl", "literal", "records"}

// LoadConfig reads the configuration file, loading .env first so ${VAR}
// references in connection strings resolve. A missing file yields the default
// configuration rather than an error.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if !fileExists(configPath) {
		config := defaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode so typos in keys surface instead of silently vanishing.
	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

func defaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	return config
}

func applyDefaults(config *Config) {
	if config.Generation.Output == "" {
		config.Generation.Output = "./schema"
	}
	if config.Generation.Package == "" {
		config.Generation.Package = "dbschema"
	}
	if config.Generation.Format == "" {
		config.Generation.Format = "json"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8327
	}
}

func validateConfig(config *Config) error {
	for name, db := range config.Databases {
		if db.Driver != "" && db.Driver != "mysql" {
			return fmt.Errorf("%w: database %q: %w: %s", ErrConfigValidation, name, ErrUnsupportedDriver, db.Driver)
		}
	}

	if f := config.Generation.Format; f != "" && !contains(OutputFormats, f) {
		return fmt.Errorf("%w: generation.format must be %s, got %q", ErrConfigValidation, enumList(OutputFormats), f)
	}

	if p := config.Server.Port; p < 0 || p > 65535 {
		return fmt.Errorf("%w: server.port out of range: %d", ErrConfigValidation, p)
	}

	return nil
}

// loadEnvFiles loads a .env file from the current directory if present.
func loadEnvFiles() error {
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareVarPattern   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// ExpandEnvVars expands environment variables written as ${VAR} or $VAR.
func ExpandEnvVars(s string) string {
	s = bracedVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
	s = bareVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})

	return s
}

func expandConfigEnvVars(config *Config) {
	for name, db := range config.Databases {
		db.Connection = ExpandEnvVars(db.Connection)
		db.Database = ExpandEnvVars(db.Database)
		config.Databases[name] = db
	}

	config.Generation.Output = ExpandEnvVars(config.Generation.Output)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
