package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultManifest  = "models.yaml"
	DefaultOutputDir = "appwrap"
	DefaultTimeout   = 10
	DefaultFileName  = "appwrap.yaml"
)

type DBConfig struct {
	Type         string `yaml:"type" json:"type"`
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	Username     string `yaml:"username" json:"username"`
	Password     string `yaml:"password" json:"password"`
	DatabaseName string `yaml:"database_name" json:"database_name"`
	DSN          string `yaml:"dsn" json:"dsn"` // optional explicit DSN
}

type ModelsConfig struct {
	Manifest  string `yaml:"manifest" json:"manifest"`     // relative to the model root
	OutputDir string `yaml:"output_dir" json:"output_dir"` // relative to the model root
	Timeout   int    `yaml:"timeout" json:"timeout"`       // db connect timeout seconds
}

type AppConfig struct {
	Database DBConfig     `yaml:"database" json:"database"`
	Models   ModelsConfig `yaml:"models" json:"models"`
}

// LoadFile loads YAML config from path.
func LoadFile(path string) (AppConfig, error) {
	var cfg AppConfig
	f, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadRoot loads <root>/appwrap.yaml when present and fills in defaults.
// A missing file is not an error.
func LoadRoot(root string) (AppConfig, error) {
	cfg, err := LoadFile(filepath.Join(root, DefaultFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("read %s: %w", DefaultFileName, err)
	}
	return cfg.WithDefaults(), nil
}

// WithDefaults returns cfg with empty model settings replaced by defaults.
func (cfg AppConfig) WithDefaults() AppConfig {
	if cfg.Models.Manifest == "" {
		cfg.Models.Manifest = DefaultManifest
	}
	if cfg.Models.OutputDir == "" {
		cfg.Models.OutputDir = DefaultOutputDir
	}
	if cfg.Models.Timeout <= 0 {
		cfg.Models.Timeout = DefaultTimeout
	}
	return cfg
}

// LoadEnv loads <root>/.env into the process environment without
// overriding variables that are already set. A missing file is fine.
func LoadEnv(root string) error {
	path := filepath.Join(root, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnv applies APPWRAP_* environment overrides to cfg.
func ApplyEnv(cfg AppConfig) AppConfig {
	if v := os.Getenv("APPWRAP_DB_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("APPWRAP_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("APPWRAP_OUTPUT_DIR"); v != "" {
		cfg.Models.OutputDir = v
	}
	return cfg
}

// NormalizeDriver maps common aliases to canonical keys (keeps backwards compat).
func NormalizeDriver(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "postgresql", "pg", "postgres":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3":
		return "sqlite"
	case "mssql", "sqlserver":
		return "sqlserver"
	case "godror", "oracle":
		return "godror"
	default:
		return strings.ToLower(d)
	}
}

// BuildDriverAndDSN produces a driver name and DSN string for supported DB types.
func BuildDriverAndDSN(db DBConfig) (driver string, dsn string, err error) {
	// If explicit DSN provided, user must also set Type to choose driver
	t := NormalizeDriver(db.Type)

	if db.DSN != "" {
		return t, db.DSN, nil
	}

	switch t {
	case "postgres":
		driver = "postgres"
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "mysql":
		driver = "mysql"
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "sqlite":
		driver = "sqlite"
		if db.DatabaseName == "" {
			return "", "", fmt.Errorf("sqlite needs a file path in database_name")
		}
		dsn = fmt.Sprintf("file:%s?mode=ro", db.DatabaseName)
	case "sqlserver":
		driver = "sqlserver"
		dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	case "godror":
		driver = "godror"
		// simple EZCONNECT style; may need adjustments per environment
		dsn = fmt.Sprintf("%s/%s@%s:%d/%s",
			db.Username, db.Password, db.Host, db.Port, db.DatabaseName)
	default:
		err = fmt.Errorf("unsupported database type: %s", db.Type)
	}
	return
}
