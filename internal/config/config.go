package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQL  = "sql"
	BackendREST = "rest"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all runtime settings.
type Config struct {
	Backend     string     `yaml:"backend"`
	DBDriver    string     `yaml:"db_driver"`
	DBPath      string     `yaml:"db_path"`
	DBDSN       string     `yaml:"db_dsn"`
	DataDir     string     `yaml:"data_dir"`
	REST        RESTConfig `yaml:"rest"`
	CacheTTLMs  int        `yaml:"cache_ttl_ms"`
	Log         LogConfig  `yaml:"log"`
	HTTP        HTTPConfig `yaml:"http"`
	LogUseCases bool       `yaml:"log_use_cases"`
}

type RESTConfig struct {
	URL              string `yaml:"url"`
	APIKey           string `yaml:"api_key"`
	TimeoutMs        int    `yaml:"timeout_ms"`
	BreakerTimeoutMs int    `yaml:"breaker_timeout_ms"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type HTTPConfig struct {
	Addr            string   `yaml:"addr"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	JWTSecret       string   `yaml:"jwt_secret"`
	TokenTTLMinutes int      `yaml:"token_ttl_minutes"`
}

// DefaultConfig returns a Config for a local SQLite store under dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		Backend:    BackendSQL,
		DBDriver:   DriverSQLite,
		DBPath:     filepath.Join(dataDir, "rosterdesk.db"),
		DataDir:    dataDir,
		CacheTTLMs: 30000,
		REST: RESTConfig{
			TimeoutMs:        10000,
			BreakerTimeoutMs: 5000,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			TokenTTLMinutes: 480,
		},
	}
}

// CacheTTL returns the manager cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMs) * time.Millisecond
}

// SessionPath returns the location of the persisted login.
func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.Backend == BackendREST && c.REST.URL == "" {
		return errors.New("rest backend requires rest.url")
	}
	if c.Backend == BackendSQL && c.DBDriver == DriverPostgres && c.DBDSN == "" {
		return errors.New("postgres driver requires db_dsn")
	}
	return nil
}

// LoadConfig builds the configuration from defaults, the YAML file named by
// ROSTERDESK_CONFIG (else ~/.rosterdesk/config.yaml), a .env file in the
// working directory, and ROSTERDESK_* environment variables, in that order.
func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".rosterdesk")

	path := os.Getenv("ROSTERDESK_CONFIG")
	if path == "" {
		path = filepath.Join(dataDir, "config.yaml")
	}
	return Load(dataDir, path, ".env")
}

// Load is LoadConfig with explicit locations. Missing files are skipped.
func Load(dataDir, yamlPath, envPath string) (Config, error) {
	cfg := DefaultConfig(dataDir)
	def := cfg

	if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", yamlPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading %s: %w", yamlPath, err)
	}

	dotenv, err := godotenv.Read(envPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading %s: %w", envPath, err)
	}
	env := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	applyEnv(&cfg, env)
	normalize(&cfg, def)
	return cfg, nil
}

func applyEnv(cfg *Config, env func(string) string) {
	envString(&cfg.Backend, env("ROSTERDESK_BACKEND"))
	envString(&cfg.DBDriver, env("ROSTERDESK_DB_DRIVER"))
	envString(&cfg.DBDSN, env("ROSTERDESK_DB_DSN"))
	envString(&cfg.REST.URL, env("ROSTERDESK_REST_URL"))
	envString(&cfg.REST.APIKey, env("ROSTERDESK_REST_API_KEY"))
	envInt(&cfg.REST.TimeoutMs, env("ROSTERDESK_REST_TIMEOUT_MS"))
	envInt(&cfg.REST.BreakerTimeoutMs, env("ROSTERDESK_REST_BREAKER_TIMEOUT_MS"))
	envInt(&cfg.CacheTTLMs, env("ROSTERDESK_CACHE_TTL_MS"))
	envString(&cfg.Log.Level, env("ROSTERDESK_LOG_LEVEL"))
	envString(&cfg.Log.Format, env("ROSTERDESK_LOG_FORMAT"))
	envString(&cfg.Log.File, env("ROSTERDESK_LOG_FILE"))
	envString(&cfg.HTTP.Addr, env("ROSTERDESK_HTTP_ADDR"))
	envString(&cfg.HTTP.JWTSecret, env("ROSTERDESK_JWT_SECRET"))
	envInt(&cfg.HTTP.TokenTTLMinutes, env("ROSTERDESK_TOKEN_TTL_MINUTES"))
	if v := env("ROSTERDESK_HTTP_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.HTTP.AllowedOrigins = origins
	}
	if v := env("ROSTERDESK_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	// A data dir override moves the default database with it.
	if v := env("ROSTERDESK_DATA_DIR"); v != "" {
		if cfg.DBPath == filepath.Join(cfg.DataDir, "rosterdesk.db") {
			cfg.DBPath = filepath.Join(v, "rosterdesk.db")
		}
		cfg.DataDir = v
	}
	envString(&cfg.DBPath, env("ROSTERDESK_DB_PATH"))
}

// normalize replaces invalid values with their defaults.
func normalize(cfg *Config, def Config) {
	if cfg.Backend != BackendSQL && cfg.Backend != BackendREST {
		cfg.Backend = def.Backend
	}
	if cfg.DBDriver != DriverSQLite && cfg.DBDriver != DriverPostgres {
		cfg.DBDriver = def.DBDriver
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "rosterdesk.db")
	}
	if cfg.CacheTTLMs <= 0 {
		cfg.CacheTTLMs = def.CacheTTLMs
	}
	if cfg.REST.TimeoutMs <= 0 {
		cfg.REST.TimeoutMs = def.REST.TimeoutMs
	}
	if cfg.REST.BreakerTimeoutMs <= 0 {
		cfg.REST.BreakerTimeoutMs = def.REST.BreakerTimeoutMs
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
		cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	default:
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.HTTP.TokenTTLMinutes <= 0 {
		cfg.HTTP.TokenTTLMinutes = def.HTTP.TokenTTLMinutes
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = def.HTTP.Addr
	}
}

func envString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func envInt(dst *int, v string) {
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
