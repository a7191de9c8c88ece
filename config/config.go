package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	REQUEST_TIMEOUT=10s
//	PROVIDER_BASE_URL=https://query1.finance.yahoo.com
//	PROVIDER_RANGE=6mo
//	SESSION_STORE=postgres
//	POSTGRES_HOST=localhost
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Provider ProviderConfig // Upstream market data settings
	Session  SessionConfig  // "Last symbol" session store
	Postgres PostgresConfig // PostgreSQL connection settings (session store)
	Chart    ChartConfig    // SVG output size
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        // TCP port the HTTP server listens on (e.g., "8080")
	RequestTimeout time.Duration // Per-request deadline applied by the router
	DefaultSymbol  string        // Symbol offered to sessions that have none yet
}

// ProviderConfig defines how quotes are fetched.
//
// Fields:
//   - Kind: "yahoo" (HTTP chart API) or "csv" (files under CSVDir).
//   - CSVDir: directory of <SYMBOL>.csv files for the csv provider.
//   - BaseURL: chart API host.
//   - Interval: bar interval ("1d").
//   - Range: lookback window ("6mo").
//   - Timeout: HTTP client timeout.
//   - Proxy: optional HTTP proxy URL.
type ProviderConfig struct {
	Kind     string
	CSVDir   string
	BaseURL  string
	Interval string
	Range    string
	Timeout  time.Duration
	Proxy    string
}

// SessionConfig selects and tunes the session store.
type SessionConfig struct {
	Store      string        // "memory" or "postgres"
	TTL        time.Duration // sessions idle longer than this are pruned
	PruneCron  string        // cron spec (with seconds) of the prune job
	CookieName string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// ChartConfig sizes rendered charts in pixels.
type ChartConfig struct {
	Width  int
	Height int
}

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"

	ProviderYahoo = "yahoo"
	ProviderCSV   = "csv"
)

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("DEFAULT_SYMBOL", "")

	viper.SetDefault("PROVIDER", ProviderYahoo)
	viper.SetDefault("PROVIDER_CSV_DIR", "./data")
	viper.SetDefault("PROVIDER_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("PROVIDER_INTERVAL", "1d")
	viper.SetDefault("PROVIDER_RANGE", "6mo")
	viper.SetDefault("PROVIDER_TIMEOUT", "30s")
	viper.SetDefault("PROVIDER_PROXY", "")

	viper.SetDefault("SESSION_STORE", SessionStoreMemory)
	viper.SetDefault("SESSION_TTL", "24h")
	viper.SetDefault("SESSION_PRUNE_CRON", "0 */15 * * * *")
	viper.SetDefault("SESSION_COOKIE", "stockr_session")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "stockr")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("CHART_WIDTH", 1000)
	viper.SetDefault("CHART_HEIGHT", 600)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			DefaultSymbol:  strings.ToUpper(strings.TrimSpace(viper.GetString("DEFAULT_SYMBOL"))),
		},
		Provider: ProviderConfig{
			Kind:     strings.ToLower(viper.GetString("PROVIDER")),
			CSVDir:   viper.GetString("PROVIDER_CSV_DIR"),
			BaseURL:  viper.GetString("PROVIDER_BASE_URL"),
			Interval: viper.GetString("PROVIDER_INTERVAL"),
			Range:    viper.GetString("PROVIDER_RANGE"),
			Timeout:  viper.GetDuration("PROVIDER_TIMEOUT"),
			Proxy:    viper.GetString("PROVIDER_PROXY"),
		},
		Session: SessionConfig{
			Store:      strings.ToLower(viper.GetString("SESSION_STORE")),
			TTL:        viper.GetDuration("SESSION_TTL"),
			PruneCron:  viper.GetString("SESSION_PRUNE_CRON"),
			CookieName: viper.GetString("SESSION_COOKIE"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Chart: ChartConfig{
			Width:  viper.GetInt("CHART_WIDTH"),
			Height: viper.GetInt("CHART_HEIGHT"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig terminates the application when required variables are
// missing. Postgres settings are only required for the postgres session store.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("missing or invalid configuration: %v\n", missing)
	}
}

func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Server.RequestTimeout <= 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}
	switch cfg.Provider.Kind {
	case "", ProviderYahoo:
		if cfg.Provider.BaseURL == "" {
			missing = append(missing, "PROVIDER_BASE_URL")
		}
		if cfg.Provider.Proxy != "" && !validProxyURL(cfg.Provider.Proxy) {
			missing = append(missing, "PROVIDER_PROXY")
		}
	case ProviderCSV:
		if cfg.Provider.CSVDir == "" {
			missing = append(missing, "PROVIDER_CSV_DIR")
		}
	default:
		missing = append(missing, "PROVIDER")
	}
	if cfg.Provider.Interval == "" {
		missing = append(missing, "PROVIDER_INTERVAL")
	}
	if cfg.Provider.Range == "" {
		missing = append(missing, "PROVIDER_RANGE")
	}
	if cfg.Provider.Timeout <= 0 {
		missing = append(missing, "PROVIDER_TIMEOUT")
	}
	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		missing = append(missing, "CHART_WIDTH/CHART_HEIGHT")
	}

	switch cfg.Session.Store {
	case SessionStoreMemory:
	case SessionStorePostgres:
		if cfg.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	default:
		missing = append(missing, "SESSION_STORE")
	}
	if cfg.Session.TTL <= 0 {
		missing = append(missing, "SESSION_TTL")
	}
	if cfg.Session.CookieName == "" {
		missing = append(missing, "SESSION_COOKIE")
	}

	return missing
}

// validProxyURL accepts absolute http, https or socks5 URLs with a host.
func validProxyURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", "socks5":
		return true
	}
	return false
}
