package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreSheet    = "sheet"    // xlsx workbook behind a blob (file or HTTP)
	StorePostgres = "postgres" // PostgreSQL tables
)

// Config groups the application configuration (read via Viper from env vars
// and optionally a .env file).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Store StoreConfig
	DB    DBConfig
}

// AppConfig is the general application configuration.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Timezone string // IANA name the kayit_zamani stamp is taken in
}

// Location resolves the configured time zone.
func (c AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// HTTPConfig is the HTTP server configuration.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selects and configures the table-store backend. A store that
// cannot be configured is fatal at startup: the service refuses to serve
// any action against an unknown store.
type StoreConfig struct {
	Driver string // sheet | postgres

	// sheet driver
	SheetPath   string        // local workbook path; used when RemoteURL is empty
	RemoteURL   string        // GET/PUT endpoint holding the workbook
	RemoteToken string        // optional bearer token for RemoteURL
	Timeout     time.Duration // per-request timeout for the remote blob
}

// Validate checks that the selected driver has what it needs.
func (c StoreConfig) Validate() error {
	switch c.Driver {
	case StoreSheet:
		if c.SheetPath == "" && c.RemoteURL == "" {
			return fmt.Errorf("store driver %q needs SHEET_PATH or SHEET_REMOTE_URL", c.Driver)
		}
	case StorePostgres:
		// DSN completeness is verified by the startup ping.
	default:
		return fmt.Errorf("unknown store driver %q", c.Driver)
	}
	return nil
}

// DBConfig is the PostgreSQL configuration. If DatabaseURL is set it is used
// as the full connection string.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString returns the DSN to use: DatabaseURL when set, otherwise
// one built from the individual fields.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds the PostgreSQL connection string, URL-encoding credentials.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load reads the configuration from environment variables (and optionally a
// .env file in the working directory). Env vars take priority.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // a missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "depo"),
			Timezone: getString(v, "APP_TIMEZONE", "Europe/Istanbul"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver:      getString(v, "STORE_DRIVER", StoreSheet),
			SheetPath:   getString(v, "SHEET_PATH", "data/depo.xlsx"),
			RemoteURL:   getString(v, "SHEET_REMOTE_URL", ""),
			RemoteToken: getString(v, "SHEET_REMOTE_TOKEN", ""),
			Timeout:     time.Duration(getInt(v, "SHEET_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "depo"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
