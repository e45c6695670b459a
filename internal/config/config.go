// Package config builds the runtime configuration of the movie catalog:
// built-in defaults, then .env / environment variables, then an optional JSON
// file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

const minJWTSecretBytes = 32

// Config holds runtime settings shared by the API server and the admin CLI.
//
// Fields:
//   - HTTPAddr: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL connection string (lib/pq format or URL).
//   - DBMaxOpenConns / DBMaxIdleConns / DBConnMaxIdleTime / DBConnMaxLifetime: pool limits.
//   - JWTSecret: HMAC secret for HS256 bearer tokens, at least 32 bytes.
//   - AccessTokenTTL: lifetime of issued bearer tokens.
//   - ImportFile: CSV read by the bulk import when no file is uploaded.
//   - MaxUploadBytes: largest CSV accepted by POST /api/upload.
//   - CORSOrigins: origins allowed by the CORS wrapper.
//   - MonitoringKey: value expected in X-Monitoring-Key; empty disables the endpoint.
type Config struct {
	HTTPAddr          string
	DatabaseDSN       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime time.Duration
	DBConnMaxLifetime time.Duration
	JWTSecret         string
	AccessTokenTTL    time.Duration
	ImportFile        string
	MaxUploadBytes    int64
	CORSOrigins       []string
	MonitoringKey     string
	LogLevel          string
	ShutdownTimeout   time.Duration
	RunMigrations     bool
}

// LoadDefaults populates Config with development defaults.
// JWTSecret has no default; Validate rejects an empty one.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.DatabaseDSN = "host=localhost port=5432 user=postgres password=password dbname=movies sslmode=disable"
	c.DBMaxOpenConns = 25
	c.DBMaxIdleConns = 25
	c.DBConnMaxIdleTime = 5 * time.Minute
	c.DBConnMaxLifetime = 30 * time.Minute
	c.AccessTokenTTL = 15 * time.Minute
	c.ImportFile = "movies.csv"
	c.MaxUploadBytes = 10 * 1024 * 1024
	c.CORSOrigins = []string{"http://localhost:3000"}
	c.LogLevel = "info"
	c.ShutdownTimeout = 10 * time.Second
	c.RunMigrations = true
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT secret is required"))
	} else if len(c.JWTSecret) < minJWTSecretBytes {
		errs = append(errs, fmt.Errorf("JWT secret must be at least %d characters", minJWTSecretBytes))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("access token TTL must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("max upload size must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, the environment (including an
// optional .env file), an optional JSON file and the given command-line
// arguments. Positional arguments left after the flags are returned as rest.
func LoadConfig(args []string) (cfg *Config, rest []string, err error) {
	cfg = &Config{}
	cfg.LoadDefaults()

	loadDotenv()
	parseEnv(cfg)

	fv, fs, err := parseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	if fv.configFile != "" {
		if err := parseJSON(cfg, fv.configFile); err != nil {
			return nil, nil, err
		}
	}

	fv.apply(cfg, fs)

	return cfg, fs.Args(), nil
}
