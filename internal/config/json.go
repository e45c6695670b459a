package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig is the on-disk shape of the optional config file. Durations are
// Go duration strings ("15m", "30s"). Zero values leave the current setting
// untouched.
type jsonConfig struct {
	HTTPAddr          string   `json:"http_addr"`
	DatabaseDSN       string   `json:"database_dsn"`
	DBMaxOpenConns    int      `json:"db_max_open_conns"`
	DBMaxIdleConns    int      `json:"db_max_idle_conns"`
	DBConnMaxIdleTime string   `json:"db_conn_max_idle_time"`
	DBConnMaxLifetime string   `json:"db_conn_max_lifetime"`
	JWTSecret         string   `json:"jwt_secret"`
	AccessTokenTTL    string   `json:"access_token_ttl"`
	ImportFile        string   `json:"import_file"`
	MaxUploadBytes    int64    `json:"max_upload_bytes"`
	CORSOrigins       []string `json:"cors_origins"`
	MonitoringKey     string   `json:"monitoring_key"`
	LogLevel          string   `json:"log_level"`
	ShutdownTimeout   string   `json:"shutdown_timeout"`
	RunMigrations     *bool    `json:"run_migrations"`
}

func parseJSON(c *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	jc := &jsonConfig{}
	if err := json.Unmarshal(file, jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.HTTPAddr, jc.HTTPAddr)
	setString(&c.DatabaseDSN, jc.DatabaseDSN)
	setString(&c.JWTSecret, jc.JWTSecret)
	setString(&c.ImportFile, jc.ImportFile)
	setString(&c.MonitoringKey, jc.MonitoringKey)
	setString(&c.LogLevel, jc.LogLevel)

	if jc.DBMaxOpenConns > 0 {
		c.DBMaxOpenConns = jc.DBMaxOpenConns
	}
	if jc.DBMaxIdleConns > 0 {
		c.DBMaxIdleConns = jc.DBMaxIdleConns
	}
	if jc.MaxUploadBytes > 0 {
		c.MaxUploadBytes = jc.MaxUploadBytes
	}
	if len(jc.CORSOrigins) > 0 {
		c.CORSOrigins = jc.CORSOrigins
	}
	if jc.RunMigrations != nil {
		c.RunMigrations = *jc.RunMigrations
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"db_conn_max_idle_time", jc.DBConnMaxIdleTime, &c.DBConnMaxIdleTime},
		{"db_conn_max_lifetime", jc.DBConnMaxLifetime, &c.DBConnMaxLifetime},
		{"access_token_ttl", jc.AccessTokenTTL, &c.AccessTokenTTL},
		{"shutdown_timeout", jc.ShutdownTimeout, &c.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("config file %s: %s: %w", path, d.name, err)
		}
		*d.target = v
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
