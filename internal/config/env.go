package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loadDotenv loads the first .env file found next to the binary or one level
// up. Variables already present in the environment win.
func loadDotenv() {
	for _, p := range []string{".env", "../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func parseEnv(c *Config) {
	c.HTTPAddr = getEnvOrDefault("HTTP_ADDR", c.HTTPAddr)
	if port := getEnvOrDefault("PORT", ""); port != "" {
		c.HTTPAddr = ":" + port
	}

	if dsn := getEnvOrDefault("DATABASE_URL", ""); dsn != "" {
		c.DatabaseDSN = dsn
	} else if getEnvOrDefault("DB_HOST", "") != "" {
		c.DatabaseDSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnvOrDefault("DB_HOST", "localhost"),
			getEnvOrDefault("DB_PORT", "5432"),
			getEnvOrDefault("DB_USER", "postgres"),
			getEnvOrDefault("DB_PASSWORD", "password"),
			getEnvOrDefault("DB_NAME", "movies"),
			getEnvOrDefault("DB_SSLMODE", "disable"),
		)
	}

	c.DBMaxOpenConns = getIntEnvOrDefault("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns)
	c.DBMaxIdleConns = getIntEnvOrDefault("DB_MAX_IDLE_CONNS", c.DBMaxIdleConns)
	c.DBConnMaxIdleTime = time.Duration(getIntEnvOrDefault("DB_CONN_MAX_IDLE_MINUTES", int(c.DBConnMaxIdleTime.Minutes()))) * time.Minute
	c.DBConnMaxLifetime = time.Duration(getIntEnvOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", int(c.DBConnMaxLifetime.Minutes()))) * time.Minute

	c.JWTSecret = getEnvOrDefault("JWT_SECRET", c.JWTSecret)
	c.AccessTokenTTL = time.Duration(getIntEnvOrDefault("JWT_ACCESS_TOKEN_MINUTES", int(c.AccessTokenTTL.Minutes()))) * time.Minute

	c.ImportFile = getEnvOrDefault("IMPORT_FILE", c.ImportFile)
	c.MaxUploadBytes = int64(getIntEnvOrDefault("MAX_UPLOAD_BYTES", int(c.MaxUploadBytes)))

	if origins := getEnvOrDefault("CORS_ORIGINS", ""); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	c.MonitoringKey = getEnvOrDefault("MONITORING_API_KEY", c.MonitoringKey)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.ShutdownTimeout = time.Duration(getIntEnvOrDefault("SHUTDOWN_TIMEOUT_SECONDS", int(c.ShutdownTimeout.Seconds()))) * time.Second

	if raw := getEnvOrDefault("RUN_MIGRATIONS", ""); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			c.RunMigrations = v
		}
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return defaultValue
	}

	return value
}

// splitList splits a comma-separated list, dropping blanks and trailing slashes.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
