package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "PORT", "DATABASE_URL", "DB_HOST", "JWT_SECRET", "JWT_ACCESS_TOKEN_MINUTES",
		"IMPORT_FILE", "MAX_UPLOAD_BYTES", "CORS_ORIGINS", "MONITORING_API_KEY", "LOG_LEVEL",
		"RUN_MIGRATIONS", "DB_MAX_OPEN_CONNS",
	} {
		t.Setenv(k, "")
	}
}

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, rest, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, rest)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "movies.csv", cfg.ImportFile)
	assert.True(t, cfg.RunMigrations)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_ACCESS_TOKEN_MINUTES", "60")
	t.Setenv("CORS_ORIGINS", "https://a.example/, https://b.example")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, _, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Contains(t, cfg.DatabaseDSN, "host=db.internal")
	assert.Equal(t, testSecret, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.RunMigrations)
}

func TestLoadConfig_JSONOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMPORT_FILE", "env.csv")

	path := writeJSON(t, `{
		"import_file": "json.csv",
		"access_token_ttl": "30m",
		"max_upload_bytes": 2048,
		"run_migrations": false
	}`)

	cfg, _, err := LoadConfig([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "json.csv", cfg.ImportFile)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, int64(2048), cfg.MaxUploadBytes)
	assert.False(t, cfg.RunMigrations)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	clearEnv(t)

	path := writeJSON(t, `{"http_addr": ":7000", "jwt_secret": "from-json"}`)

	cfg, rest, err := LoadConfig([]string{"-config", path, "-a", ":7100", "-t", "5", "db_seed", "extra"})
	require.NoError(t, err)

	assert.Equal(t, ":7100", cfg.HTTPAddr)
	assert.Equal(t, "from-json", cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"db_seed", "extra"}, rest)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	clearEnv(t)

	path := writeJSON(t, `{"access_token_ttl": "soon"}`)

	_, _, err := LoadConfig([]string{"-c", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token_ttl")
}

func TestLoadConfig_UnknownFlag(t *testing.T) {
	clearEnv(t)

	_, _, err := LoadConfig([]string{"-nope"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is required")

	cfg.JWTSecret = "short"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32")

	cfg.JWTSecret = testSecret
	assert.NoError(t, cfg.Validate())
}
