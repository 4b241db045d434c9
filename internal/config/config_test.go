package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	valid := &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Data:   DataConfig{BasePath: "/tmp/ismism", Backend: BackendBadger},
		Limits: LimitsConfig{WriteRPS: 5, WriteBurst: 10},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty environment", func(c *Config) { c.App.Environment = "" }},
		{"unknown environment", func(c *Config) { c.App.Environment = "prod" }},
		{"unknown log level", func(c *Config) { c.Logger.Level = "trace" }},
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"unknown backend", func(c *Config) { c.Data.Backend = "redis" }},
		{"zero write rps", func(c *Config) { c.Limits.WriteRPS = 0 }},
		{"zero write burst", func(c *Config) { c.Limits.WriteBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsSQLiteBackend(t *testing.T) {
	cfg := &Config{
		App:    AppConfig{Environment: "production"},
		Logger: LoggerConfig{Level: "warn"},
		Data:   DataConfig{BasePath: "/srv/ismism", Backend: BackendSQLite},
		Limits: LimitsConfig{WriteRPS: 1, WriteBurst: 1},
	}
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	// Absolute paths come back cleaned.
	p, err := expandPath("/var/lib//ismism", "")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/ismism", p)

	// Empty uses the default.
	p, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", p)

	// Tilde expands to the home directory.
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	p, err = expandPath("~/ismism", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "ismism"), p)
}

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("ISMISM_TEST_KEY", "from-env")

	// Flag wins over env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "ISMISM_TEST_KEY", "fallback"))
	// Env wins over default.
	assert.Equal(t, "from-env", getConfigValue("", "ISMISM_TEST_KEY", "fallback"))
	// Default when nothing else is set.
	assert.Equal(t, "fallback", getConfigValue("", "ISMISM_TEST_MISSING", "fallback"))
}

func TestGetBoolConfigValue(t *testing.T) {
	assert.True(t, getBoolConfigValue("true", "ISMISM_TEST_BOOL", false))
	assert.True(t, getBoolConfigValue("YES", "ISMISM_TEST_BOOL", false))
	assert.True(t, getBoolConfigValue("1", "ISMISM_TEST_BOOL", false))
	assert.False(t, getBoolConfigValue("no", "ISMISM_TEST_BOOL", true))
	assert.True(t, getBoolConfigValue("", "ISMISM_TEST_BOOL_MISSING", true))
}

func TestGetFloatConfigValue(t *testing.T) {
	assert.Equal(t, 2.5, getFloatConfigValue("2.5", "ISMISM_TEST_FLOAT", 1))
	assert.Equal(t, 1.0, getFloatConfigValue("not-a-number", "ISMISM_TEST_FLOAT", 1))
	assert.Equal(t, 1.0, getFloatConfigValue("", "ISMISM_TEST_FLOAT_MISSING", 1))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nISMISM_ENVFILE_KEY=hello\nQUOTED=\"quoted value\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("ISMISM_ENVFILE_KEY", "")
	os.Unsetenv("ISMISM_ENVFILE_KEY")
	t.Setenv("QUOTED", "")
	os.Unsetenv("QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("ISMISM_ENVFILE_KEY"))
	assert.Equal(t, "quoted value", os.Getenv("QUOTED"))
}

func TestLoadEnvFileMalformed(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("NOT A PAIR\n"), 0o600))

	assert.Error(t, loadEnvFile(envPath))
}
