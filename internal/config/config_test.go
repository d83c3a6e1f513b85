package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the config keys for the test and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{KeyAPIBaseURL, KeyLogLevel, KeyAppEnv, KeyHTTPTimeout} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIBaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Zero(t, cfg.HTTP.Timeout)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyAPIBaseURL, "http://localhost:5000")
	t.Setenv(KeyLogLevel, "debug")
	t.Setenv(KeyAppEnv, "development")
	t.Setenv(KeyHTTPTimeout, "5s")

	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyLogLevel, "warn")

	path := filepath.Join(t.TempDir(), ".env")
	content := "API_BASE_URL=http://inventory.local\nLOG_LEVEL=error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://inventory.local", cfg.APIBaseURL)
	// Existing environment wins over the file.
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyAPIBaseURL, "http://from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	require.NoError(t, flags.Parse([]string{"--base-url", "http://from-flag"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag(KeyAPIBaseURL, flags.Lookup("base-url")))

	cfg, err := Load(v, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag", cfg.APIBaseURL)
}
