package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("CONFIG_DIR", "/tmp/payanam-test")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "localhost:5000", cfg.ServerAddress)
	assert.Equal(t, "INR", cfg.Currency)
	assert.False(t, cfg.EnableTLS)
	assert.False(t, cfg.ReconcileOnSuccess)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/payanam-test/token.json", cfg.TokenPath)
	assert.Equal(t, "/tmp/payanam-test/state.json", cfg.StatePath)
	assert.Equal(t, "/tmp/payanam-test/trips.db", cfg.DataPath)
	assert.Empty(t, cfg.Rates)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("CONFIG_DIR", "/tmp/payanam-test")
	v.Set("SERVER_ADDRESS", "trips.example.com")
	v.Set("ENABLE_TLS", true)
	v.Set("CURRENCY", "usd")
	v.Set("CURRENCY_RATES", "USD=0.02, eur=0.01")
	v.Set("RECONCILE_ON_SUCCESS", true)
	v.Set("REQUEST_TIMEOUT_SECONDS", 3)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "trips.example.com", cfg.ServerAddress)
	assert.True(t, cfg.EnableTLS)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, map[string]float64{"USD": 0.02, "EUR": 0.01}, cfg.Rates)
	assert.True(t, cfg.ReconcileOnSuccess)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("CONFIG_DIR", "/tmp/payanam-test")
	v.Set("REQUEST_TIMEOUT_SECONDS", 0)
	_, err := fromViper(v)
	assert.ErrorContains(t, err, "request_timeout_seconds")

	v = viper.New()
	v.Set("CONFIG_DIR", "/tmp/payanam-test")
	v.Set("CURRENCY_RATES", "USD")
	_, err = fromViper(v)
	assert.ErrorContains(t, err, "CODE=RATE")
}

func TestParseRates(t *testing.T) {
	rates, err := ParseRates("")
	require.NoError(t, err)
	assert.Empty(t, rates)

	_, err = ParseRates("USD=abc")
	assert.Error(t, err)
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := "server_address: https://trips.example.com\nconfig_dir: " + dir + "\ncurrency: eur\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	cfg, err := LoadFrom(file)
	require.NoError(t, err)

	assert.Equal(t, "https://trips.example.com", cfg.ServerAddress)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, filepath.Join(dir, "trips.db"), cfg.DataPath)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
