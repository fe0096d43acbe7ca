package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUBSCRIPTION_SOURCE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	assert.Equal(t, "client-portal", cfg.AppName)
	assert.Equal(t, SourceDemo, cfg.SubscriptionSource)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.UsesDatabase())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUBSCRIPTION_SOURCE", " DB ")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DATABASE_MAX_OPEN_CONN", "7")
	t.Setenv("SEED_DEMO_SUBSCRIPTIONS", "yes")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, 7, cfg.DBMaxOpenConn)
	assert.True(t, cfg.SeedDemoSubscriptions)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNormalizeSource(t *testing.T) {
	assert.Equal(t, SourceFixture, normalizeSource("file"))
	assert.Equal(t, SourceFixture, normalizeSource("Fixture"))
	assert.Equal(t, SourceDatabase, normalizeSource("database"))
	assert.Equal(t, SourceDemo, normalizeSource("anything"))
}
