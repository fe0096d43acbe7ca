package observability

import (
	"testing"

	"github.com/revolt-software-bot/client-service-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{
		AppVersion:           " 1.2.3 ",
		Environment:          "production",
		LogLevel:             "INFO",
		OtelExporterProtocol: "HTTP",
	})

	assert.Equal(t, "client-portal", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.False(t, cfg.Debug())

	cfg.Environment = "local"
	assert.True(t, cfg.Debug())

	cfg.Environment = "production"
	cfg.LogLevel = "debug"
	assert.True(t, cfg.Debug())
}
