package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/language"
)

func writePortalConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "portal.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultLifecycleSettingsResolve(t *testing.T) {
	l, err := DefaultLifecycleSettings().Resolve()
	require.NoError(t, err)
	assert.Equal(t, 30, l.RenewalWindowDays)
	assert.Equal(t, "UTC", l.Location.String())
	assert.Equal(t, language.English, l.Language)
	assert.Equal(t, domain.SortByName, l.SortKey)
	assert.False(t, l.FailFast())
}

func TestLifecycleSettingsResolve_Invalid(t *testing.T) {
	cases := map[string]func(*LifecycleSettings){
		"negative window": func(s *LifecycleSettings) { s.RenewalWindowDays = -1 },
		"unknown zone":    func(s *LifecycleSettings) { s.Timezone = "Mars/Olympus" },
		"bad language":    func(s *LifecycleSettings) { s.CollationLanguage = "not a tag!" },
		"bad sort key":    func(s *LifecycleSettings) { s.DefaultSortKey = "popularity" },
		"bad batch mode":  func(s *LifecycleSettings) { s.BatchMode = "retry" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := DefaultLifecycleSettings()
			mutate(&s)
			_, err := s.Resolve()
			assert.ErrorIs(t, err, ErrInvalidLifecycleConfig)
		})
	}
}

func TestNewLifecycleConfigHolder_FromFile(t *testing.T) {
	path := writePortalConfig(t, t.TempDir(), `
lifecycle:
  renewalWindowDays: 14
  timezone: UTC
  defaultSortKey: price
  batchMode: fail_fast
`)

	holder, err := NewLifecycleConfigHolder(Config{PortalConfigFile: path}, zap.NewNop())
	require.NoError(t, err)

	got := holder.Get()
	assert.Equal(t, 14, got.RenewalWindowDays)
	assert.Equal(t, domain.SortByPrice, got.SortKey)
	assert.True(t, got.FailFast())
	// Missing keys keep their defaults.
	assert.Equal(t, "en", got.CollationLanguage)
}

func TestNewLifecycleConfigHolder_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	holder, err := NewLifecycleConfigHolder(Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, DefaultLifecycleSettings(), holder.Get().LifecycleSettings)
}

func TestNewLifecycleConfigHolder_InvalidFile(t *testing.T) {
	path := writePortalConfig(t, t.TempDir(), "lifecycle:\n  renewalWindowDays: -3\n")

	_, err := NewLifecycleConfigHolder(Config{PortalConfigFile: path}, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidLifecycleConfig)
}

func TestLifecycleConfigHolder_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writePortalConfig(t, dir, "lifecycle:\n  renewalWindowDays: 10\n")

	v := newLifecycleViper(path)
	require.NoError(t, v.ReadInConfig())
	initial, err := loadLifecycle(v)
	require.NoError(t, err)
	holder := NewStaticLifecycleConfigHolder(initial)

	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	writePortalConfig(t, dir, "lifecycle:\n  renewalWindowDays: 45\n")
	require.NoError(t, v.ReadInConfig())
	holder.reload(v, path, log)
	assert.Equal(t, 45, holder.Get().RenewalWindowDays)

	writePortalConfig(t, dir, "lifecycle:\n  timezone: Nowhere/Else\n")
	require.NoError(t, v.ReadInConfig())
	holder.reload(v, path, log)
	assert.Equal(t, 45, holder.Get().RenewalWindowDays)

	assert.Equal(t, 1, logs.FilterMessage("lifecycle config reloaded").Len())
	assert.Equal(t, 1, logs.FilterMessage("invalid lifecycle config ignored").Len())
}
