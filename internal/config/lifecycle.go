package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	BatchModeSkip     = "skip"
	BatchModeFailFast = "fail_fast"
)

// LifecycleSettings tunes classification and querying. It is read from
// portal.yml under the "lifecycle" key.
type LifecycleSettings struct {
	RenewalWindowDays int    `mapstructure:"renewalWindowDays"`
	Timezone          string `mapstructure:"timezone"`
	CollationLanguage string `mapstructure:"collationLanguage"`
	DefaultSortKey    string `mapstructure:"defaultSortKey"`
	BatchMode         string `mapstructure:"batchMode"`
}

func DefaultLifecycleSettings() LifecycleSettings {
	return LifecycleSettings{
		RenewalWindowDays: 30,
		Timezone:          "UTC",
		CollationLanguage: "en",
		DefaultSortKey:    string(domain.SortByName),
		BatchMode:         BatchModeSkip,
	}
}

// Lifecycle is a validated LifecycleSettings with its zone and language
// resolved.
type Lifecycle struct {
	LifecycleSettings

	Location *time.Location
	Language language.Tag
	SortKey  domain.SortKey
}

// FailFast reports whether one malformed record aborts a batch.
func (l Lifecycle) FailFast() bool {
	return l.BatchMode == BatchModeFailFast
}

var ErrInvalidLifecycleConfig = errors.New("invalid_lifecycle_config")

// Resolve validates s.
func (s LifecycleSettings) Resolve() (Lifecycle, error) {
	if s.RenewalWindowDays < 0 {
		return Lifecycle{}, fmt.Errorf("%w: lifecycle.renewalWindowDays must not be negative", ErrInvalidLifecycleConfig)
	}
	loc, err := time.LoadLocation(strings.TrimSpace(s.Timezone))
	if err != nil {
		return Lifecycle{}, fmt.Errorf("%w: lifecycle.timezone: %v", ErrInvalidLifecycleConfig, err)
	}
	tag, err := language.Parse(strings.TrimSpace(s.CollationLanguage))
	if err != nil {
		return Lifecycle{}, fmt.Errorf("%w: lifecycle.collationLanguage: %v", ErrInvalidLifecycleConfig, err)
	}
	key, err := domain.ParseSortKey(s.DefaultSortKey)
	if err != nil {
		return Lifecycle{}, fmt.Errorf("%w: lifecycle.defaultSortKey: %v", ErrInvalidLifecycleConfig, err)
	}
	switch s.BatchMode {
	case BatchModeSkip, BatchModeFailFast:
	default:
		return Lifecycle{}, fmt.Errorf("%w: lifecycle.batchMode %q", ErrInvalidLifecycleConfig, s.BatchMode)
	}

	return Lifecycle{
		LifecycleSettings: s,
		Location:          loc,
		Language:          tag,
		SortKey:           key,
	}, nil
}

type LifecycleConfigHolder struct {
	current atomic.Value // holds Lifecycle
}

// NewStaticLifecycleConfigHolder wraps a fixed configuration.
func NewStaticLifecycleConfigHolder(l Lifecycle) *LifecycleConfigHolder {
	holder := &LifecycleConfigHolder{}
	holder.current.Store(l)
	return holder
}

// NewLifecycleConfigHolder reads portal.yml and keeps watching it. A missing
// file yields the defaults.
func NewLifecycleConfigHolder(cfg Config, log *zap.Logger) (*LifecycleConfigHolder, error) {
	log = log.Named("config.lifecycle")
	v := newLifecycleViper(cfg.PortalConfigFile)

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		found = false
	}

	current, err := loadLifecycle(v)
	if err != nil {
		return nil, err
	}
	holder := NewStaticLifecycleConfigHolder(current)

	if found {
		v.OnConfigChange(func(e fsnotify.Event) {
			holder.reload(v, e.Name, log)
		})
		v.WatchConfig()
		log.Info("lifecycle config loaded", zap.String("file", v.ConfigFileUsed()))
	}

	return holder, nil
}

func newLifecycleViper(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("portal")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/client-portal")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultLifecycleSettings()
	v.SetDefault("lifecycle.renewalWindowDays", defaults.RenewalWindowDays)
	v.SetDefault("lifecycle.timezone", defaults.Timezone)
	v.SetDefault("lifecycle.collationLanguage", defaults.CollationLanguage)
	v.SetDefault("lifecycle.defaultSortKey", defaults.DefaultSortKey)
	v.SetDefault("lifecycle.batchMode", defaults.BatchMode)
	return v
}

// Unmarshal goes through AllSettings, so defaults fill keys a partial file
// leaves out.
func loadLifecycle(v *viper.Viper) (Lifecycle, error) {
	var file struct {
		Lifecycle LifecycleSettings `mapstructure:"lifecycle"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return Lifecycle{}, err
	}
	return file.Lifecycle.Resolve()
}

func (h *LifecycleConfigHolder) reload(v *viper.Viper, name string, log *zap.Logger) {
	updated, err := loadLifecycle(v)
	if err != nil {
		log.Warn("invalid lifecycle config ignored", zap.String("file", name), zap.Error(err))
		return
	}
	h.current.Store(updated)
	log.Info("lifecycle config reloaded",
		zap.String("file", name),
		zap.Int("renewal_window_days", updated.RenewalWindowDays),
		zap.String("timezone", updated.Timezone),
	)
}

func (h *LifecycleConfigHolder) Get() Lifecycle {
	return h.current.Load().(Lifecycle)
}
