package services

import (
	"fmt"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAuthTimeout       = "auth.timeout"
	keyRetryUnauthorized = "api.retry_unauthorized"
	keyRateLimit         = "api.rate_limit"
	keyBurst             = "api.burst"
	keyPauseServices     = "pause.services"
	keyPauseProcesses    = "pause.processes"
	keyPsSuspendPath     = "pause.pssuspend_path"
	keyLogFormat         = "log.format"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Auth: domain.AuthSettings{
			TimeoutSeconds: s.getPositiveInt(keyAuthTimeout, defaults.Auth.TimeoutSeconds),
		},
		API: domain.APISettings{
			RetryUnauthorized: s.getBool(keyRetryUnauthorized, defaults.API.RetryUnauthorized),
			RateLimit:         s.getRate(defaults.API.RateLimit),
			Burst:             s.getPositiveInt(keyBurst, defaults.API.Burst),
		},
		Pause: domain.PauseSettings{
			Services:      s.configStore.GetStringSlice(keyPauseServices),
			Processes:     s.configStore.GetStringSlice(keyPauseProcesses),
			PsSuspendPath: s.getString(keyPsSuspendPath, defaults.Pause.PsSuspendPath),
		},
		LogFormat: s.getLogFormat(defaults.LogFormat),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if !settings.LogFormat.IsValid() {
		return fmt.Errorf("%w: log format %q", domain.ErrInvalidInput, settings.LogFormat)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAuthTimeout, settings.Auth.TimeoutSeconds},
		{keyRetryUnauthorized, settings.API.RetryUnauthorized},
		{keyRateLimit, settings.API.RateLimit},
		{keyBurst, settings.API.Burst},
		{keyPauseServices, nonNil(settings.Pause.Services)},
		{keyPauseProcesses, nonNil(settings.Pause.Processes)},
		{keyPsSuspendPath, settings.Pause.PsSuspendPath},
		{keyLogFormat, settings.LogFormat.String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); exists {
		return s.configStore.GetBool(key)
	}
	return defaultVal
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

// getRate allows an explicit zero, which disables rate limiting.
func (s *SettingsService) getRate(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(keyRateLimit); !exists {
		return defaultVal
	}
	if val := s.configStore.GetFloat(keyRateLimit); val >= 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getLogFormat(defaultVal domain.LogFormat) domain.LogFormat {
	f := domain.LogFormat(s.configStore.GetString(keyLogFormat))
	if f.IsValid() {
		return f
	}
	return defaultVal
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
