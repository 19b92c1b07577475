package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/streamctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/streamctl/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	require.NotNil(t, settings)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Auth, settings.Auth)
	assert.Equal(t, defaults.API, settings.API)
	assert.Equal(t, defaults.Pause.PsSuspendPath, settings.Pause.PsSuspendPath)
	assert.Equal(t, domain.LogFormatAuto, settings.LogFormat)
	assert.Empty(t, settings.Pause.Services)
	assert.Empty(t, settings.Pause.Processes)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("auth.timeout", int64(30))
	_ = store.Set("api.retry_unauthorized", true)
	_ = store.Set("api.rate_limit", 2.5)
	_ = store.Set("api.burst", int64(4))
	_ = store.Set("pause.services", []any{"wuauserv"})
	_ = store.Set("pause.processes", []any{"OneDrive.exe", "Dropbox.exe"})
	_ = store.Set("pause.pssuspend_path", `C:\tools\pssuspend64.exe`)
	_ = store.Set("log.format", "html")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, 30, settings.Auth.TimeoutSeconds)
	assert.True(t, settings.API.RetryUnauthorized)
	assert.InDelta(t, 2.5, settings.API.RateLimit, 0.0001)
	assert.Equal(t, 4, settings.API.Burst)
	assert.Equal(t, []string{"wuauserv"}, settings.Pause.Services)
	assert.Equal(t, []string{"OneDrive.exe", "Dropbox.exe"}, settings.Pause.Processes)
	assert.Equal(t, `C:\tools\pssuspend64.exe`, settings.Pause.PsSuspendPath)
	assert.Equal(t, domain.LogFormatHTML, settings.LogFormat)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("auth.timeout", -1)
	_ = store.Set("api.rate_limit", -3.0)
	_ = store.Set("api.burst", "lots")
	_ = store.Set("log.format", "xml")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Auth.TimeoutSeconds, settings.Auth.TimeoutSeconds)
	assert.InDelta(t, defaults.API.RateLimit, settings.API.RateLimit, 0.0001)
	assert.Equal(t, defaults.API.Burst, settings.API.Burst)
	assert.Equal(t, defaults.LogFormat, settings.LogFormat)
}

func TestSettingsService_Get_ZeroRateDisablesLimit(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.rate_limit", int64(0))

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Zero(t, settings.API.RateLimit)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Auth.TimeoutSeconds = 120
	settings.API.RetryUnauthorized = true
	settings.Pause.Processes = []string{"OneDrive.exe"}
	settings.LogFormat = domain.LogFormatJSON

	require.NoError(t, service.Save(&settings))

	retrieved, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 120, retrieved.Auth.TimeoutSeconds)
	assert.True(t, retrieved.API.RetryUnauthorized)
	assert.Equal(t, []string{"OneDrive.exe"}, retrieved.Pause.Processes)
	assert.Equal(t, []string{}, store.GetStringSlice("pause.services"))
	assert.Equal(t, domain.LogFormatJSON, retrieved.LogFormat)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)

	settings := domain.DefaultAppSettings()
	settings.LogFormat = "xml"
	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

type failingConfigStore struct {
	*memory.ConfigStore
}

func (f failingConfigStore) Set(string, any) error {
	return errors.New("disk full")
}

func TestSettingsService_Save_StoreError(t *testing.T) {
	service := NewSettingsService(failingConfigStore{memory.NewConfigStore()})

	settings := domain.DefaultAppSettings()
	err := service.Save(&settings)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save auth.timeout")
}
