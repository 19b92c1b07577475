package driving

import "github.com/custodia-labs/streamctl/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns current settings, falling back to defaults per field.
	Get() (*domain.AppSettings, error)

	// Save persists settings.
	Save(settings *domain.AppSettings) error
}
