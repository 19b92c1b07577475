package driven

import "github.com/custodia-labs/streamctl/internal/core/domain"

// ServiceConfigStore persists per-service configuration.
type ServiceConfigStore interface {
	// Load returns the stored configuration for a service.
	// Returns domain.ErrNotFound if none exists and domain.ErrCorrupt if it
	// cannot be decoded.
	Load(service string) (*domain.ServiceConfig, error)

	// Save stores the configuration, replacing any previous one atomically.
	Save(service string, cfg *domain.ServiceConfig) error
}

// AssignationStore persists the category assignment table.
type AssignationStore interface {
	// LoadAssignations returns the table, or an empty table if none is stored.
	LoadAssignations() (domain.Assignations, error)

	// SaveAssignations replaces the stored table.
	SaveAssignations(a domain.Assignations) error
}
