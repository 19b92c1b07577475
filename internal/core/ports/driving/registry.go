package driving

import "github.com/custodia-labs/streamctl/internal/core/domain"

// ServiceRegistry lists the services compiled into the binary.
type ServiceRegistry interface {
	// Get returns the definition for a service name (case-insensitive).
	Get(name string) (domain.ServiceDefinition, error)

	// Names returns all registered names, sorted.
	Names() []string
}
