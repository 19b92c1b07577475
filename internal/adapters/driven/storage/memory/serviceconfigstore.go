package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.ServiceConfigStore = (*ServiceConfigStore)(nil)
	_ driven.AssignationStore   = (*AssignationStore)(nil)
)

// ServiceConfigStore is an in-memory implementation of driven.ServiceConfigStore.
type ServiceConfigStore struct {
	mu      sync.RWMutex
	configs map[string]domain.ServiceConfig
	saves   int
}

// NewServiceConfigStore creates a new in-memory service config store.
func NewServiceConfigStore() *ServiceConfigStore {
	return &ServiceConfigStore{configs: make(map[string]domain.ServiceConfig)}
}

// Load returns a copy of the stored configuration.
func (s *ServiceConfigStore) Load(service string) (*domain.ServiceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[strings.ToLower(service)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, service)
	}
	return copyConfig(&cfg), nil
}

// Save stores a copy of the configuration.
func (s *ServiceConfigStore) Save(service string, cfg *domain.ServiceConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil service config", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[strings.ToLower(service)] = *copyConfig(cfg)
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *ServiceConfigStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func copyConfig(cfg *domain.ServiceConfig) *domain.ServiceConfig {
	out := *cfg
	out.Scope = append([]string(nil), cfg.Scope...)
	if cfg.Authorization != nil {
		tok := *cfg.Authorization
		out.Authorization = &tok
	}
	return &out
}

// AssignationStore is an in-memory implementation of driven.AssignationStore.
type AssignationStore struct {
	mu           sync.RWMutex
	assignations domain.Assignations
}

// NewAssignationStore creates a store holding a.
func NewAssignationStore(a domain.Assignations) *AssignationStore {
	if a == nil {
		a = domain.Assignations{}
	}
	return &AssignationStore{assignations: a}
}

// LoadAssignations returns the table.
func (s *AssignationStore) LoadAssignations() (domain.Assignations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.Assignations, len(s.assignations))
	for category, services := range s.assignations {
		inner := make(map[string]domain.CategoryAssignment, len(services))
		for name, a := range services {
			inner[name] = a
		}
		out[category] = inner
	}
	return out, nil
}

// SaveAssignations replaces the table.
func (s *AssignationStore) SaveAssignations(a domain.Assignations) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignations = a
	return nil
}
