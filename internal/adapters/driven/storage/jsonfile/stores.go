package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.ServiceConfigStore = (*ServiceConfigStore)(nil)
	_ driven.AssignationStore   = (*AssignationStore)(nil)
)

// ServiceConfigStore keeps one JSON file per service under a directory.
type ServiceConfigStore struct {
	dir string
}

// NewServiceConfigStore creates a store rooted at dir, creating it if needed.
func NewServiceConfigStore(dir string) (*ServiceConfigStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &ServiceConfigStore{dir: dir}, nil
}

// Path returns the file used for a service.
func (s *ServiceConfigStore) Path(service string) string {
	return filepath.Join(s.dir, strings.ToLower(service)+".json")
}

// Load returns the stored configuration for a service.
func (s *ServiceConfigStore) Load(service string) (*domain.ServiceConfig, error) {
	var cfg domain.ServiceConfig
	if err := LoadInto(s.Path(service), &cfg, true); err != nil {
		return nil, err
	}
	if cfg.Authorization == nil {
		cfg.Authorization = &domain.Token{}
	}
	return &cfg, nil
}

// Save stores the configuration for a service.
func (s *ServiceConfigStore) Save(service string, cfg *domain.ServiceConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil service config", domain.ErrInvalidInput)
	}
	return Save(s.Path(service), cfg)
}

// AssignationStore keeps the category assignment table in one JSON file.
type AssignationStore struct {
	path string
}

// NewAssignationStore creates a store backed by path.
func NewAssignationStore(path string) *AssignationStore {
	return &AssignationStore{path: path}
}

// LoadAssignations returns the table. A missing file yields an empty table.
func (s *AssignationStore) LoadAssignations() (domain.Assignations, error) {
	var a domain.Assignations
	if err := LoadInto(s.path, &a, true); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Assignations{}, nil
		}
		return nil, err
	}
	if a == nil {
		a = domain.Assignations{}
	}
	return a, nil
}

// SaveAssignations replaces the stored table.
func (s *AssignationStore) SaveAssignations(a domain.Assignations) error {
	return Save(s.path, a)
}
