package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
)

// Ensure Registry implements the interface.
var _ driving.ServiceRegistry = (*Registry)(nil)

// Twitch is the definition of the built-in Twitch service.
var Twitch = domain.ServiceDefinition{
	Name:                 "Twitch",
	Scope:                []string{"channel:manage:broadcast"},
	AuthorizationBaseURL: "https://id.twitch.tv/oauth2/authorize",
	TokenURL:             "https://id.twitch.tv/oauth2/token",
	RedirectURI:          "http://localhost:3000/",
	APIBaseURL:           "https://api.twitch.tv/helix",
}

// Registry holds the services compiled into the binary.
// Lookups are case-insensitive.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]domain.ServiceDefinition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]domain.ServiceDefinition)}
}

// DefaultRegistry returns a registry with every built-in service.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(Twitch)
	return r
}

// Register adds a definition. Names must be unique ignoring case.
func (r *Registry) Register(def domain.ServiceDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: service name is required", domain.ErrInvalidInput)
	}
	key := strings.ToLower(def.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.defs[key]; ok {
		return fmt.Errorf("%w: service %s", domain.ErrAlreadyExists, def.Name)
	}
	r.defs[key] = def
	return nil
}

// Get returns the definition for a service name.
func (r *Registry) Get(name string) (domain.ServiceDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[strings.ToLower(name)]
	if !ok {
		return domain.ServiceDefinition{}, fmt.Errorf("%w: unknown service %s", domain.ErrNotFound, name)
	}
	// Return a copy of the scope to prevent modification
	scope := make([]string, len(def.Scope))
	copy(scope, def.Scope)
	def.Scope = scope
	return def, nil
}

// Names returns the canonical names of all services, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}
