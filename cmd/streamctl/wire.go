package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/streamctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/streamctl/internal/adapters/driven/metrics"
	"github.com/custodia-labs/streamctl/internal/adapters/driven/oauth"
	"github.com/custodia-labs/streamctl/internal/adapters/driven/platform/twitch"
	"github.com/custodia-labs/streamctl/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/streamctl/internal/adapters/driven/system"
	callback "github.com/custodia-labs/streamctl/internal/adapters/driving/oauth"
	"github.com/custodia-labs/streamctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/core/services"
	"github.com/custodia-labs/streamctl/internal/logger"
)

// Files inside the config directory.
const (
	servicesDirName  = "services"
	assignationsFile = "assignations.json"
)

// build creates every adapter and service for the CLI.
func build(_ context.Context, opts cli.Options) (*cli.Dependencies, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	dir := filepath.Dir(configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if opts.LogFormat == "" {
		logger.SetFormat(logger.Format(settings.LogFormat))
	}

	serviceStore, err := jsonfile.NewServiceConfigStore(filepath.Join(dir, servicesDirName))
	if err != nil {
		return nil, fmt.Errorf("open service configs: %w", err)
	}

	registry := services.DefaultRegistry()
	observer := metrics.NewObserver()
	pm := system.NewDefaultProcessManager()

	factory := &clientFactory{
		registry:     registry,
		store:        serviceStore,
		assignations: jsonfile.NewAssignationStore(filepath.Join(dir, assignationsFile)),
		observer:     observer,
		settings:     *settings,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		clients:      make(map[string]*services.Client),
	}

	return &cli.Dependencies{
		Settings: settingsService,
		Registry: registry,
		Clients:  factory.open,
		Pauser: services.NewPauser(
			system.NewServiceController(pm),
			system.NewSuspender(pm, settings.Pause.PsSuspendPath),
			settings.Pause,
		),
		Inspector: system.NewInspector(),
		Metrics:   observer,
	}, nil
}

// clientFactory opens one client per service on first use.
type clientFactory struct {
	registry     *services.Registry
	store        *jsonfile.ServiceConfigStore
	assignations *jsonfile.AssignationStore
	observer     *metrics.Observer
	settings     domain.AppSettings
	httpClient   *http.Client
	clients      map[string]*services.Client
}

func (f *clientFactory) open(name string) (driving.ServiceClient, error) {
	def, err := f.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("service %q: %w (known: %s)", name, err, strings.Join(f.registry.Names(), ", "))
	}
	if c, ok := f.clients[def.Name]; ok {
		return c, nil
	}

	cfg, err := f.loadConfig(def)
	if err != nil {
		return nil, err
	}

	tokens := services.NewTokenManager(def.Name, cfg,
		oauth.NewExchanger(cfg, f.httpClient),
		callback.NewListener,
		services.TokenManagerOptions{
			Store:    f.store,
			Observer: f.observer,
			Browser:  callback.OpenBrowser,
			Timeout:  f.settings.Auth.Timeout(),
		})

	c := services.NewClient(def, tokens, services.ClientOptions{
		HTTPClient:        f.httpClient,
		RateLimit:         f.settings.API.RateLimit,
		Burst:             f.settings.API.Burst,
		RetryUnauthorized: f.settings.API.RetryUnauthorized,
		Observer:          f.observer,
		Assignations:      f.assignations,
	})
	if def.Name == services.Twitch.Name {
		c.SetSubmitter(twitch.NewSubmitter(c))
	}

	f.clients[def.Name] = c
	return c, nil
}

// loadConfig reads the service configuration. A missing file is created
// from the registry defaults so the user only has to fill in credentials.
func (f *clientFactory) loadConfig(def domain.ServiceDefinition) (*domain.ServiceConfig, error) {
	cfg, err := f.store.Load(def.Name)
	if errors.Is(err, domain.ErrNotFound) {
		defaults := domain.DefaultServiceConfig(def)
		cfg = &defaults
		if err := f.store.Save(def.Name, cfg); err != nil {
			return nil, fmt.Errorf("create %s: %w", f.store.Path(def.Name), err)
		}
		logger.Warn("created service configuration", "service", def.Name, "path", f.store.Path(def.Name))
	} else if err != nil {
		return nil, fmt.Errorf("load %s configuration: %w", def.Name, err)
	}

	if !cfg.Enabled {
		return nil, fmt.Errorf("%s is disabled, set \"enabled\" in %s", def.Name, f.store.Path(def.Name))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s configuration %s: %w", def.Name, f.store.Path(def.Name), err)
	}
	return cfg, nil
}
