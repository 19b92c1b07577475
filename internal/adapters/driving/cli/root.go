// Package cli implements the streamctl command line with cobra.
//
// Commands talk to the core through package-level services installed by
// the entrypoint. Services are built lazily in the root PersistentPreRunE
// so that persistent flags such as --config-dir are parsed first.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/streamctl/internal/core/ports/driven"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/logger"
)

var version = "dev"

// Persistent flags.
var (
	verbose         bool
	configDir       string
	logFormat       string
	metricsTextfile string
)

// Services used by commands. Nil until installed.
var (
	settingsService driving.SettingsService
	serviceRegistry driving.ServiceRegistry
	openClient      func(name string) (driving.ServiceClient, error)
	pauser          driving.Pauser
	inspector       driven.SystemInspector
	metricsWriter   MetricsWriter
)

var errNotConfigured = errors.New("not configured")

// MetricsWriter persists collected metrics to a textfile.
type MetricsWriter interface {
	WriteTextfile(path string) error
}

// Options are the parsed persistent flags handed to a Builder.
type Options struct {
	ConfigDir string
	LogFormat string
	Verbose   bool
}

// Dependencies are the services commands run against.
type Dependencies struct {
	Settings  driving.SettingsService
	Registry  driving.ServiceRegistry
	Clients   func(name string) (driving.ServiceClient, error)
	Pauser    driving.Pauser
	Inspector driven.SystemInspector
	Metrics   MetricsWriter
}

// Builder creates the dependencies once flags are parsed.
type Builder func(ctx context.Context, opts Options) (*Dependencies, error)

var builder Builder

var rootCmd = &cobra.Command{
	Use:   "streamctl",
	Short: "Streaming platform integration toolkit",
	Long: `streamctl manages OAuth2 tokens for streaming platforms, issues
authenticated API requests, updates channel metadata and pauses
interfering services and processes.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.streamctl)")
	flags.StringVar(&logFormat, "log-format", "", "log format: auto, text, console, html or json")
	flags.StringVar(&metricsTextfile, "metrics-textfile", "", "write request metrics to this file on exit")
}

// SetBuilder installs the function that creates services for commands.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Install replaces the services used by commands.
func Install(deps *Dependencies) {
	if deps == nil {
		deps = &Dependencies{}
	}
	settingsService = deps.Settings
	serviceRegistry = deps.Registry
	openClient = deps.Clients
	pauser = deps.Pauser
	inspector = deps.Inspector
	metricsWriter = deps.Metrics
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if logFormat != "" {
		logger.SetFormat(logger.Format(logFormat))
	}

	if builder == nil {
		return nil
	}
	deps, err := builder(cmd.Context(), Options{
		ConfigDir: configDir,
		LogFormat: logFormat,
		Verbose:   verbose,
	})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	Install(deps)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if metricsTextfile == "" || metricsWriter == nil {
		return nil
	}
	return metricsWriter.WriteTextfile(metricsTextfile)
}

// client opens the named service or explains why it cannot.
func client(name string) (driving.ServiceClient, error) {
	if openClient == nil {
		return nil, fmt.Errorf("service clients %w", errNotConfigured)
	}
	return openClient(name)
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
