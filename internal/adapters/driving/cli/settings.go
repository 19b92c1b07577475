package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/streamctl/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show application settings",
	Long: `Shows the settings read from config.toml. Values missing from the file
are shown with their defaults.`,
	RunE: runSettingsShow,
}

var settingsLogFormatCmd = &cobra.Command{
	Use:       "log-format [format]",
	Short:     "Set the default log format",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"auto", "text", "console", "html", "json"},
	RunE:      runSettingsLogFormat,
}

func init() {
	settingsCmd.AddCommand(settingsLogFormatCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[auth]")
	cmd.Printf("  timeout: %ds\n", settings.Auth.TimeoutSeconds)
	cmd.Println("[api]")
	cmd.Printf("  retry_unauthorized: %t\n", settings.API.RetryUnauthorized)
	cmd.Printf("  rate_limit: %g/s (burst %d)\n", settings.API.RateLimit, settings.API.Burst)
	cmd.Println("[pause]")
	cmd.Printf("  services: %s\n", listOrNone(settings.Pause.Services))
	cmd.Printf("  processes: %s\n", listOrNone(settings.Pause.Processes))
	cmd.Printf("  pssuspend_path: %s\n", settings.Pause.PsSuspendPath)
	cmd.Println("[log]")
	cmd.Printf("  format: %s\n", settings.LogFormat)
	return nil
}

func runSettingsLogFormat(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.LogFormat = domain.LogFormat(args[0])
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Log format set to %s\n", settings.LogFormat)
	return nil
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
