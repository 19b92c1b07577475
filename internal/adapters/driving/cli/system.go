package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	systemJSON    bool
	serviceName   string
	serviceStatus string
)

var processesCmd = &cobra.Command{
	Use:   "processes",
	Short: "List running processes grouped by executable",
	Args:  cobra.NoArgs,
	RunE:  runProcesses,
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List operating system services",
	Long: `Lists operating system services keyed by binary path. Only Windows
exposes services; elsewhere the list is empty.`,
	Args: cobra.NoArgs,
	RunE: runServices,
}

var foregroundCmd = &cobra.Command{
	Use:   "foreground",
	Short: "Print the executable of the focused window",
	Args:  cobra.NoArgs,
	RunE:  runForeground,
}

func init() {
	processesCmd.Flags().BoolVar(&systemJSON, "json", false, "output as JSON")
	servicesCmd.Flags().BoolVar(&systemJSON, "json", false, "output as JSON")
	servicesCmd.Flags().StringVar(&serviceName, "name", "", "case-insensitive name filter")
	servicesCmd.Flags().StringVar(&serviceStatus, "status", "", "exact status filter (running, stopped, ...)")
	rootCmd.AddCommand(processesCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(foregroundCmd)
}

func runProcesses(cmd *cobra.Command, _ []string) error {
	if inspector == nil {
		return fmt.Errorf("system inspector %w", errNotConfigured)
	}

	procs, err := inspector.Processes(commandContext(cmd))
	if err != nil {
		return err
	}
	if systemJSON {
		return printJSON(cmd.OutOrStdout(), procs)
	}

	for _, exe := range sortedKeys(procs) {
		p := procs[exe]
		cmd.Printf("%-30s %6.2f%% %4d threads  %s\n", p.Name, p.MemoryPercent, p.NumThreads, exe)
	}
	return nil
}

func runServices(cmd *cobra.Command, _ []string) error {
	if inspector == nil {
		return fmt.Errorf("system inspector %w", errNotConfigured)
	}

	svcs, err := inspector.Services(commandContext(cmd), serviceName, serviceStatus)
	if err != nil {
		return err
	}
	if systemJSON {
		return printJSON(cmd.OutOrStdout(), svcs)
	}

	if len(svcs) == 0 {
		cmd.Println("No services found.")
		return nil
	}
	for _, path := range sortedKeys(svcs) {
		s := svcs[path]
		cmd.Printf("%-30s %-10s %-10s %s\n", s.Name, s.Status, s.StartType, path)
	}
	return nil
}

func runForeground(cmd *cobra.Command, _ []string) error {
	if inspector == nil {
		return fmt.Errorf("system inspector %w", errNotConfigured)
	}

	exe, err := inspector.ForegroundProcess(commandContext(cmd))
	if err != nil {
		return err
	}
	cmd.Println(exe)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
