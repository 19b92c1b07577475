package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
)

var pauseDuration time.Duration

// runCommand executes the wrapped command with the terminal attached.
var runCommand = func(ctx context.Context, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

var pauseCmd = &cobra.Command{
	Use:   "pause [-- command args...]",
	Short: "Pause configured services and processes",
	Long: `Stops the services and suspends the processes listed under [pause] in
config.toml, runs a command (or waits for --duration, or until
interrupted), then resumes everything that was paused.`,
	Example: `  streamctl pause -- obs64.exe --startstreaming
  streamctl pause --duration 30m`,
	RunE: runPause,
}

func init() {
	pauseCmd.Flags().DurationVar(&pauseDuration, "duration", 0, "how long to stay paused when no command is given")
	rootCmd.AddCommand(pauseCmd)
}

func runPause(cmd *cobra.Command, args []string) error {
	if pauser == nil {
		return fmt.Errorf("pauser %w", errNotConfigured)
	}

	return pauser.WithPaused(commandContext(cmd), func(ctx context.Context) error {
		if len(args) > 0 {
			return runCommand(ctx, args[0], args[1:]...)
		}

		var timeout <-chan time.Time
		if pauseDuration > 0 {
			timer := time.NewTimer(pauseDuration)
			defer timer.Stop()
			timeout = timer.C
		}
		cmd.Println("Paused. Press Ctrl+C to resume.")
		select {
		case <-ctx.Done():
		case <-timeout:
		}
		return nil
	})
}
