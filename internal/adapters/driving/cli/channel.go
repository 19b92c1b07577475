package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/streamctl/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
	"github.com/custodia-labs/streamctl/internal/core/services"
	"github.com/custodia-labs/streamctl/internal/logger"
)

var (
	channelFile   string
	channelSet    []string
	channelSubmit bool
)

var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Update channel metadata",
}

var channelUpdateCmd = &cobra.Command{
	Use:   "update [service]",
	Short: "Transform channel metadata for a service",
	Long: `Reads channel metadata from a JSON file and --set flags, substitutes
the %SERVICE%, %CATEGORY% and %CUSTOMTEXT% placeholders, maps the category
through the assignation table and prints the result. With --submit the
result is also sent to the platform.`,
	Example: `  streamctl channel update twitch --set title="Live on %SERVICE%" --set category=chatting --submit`,
	Args: cobra.ExactArgs(1),
	RunE: runChannelUpdate,
}

var channelWatchCmd = &cobra.Command{
	Use:   "watch [service] [file]",
	Short: "Submit channel metadata whenever a file changes",
	Long: `Submits the channel metadata in a JSON file, then again every time the
file is saved, until interrupted.`,
	Args: cobra.ExactArgs(2),
	RunE: runChannelWatch,
}

func init() {
	channelUpdateCmd.Flags().StringVarP(&channelFile, "file", "f", "", "JSON file with channel metadata")
	channelUpdateCmd.Flags().StringArrayVarP(&channelSet, "set", "s", nil, "metadata value as key=value (repeatable)")
	channelUpdateCmd.Flags().BoolVar(&channelSubmit, "submit", false, "send the result to the platform")
	channelCmd.AddCommand(channelUpdateCmd)
	channelCmd.AddCommand(channelWatchCmd)
	rootCmd.AddCommand(channelCmd)
}

func runChannelUpdate(cmd *cobra.Command, args []string) error {
	info, err := buildChannelInfo(channelFile, channelSet)
	if err != nil {
		return err
	}

	c, err := client(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	var out domain.ChannelInfo
	if channelSubmit {
		out, err = c.SubmitChannel(ctx, info)
	} else {
		out, err = c.UpdateChannel(ctx, info)
	}
	if err != nil {
		return fmt.Errorf("update channel: %w", err)
	}

	return printJSON(cmd.OutOrStdout(), out)
}

// buildChannelInfo starts from the well-known keys, then applies the file
// and finally the key=value overrides.
func buildChannelInfo(path string, pairs []string) (domain.ChannelInfo, error) {
	info := domain.NewChannelInfo()
	if path != "" {
		loaded, err := loadChannelInfo(path)
		if err != nil {
			return nil, err
		}
		for k, v := range loaded {
			info[k] = v
		}
	}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", domain.ErrInvalidInput, p)
		}
		info[key] = value
	}
	return info, nil
}

func loadChannelInfo(path string) (domain.ChannelInfo, error) {
	var info domain.ChannelInfo
	if err := jsonfile.LoadInto(path, &info, false); err != nil {
		return nil, fmt.Errorf("load channel metadata: %w", err)
	}
	if info == nil {
		info = domain.ChannelInfo{}
	}
	return info, nil
}

func runChannelWatch(cmd *cobra.Command, args []string) error {
	c, err := client(args[0])
	if err != nil {
		return err
	}
	return watchChannel(commandContext(cmd), c, args[1], cmd.OutOrStdout())
}

// watchChannel submits the file once, then on every change, until ctx is
// done. Submissions run one at a time; failures are logged.
func watchChannel(ctx context.Context, c driving.ServiceClient, path string, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	submit := func(ctx context.Context) error {
		info, err := loadChannelInfo(path)
		if err != nil {
			return err
		}
		result, err := c.SubmitChannel(ctx, info)
		if err != nil {
			return err
		}
		title, _ := result.String(domain.ChannelTitle)
		fmt.Fprintf(out, "submitted to %s: %s\n", c.Name(), title)
		return nil
	}

	var current *services.Task
	next := func() {
		if current != nil {
			if err := current.Wait(); err != nil {
				logger.Error("channel submission failed", "service", c.Name(), "error", err)
			}
		}
		current = services.Go(ctx, submit)
	}

	next()
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			if err := current.Wait(); err != nil {
				logger.Error("channel submission failed", "service", c.Name(), "error", err)
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				next()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("channel watcher error", "error", err)
		}
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
