package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/streamctl/internal/core/domain"
	"github.com/custodia-labs/streamctl/internal/core/ports/driving"
)

var (
	requestParams []string
	requestData   string
	requestBearer bool
)

var requestCmd = &cobra.Command{
	Use:   "request [service] [method] [address]",
	Short: "Send an authenticated API request",
	Long: `Sends an authenticated request to a platform API and prints the
response. Relative addresses are resolved against the service's API base
URL. A 401 response triggers one reauthorization.`,
	Example: `  streamctl request twitch GET users
  streamctl request twitch PATCH channels -p broadcaster_id=1234 -d '{"title":"hello"}' --bearer`,
	Args: cobra.ExactArgs(3),
	RunE: runRequest,
}

func init() {
	requestCmd.Flags().StringArrayVarP(&requestParams, "param", "p", nil, "query parameter as key=value (repeatable)")
	requestCmd.Flags().StringVarP(&requestData, "data", "d", "", "JSON request body")
	requestCmd.Flags().BoolVar(&requestBearer, "bearer", false, "use the Bearer authorization scheme")
	rootCmd.AddCommand(requestCmd)
}

func runRequest(cmd *cobra.Command, args []string) error {
	params, err := parseParams(requestParams)
	if err != nil {
		return err
	}

	opts := driving.RequestOptions{Params: params, Bearer: requestBearer}
	if requestData != "" {
		var body any
		if err := json.Unmarshal([]byte(requestData), &body); err != nil {
			return fmt.Errorf("%w: request body: %v", domain.ErrInvalidInput, err)
		}
		opts.Body = body
	}

	c, err := client(args[0])
	if err != nil {
		return err
	}

	resp, err := c.Request(commandContext(cmd), args[1], args[2], opts)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	cmd.Printf("HTTP %d\n", resp.StatusCode)
	if len(resp.Body) > 0 {
		cmd.Println(formatBody(resp.Body))
	}
	return nil
}

// parseParams turns key=value pairs into query values.
func parseParams(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := url.Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: parameter %q is not key=value", domain.ErrInvalidInput, p)
		}
		values.Add(key, value)
	}
	return values, nil
}

// formatBody indents JSON bodies and returns anything else unchanged.
func formatBody(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
