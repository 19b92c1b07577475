package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage platform authorization",
	Long: `Obtain and inspect OAuth2 tokens for streaming platforms.

Tokens are refreshed silently when possible. Otherwise a browser window
opens and streamctl waits for the platform to redirect back to the
configured local port.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login [service]",
	Short: "Ensure a valid token, authorizing if needed",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status [service]",
	Short: "Show the token state without authorizing",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthStatus,
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported services",
	Args:  cobra.NoArgs,
	RunE:  runAuthList,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authListCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	c, err := client(args[0])
	if err != nil {
		return err
	}

	tokens := c.Tokens()
	if err := tokens.EnsureValidToken(commandContext(cmd)); err != nil {
		return fmt.Errorf("authorize %s: %w", c.Name(), err)
	}

	cmd.Printf("%s: %s\n", c.Name(), tokens.State())
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	c, err := client(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("%s: %s\n", c.Name(), c.Tokens().State())
	return nil
}

func runAuthList(cmd *cobra.Command, _ []string) error {
	if serviceRegistry == nil {
		return fmt.Errorf("service registry %w", errNotConfigured)
	}

	for _, name := range serviceRegistry.Names() {
		cmd.Println(name)
	}
	return nil
}
