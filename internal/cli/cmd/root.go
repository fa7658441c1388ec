// Package cmd provides Cobra CLI commands for connect-bridge.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fastenhealth/connect-bridge/internal/connect"
)

var rootCmd = &cobra.Command{
	Use:   "connect-bridge",
	Short: "Dev tooling for the Fasten Connect embedded-webview bridge",
	Long: `connect-bridge - developer tooling for the Fasten Connect dual-surface bridge.

The bridge coordinates two embedded browser surfaces (the main connect flow
and an on-demand popup for provider portal login) and routes structured
messages between them and the host application.

Use 'connect-bridge url' to build the connect URL for a configuration, or
'connect-bridge relay' to run a websocket relay that drives a live bridge
coordinator from a page in a real browser.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		viper.SetEnvPrefix("CONNECT_BRIDGE")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		viper.AutomaticEnv()
		return viper.BindPFlags(cmd.Flags())
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// registerConfigFlags adds the shared connect configuration flags to a
// command. Values also bind to CONNECT_BRIDGE_* environment variables.
func registerConfigFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("public-id", "", "public id of the integrating organization (required)")
	flags.String("external-id", "", "external patient identifier")
	flags.String("reconnect-org-connection-id", "", "org connection id to reconnect")
	flags.String("brand-id", "", "preselected brand id")
	flags.String("portal-id", "", "preselected portal id")
	flags.String("endpoint-id", "", "preselected endpoint id")
	flags.Bool("search-mode", false, "enable provider search mode")
	flags.StringSlice("search-sort-by-opts", nil, "provider search sort options")
	flags.Bool("tefca-mode", false, "enable TEFCA mode")
	flags.String("tefca-purpose-of-use", "", "TEFCA purpose of use")
	flags.StringSlice("event-types", nil, "event types the remote flow should emit")
	flags.Bool("debug", false, "enable verbose flow diagnostics")
	flags.String("base-url", "", "override the hosted connect flow base URL")
}

// configFromViper assembles the immutable bridge configuration from bound
// flags and environment.
func configFromViper() connect.Config {
	return connect.Config{
		PublicID:                 viper.GetString("public-id"),
		ExternalID:               viper.GetString("external-id"),
		ReconnectOrgConnectionID: viper.GetString("reconnect-org-connection-id"),
		BrandID:                  viper.GetString("brand-id"),
		PortalID:                 viper.GetString("portal-id"),
		EndpointID:               viper.GetString("endpoint-id"),
		SearchMode:               viper.GetBool("search-mode"),
		SearchSortByOpts:         viper.GetStringSlice("search-sort-by-opts"),
		TEFCAMode:                viper.GetBool("tefca-mode"),
		TEFCAPurposeOfUse:        viper.GetString("tefca-purpose-of-use"),
		EventTypes:               viper.GetStringSlice("event-types"),
		Debug:                    viper.GetBool("debug"),
	}
}
