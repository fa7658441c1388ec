package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fastenhealth/connect-bridge/internal/connect"
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Build and print the connect URL for a configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := configFromViper()
		uri, err := connect.BuildConnectURL(viper.GetString("base-url"), cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), uri)
		return nil
	},
}

func init() {
	registerConfigFlags(urlCmd)
	rootCmd.AddCommand(urlCmd)
}
