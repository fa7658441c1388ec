package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fastenhealth/connect-bridge/internal/coordinator"
	"github.com/fastenhealth/connect-bridge/internal/domain/entity"
	"github.com/fastenhealth/connect-bridge/internal/infrastructure/wsrelay"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run the websocket dev relay with a live bridge coordinator",
	Long: `Runs a local websocket relay exposing one endpoint per surface role
(/ws/primary and /ws/secondary). A companion page in a real browser connects
to each endpoint and relays window-open, postMessage, and navigation events
into the bridge; event-bus payloads forwarded to the host are printed to
stdout as JSON lines.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logging.FromContext(ctx)

		server := wsrelay.NewServer(ctx, viper.GetString("listen"))

		cfg := configFromViper()
		cfg.OnEventBus = func(payload map[string]any) {
			line, err := json.Marshal(payload)
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal event-bus payload")
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(line))
		}

		bridge, err := coordinator.New(ctx, cfg, server.Primary(), server.Secondary())
		if err != nil {
			return err
		}
		bridge.SetLifecycleObserver(func(state entity.SurfaceLifecycle) {
			log.Info().
				Bool("visible", state.Visible).
				Str("target_uri", state.TargetURI).
				Msg("secondary surface lifecycle changed")
		})

		if err := bridge.Mount(viper.GetString("base-url")); err != nil {
			return err
		}
		return server.Run()
	},
}

func init() {
	registerConfigFlags(relayCmd)
	relayCmd.Flags().String("listen", "127.0.0.1:8929", "relay listen address")
	rootCmd.AddCommand(relayCmd)
}
