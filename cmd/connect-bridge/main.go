package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastenhealth/connect-bridge/internal/cli/cmd"
	"github.com/fastenhealth/connect-bridge/internal/logging"
)

func main() {
	logger := logging.NewFromEnv()
	ctx := logging.WithContext(context.Background(), logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
