package main

import (
	"context"
	"log/slog"
	"os"

	"rostersync/cmd/rostersync/commands"
	"rostersync/lib/serviceutil"
	"rostersync/lib/telemetry"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, the environment may already carry the api key
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "err", err)
	}

	ctx := serviceutil.SignalContext()

	// telemetry.json5 is optional for a one-shot batch tool
	tel, err := telemetry.SetupFromEnv(ctx, "rostersync")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
