package main

import (
	"context"
	"log/slog"
	"os"

	"kinoexport/cmd/kinoexport/commands"
	"kinoexport/lib/serviceutil"
	"kinoexport/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)

	tel, err := telemetry.SetupFromEnv(ctx, "kinoexport")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to set up telemetry", "err", err)
	}
	defer tel.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
