// Command ticketctl is the operator CLI: it runs the item search locally,
// posts the ticket panel and probes a running bot's admin API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/xentee/skinticket/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(logger.Get()).ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
