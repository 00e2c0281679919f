// Command bookin syncs Google Drive files into a Notion database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wim-web/bookin/internal/adapters/driving/cli"
	"github.com/wim-web/bookin/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetFactory(newApp())

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
