package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dev-mohitbeniwal/ems/api/cli"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, os.Args, version); err != nil {
		os.Exit(1)
	}
}
