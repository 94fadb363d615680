package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"eliasstats/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer stop()
	commands.ExecuteContext(ctx)
}
