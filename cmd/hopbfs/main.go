package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gyaneshwarpardhi/hopbfs/cmd/hopbfs/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := commands.Execute(ctx)
	stop()
	os.Exit(code)
}
