package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"work-tracker/internal/cli"
	"work-tracker/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(config.NewLoader(), os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		handler := cli.NewErrorHandler()
		fmt.Fprintf(os.Stderr, "Error: %v\n", handler.HandleSimple(err))
		stop()
		os.Exit(handler.ExitCode(err))
	}
}
