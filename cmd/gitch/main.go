package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/moorara/gitch/pkg/log"
)

func main() {
	// We cannot enable the logger until the verbosity is known
	logger := log.New(log.None)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := newCommand(&app{
		logger: logger,
		out:    os.Stdout,
		dir:    ".",
	})

	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logger.Fatal(err)
	}
}
