// Command server is the bare deployment entry point: same as
// `vastra run`, without the CLI surface. Container images use this.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/shashiranjanraj/vastra/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Fatal(err)
	}
}
