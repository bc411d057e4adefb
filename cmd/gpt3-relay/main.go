package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	appcli "github.com/jinford/gpt3-relay/internal/app/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := appcli.NewApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
