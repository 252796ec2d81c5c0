package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ablinov/lifevault/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
