package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/realstatepro/billing/internal/cli"
	"github.com/realstatepro/billing/internal/temporal"
)

// Standalone temporal worker. The server binary can also host the worker in
// local mode; this entrypoint exists for deployments that scale workers
// independently of the API.
func main() {
	rt, err := cli.Bootstrap()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rt.Close()

	client, err := temporal.NewTemporalClient(&rt.Config.Temporal, rt.Logger)
	if err != nil {
		rt.Logger.Fatalf("failed to connect to temporal: %v", err)
	}
	defer client.Client.Close()

	worker := temporal.NewWorker(client, rt.Config.Temporal, rt.Params)
	if err := worker.Start(); err != nil {
		rt.Logger.Fatalf("failed to start worker: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	worker.Stop()
}
