package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/cankoe/netcloud-failover-reporter/internal/helpers"
	"github.com/cankoe/netcloud-failover-reporter/internal/runner"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Msgf("Received signal %s, aborting the report run...", sig)
		cancel()
	}()

	components, err := helpers.InitializeCommonComponents("reporter")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize the failover reporter")
	}

	r := runner.New(components.Config, components.HTTPClient)
	if err := r.Run(ctx, components.Customers); err != nil {
		log.Fatal().Err(err).Msg("Failover report run failed")
	}

	log.Info().Msg("Failover report run completed")
}
