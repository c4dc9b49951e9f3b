package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cankoe/netcloud-failover-reporter/internal/helpers"
	"github.com/cankoe/netcloud-failover-reporter/internal/netcloud"
)

// Verifies config, customer secrets and NetCloud credentials without
// producing or emailing a report.
func main() {
	components, err := helpers.InitializeCommonComponents("test-connections")
	if err != nil {
		log.Fatal().Err(err).Msg("Initialization failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	failed := false
	for _, customer := range components.Customers {
		client := netcloud.NewClient(
			components.Config.NetCloud.BaseURL,
			components.Config.NetCloud.PageSize,
			customer.NetCloudAPI,
			components.HTTPClient,
		)

		if err := client.Ping(ctx); err != nil {
			log.Error().Err(err).Str("customer", customer.Name).Msg("NetCloud check failed")
			failed = true
			continue
		}

		log.Info().Str("customer", customer.Name).Str("timezone", customer.Timezone).
			Str("timeframe", customer.Rules.Describe()).Msg("NetCloud connection OK")
	}

	if failed {
		log.Fatal().Msg("One or more connection checks failed")
	}

	log.Info().Msg("All connection checks passed")
}
