package helpers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cankoe/netcloud-failover-reporter/internal/config"
)

// AppComponents bundles everything a run needs: the validated process
// config, the customer configs, and the shared HTTP client with the
// per-request timeout applied.
type AppComponents struct {
	Config     *config.Config
	Customers  []config.Customer
	HTTPClient *http.Client
	RunID      string
}

// InitializeCommonComponents loads .env, the process config and the
// customer configs, and configures logging. Every log line of the run
// carries a run_id for correlation.
func InitializeCommonComponents(serviceName string) (*AppComponents, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	cfg, err := config.LoadConfig("config/config.yaml", os.Args[1:])
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Msgf("Invalid log level '%s', defaulting to info", cfg.Log.Level)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	runID := uuid.NewString()
	log.Logger = log.Logger.With().Str("run_id", runID).Logger()

	log.Info().Msgf("Starting %s service with log level %s...", serviceName, level.String())

	customers, err := config.LoadCustomers(cfg.Customers.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer configs: %w", err)
	}
	log.Info().Int("customers", len(customers)).Str("path", cfg.Customers.Path).Msg("Loaded customer configs")

	httpClient := &http.Client{
		Timeout: time.Duration(cfg.NetCloud.RequestTimeoutSeconds) * time.Second,
	}

	return &AppComponents{
		Config:     cfg,
		Customers:  customers,
		HTTPClient: httpClient,
		RunID:      runID,
	}, nil
}
