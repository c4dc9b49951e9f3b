package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/cankoe/netcloud-failover-reporter/internal/window"
)

// ErrInvalidConfig marks any configuration problem; the run aborts at
// startup rather than mis-filter a report.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	NetCloud struct {
		BaseURL               string `mapstructure:"base_url"`
		PageSize              int    `mapstructure:"page_size"`
		RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
	} `mapstructure:"netcloud"`

	Email struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
	} `mapstructure:"email"`

	Report struct {
		Inbox       string `mapstructure:"inbox"`
		Directory   string `mapstructure:"directory"`
		WindowRRule string `mapstructure:"window_rrule"`
	} `mapstructure:"report"`

	Customers struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"customers"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// LoadConfig loads the configuration from file, environment variables, and command-line arguments.
// Order of precedence: defaults < config file < env vars < cmd flags.
func LoadConfig(configPath string, args []string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("netcloud.base_url", "https://www.cradlepointecm.com/api/v2")
	v.SetDefault("netcloud.page_size", 100)
	v.SetDefault("netcloud.request_timeout_seconds", 30)
	v.SetDefault("report.directory", "reports")
	v.SetDefault("report.window_rrule", window.DefaultRRule)
	v.SetDefault("customers.path", "/vault/secrets/nc_fail")
	v.SetDefault("log.level", "info")

	// Read from config file if present
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("config_path", configPath).Msg("Failed to read config file, relying on defaults, env, and flags")
	}

	// Explicitly bind environment variables
	bindEnvOrPanic(v, "netcloud.base_url", "NETCLOUD_BASE_URL")
	bindEnvOrPanic(v, "netcloud.page_size", "NETCLOUD_PAGE_SIZE")
	bindEnvOrPanic(v, "netcloud.request_timeout_seconds", "NETCLOUD_REQUEST_TIMEOUT_SECONDS")
	bindEnvOrPanic(v, "email.base_url", "EMAIL_API_BASE_URL")
	bindEnvOrPanic(v, "email.api_key", "EMAIL_API_TOKEN")
	bindEnvOrPanic(v, "report.inbox", "REPORTING_INBOX")
	bindEnvOrPanic(v, "report.directory", "REPORT_DIRECTORY")
	bindEnvOrPanic(v, "report.window_rrule", "REPORT_WINDOW_RRULE")
	bindEnvOrPanic(v, "customers.path", "CUSTOMER_CONFIGS_PATH")
	bindEnvOrPanic(v, "log.level", "LOG_LEVEL")

	// Parse command-line flags
	fs := flag.NewFlagSet("reporter", flag.ContinueOnError)
	customersPath := fs.String("customers-path", "", "Override customer configs file path")
	reportDir := fs.String("report-directory", "", "Override report output directory")
	windowRRule := fs.String("window-rrule", "", "Override reporting window RRULE")
	logLevel := fs.String("log-level", "", "Override log level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	// Apply command-line flags if provided
	if *customersPath != "" {
		v.Set("customers.path", *customersPath)
	}
	if *reportDir != "" {
		v.Set("report.directory", *reportDir)
	}
	if *windowRRule != "" {
		v.Set("report.window_rrule", *windowRRule)
	}
	if *logLevel != "" {
		v.Set("log.level", *logLevel)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func bindEnvOrPanic(v *viper.Viper, key, env string) {
	if err := v.BindEnv(key, env); err != nil {
		log.Fatal().Err(err).Msgf("Failed to bind environment variable %s to key %s", env, key)
	}
}

func validateConfig(cfg *Config) error {
	if cfg.NetCloud.BaseURL == "" {
		return fmt.Errorf("%w: netcloud.base_url must not be empty", ErrInvalidConfig)
	}
	if cfg.NetCloud.PageSize <= 0 {
		return fmt.Errorf("%w: netcloud.page_size must be > 0, got %d", ErrInvalidConfig, cfg.NetCloud.PageSize)
	}
	if cfg.NetCloud.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: netcloud.request_timeout_seconds must be > 0, got %d", ErrInvalidConfig, cfg.NetCloud.RequestTimeoutSeconds)
	}

	if cfg.Email.BaseURL == "" {
		return fmt.Errorf("%w: email.base_url must not be empty (EMAIL_API_BASE_URL)", ErrInvalidConfig)
	}
	if cfg.Email.APIKey == "" {
		return fmt.Errorf("%w: email.api_key must not be empty (EMAIL_API_TOKEN)", ErrInvalidConfig)
	}

	if cfg.Report.Inbox == "" {
		return fmt.Errorf("%w: report.inbox must not be empty (REPORTING_INBOX)", ErrInvalidConfig)
	}
	if err := window.Validate(cfg.Report.WindowRRule); err != nil {
		return fmt.Errorf("%w: report.window_rrule: %v", ErrInvalidConfig, err)
	}

	if cfg.Customers.Path == "" {
		return fmt.Errorf("%w: customers.path must not be empty", ErrInvalidConfig)
	}

	return nil
}
