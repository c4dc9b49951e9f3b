package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cankoe/netcloud-failover-reporter/internal/netcloud"
	"github.com/cankoe/netcloud-failover-reporter/internal/report"
	"github.com/cankoe/netcloud-failover-reporter/internal/timeframe"
)

// Customer is one monitored account: NetCloud credentials, report
// recipients, and the production-hours timeframe. The vault document
// holds the raw JSON form; Location, Rules and ReportColumns are
// resolved and validated at load time.
type Customer struct {
	Name        string               `json:"name"`
	Timezone    string               `json:"timezone"`
	EmailTo     []string             `json:"email_to"`
	NetCloudAPI netcloud.Credentials `json:"netcloud_api"`
	Timeframe   map[string][]string  `json:"timeframe"`
	Columns     []string             `json:"columns"`

	Location      *time.Location    `json:"-"`
	Rules         timeframe.RuleSet `json:"-"`
	ReportColumns []report.Field    `json:"-"`
}

// secretsEnvelope is the vault-mounted document shape: the customer
// configs sit JSON-encoded inside a string field.
type secretsEnvelope struct {
	Data struct {
		CustomerConfigs string `json:"customer_configs"`
	} `json:"data"`
}

// LoadCustomers reads and validates the customer configs at path. The
// file is either a vault secrets envelope or a plain JSON array of
// customers (useful for local runs).
func LoadCustomers(path string) ([]Customer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading customer configs: %v", ErrInvalidConfig, err)
	}

	var envelope secretsEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data.CustomerConfigs != "" {
		raw = []byte(envelope.Data.CustomerConfigs)
	}

	var customers []Customer
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, fmt.Errorf("%w: parsing customer configs: %v", ErrInvalidConfig, err)
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("%w: customer configs are empty", ErrInvalidConfig)
	}

	for i := range customers {
		if err := customers[i].resolve(); err != nil {
			return nil, err
		}
	}

	return customers, nil
}

func (c *Customer) resolve() error {
	if c.Name == "" {
		return fmt.Errorf("%w: customer with empty name", ErrInvalidConfig)
	}
	if !c.NetCloudAPI.Complete() {
		return fmt.Errorf("%w: customer %s: incomplete netcloud credentials", ErrInvalidConfig, c.Name)
	}

	if c.Timezone == "" {
		return fmt.Errorf("%w: customer %s: timezone must be set", ErrInvalidConfig, c.Name)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("%w: customer %s: unknown timezone %q", ErrInvalidConfig, c.Name, c.Timezone)
	}
	c.Location = loc

	rules, err := timeframe.ParseRuleSet(c.Timeframe)
	if err != nil {
		return fmt.Errorf("%w: customer %s: %v", ErrInvalidConfig, c.Name, err)
	}
	c.Rules = rules

	columns, err := report.ResolveColumns(c.Columns)
	if err != nil {
		return fmt.Errorf("%w: customer %s: %v", ErrInvalidConfig, c.Name, err)
	}
	c.ReportColumns = columns

	return nil
}
