package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomerJSON() map[string]any {
	return map[string]any{
		"name":     "Acme",
		"timezone": "America/Chicago",
		"email_to": []string{"noc@acme.example"},
		"netcloud_api": map[string]string{
			"cp_api_id":   "cp-id",
			"cp_api_key":  "cp-key",
			"ecm_api_id":  "ecm-id",
			"ecm_api_key": "ecm-key",
		},
		"timeframe": map[string][]string{"monday": {"08:00-18:00"}},
	}
}

func writeCustomersFile(t *testing.T, content any) string {
	t.Helper()

	raw, err := json.Marshal(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nc_fail")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	return path
}

func TestLoadCustomers(t *testing.T) {
	t.Run("plain array form", func(t *testing.T) {
		path := writeCustomersFile(t, []any{validCustomerJSON()})

		customers, err := LoadCustomers(path)
		require.NoError(t, err)
		require.Len(t, customers, 1)

		customer := customers[0]
		assert.Equal(t, "Acme", customer.Name)
		assert.Equal(t, "America/Chicago", customer.Location.String())
		assert.True(t, customer.Rules.Enabled())
		require.Len(t, customer.ReportColumns, 5, "default columns apply when none configured")

		// Monday 09:00 local is inside production hours.
		assert.True(t, customer.Rules.Matches(time.Date(2024, 5, 6, 9, 0, 0, 0, customer.Location), customer.Location))
	})

	t.Run("vault envelope form", func(t *testing.T) {
		inner, err := json.Marshal([]any{validCustomerJSON()})
		require.NoError(t, err)

		path := writeCustomersFile(t, map[string]any{
			"data": map[string]any{"customer_configs": string(inner)},
		})

		customers, err := LoadCustomers(path)
		require.NoError(t, err)
		assert.Len(t, customers, 1)
	})

	t.Run("explicit columns override the default order", func(t *testing.T) {
		customer := validCustomerJSON()
		customer["columns"] = []string{"failover_timestamp", "router_name"}
		path := writeCustomersFile(t, []any{customer})

		customers, err := LoadCustomers(path)
		require.NoError(t, err)
		require.Len(t, customers[0].ReportColumns, 2)
		assert.Equal(t, "Failover Timestamp", customers[0].ReportColumns[0].Label)
	})

	t.Run("invalid configs fail fast", func(t *testing.T) {
		breakages := map[string]func(customer map[string]any){
			"unknown timezone":    func(c map[string]any) { c["timezone"] = "Mars/Olympus" },
			"missing timezone":    func(c map[string]any) { delete(c, "timezone") },
			"malformed timeframe": func(c map[string]any) { c["timeframe"] = map[string][]string{"monday": {"18:00-08:00"}} },
			"unknown column":      func(c map[string]any) { c["columns"] = []string{"bogus"} },
			"missing credentials": func(c map[string]any) { delete(c, "netcloud_api") },
			"empty name":          func(c map[string]any) { c["name"] = "" },
		}

		for name, breakage := range breakages {
			t.Run(name, func(t *testing.T) {
				customer := validCustomerJSON()
				breakage(customer)
				path := writeCustomersFile(t, []any{customer})

				_, err := LoadCustomers(path)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			})
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadCustomers(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("empty array errors", func(t *testing.T) {
		path := writeCustomersFile(t, []any{})

		_, err := LoadCustomers(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
