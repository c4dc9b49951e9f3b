package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, yaml string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	return path
}

const minimalYAML = `
email:
  base_url: https://email.internal
  api_key: secret
report:
  inbox: reports@example.com
`

func TestLoadConfig(t *testing.T) {
	t.Run("defaults apply on top of a minimal file", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfigFile(t, minimalYAML), nil)
		require.NoError(t, err)

		assert.Equal(t, "https://www.cradlepointecm.com/api/v2", cfg.NetCloud.BaseURL)
		assert.Equal(t, 100, cfg.NetCloud.PageSize)
		assert.Equal(t, 30, cfg.NetCloud.RequestTimeoutSeconds)
		assert.Equal(t, "reports", cfg.Report.Directory)
		assert.Equal(t, "FREQ=MONTHLY;BYMONTHDAY=1", cfg.Report.WindowRRule)
		assert.Equal(t, "/vault/secrets/nc_fail", cfg.Customers.Path)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "reports@example.com", cfg.Report.Inbox)
	})

	t.Run("flags override the file", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfigFile(t, minimalYAML), []string{
			"-customers-path", "/tmp/custom", "-log-level", "debug",
		})
		require.NoError(t, err)

		assert.Equal(t, "/tmp/custom", cfg.Customers.Path)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("env overrides the file", func(t *testing.T) {
		t.Setenv("REPORTING_INBOX", "other@example.com")

		cfg, err := LoadConfig(writeConfigFile(t, minimalYAML), nil)
		require.NoError(t, err)

		assert.Equal(t, "other@example.com", cfg.Report.Inbox)
	})

	t.Run("missing email settings fail validation", func(t *testing.T) {
		_, err := LoadConfig(writeConfigFile(t, "report:\n  inbox: reports@example.com\n"), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad window rrule fails validation", func(t *testing.T) {
		_, err := LoadConfig(writeConfigFile(t, minimalYAML), []string{"-window-rrule", "FREQ=SOMETIMES"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
