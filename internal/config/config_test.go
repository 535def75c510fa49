package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
user = "beauty"
password = "secret"
dbname = "marketplace"

[payments]
currency = "eur"
platform_fee_bps = 1200

[queue]
enabled = true
url = "https://sqs.eu-central-1.amazonaws.com/1/notifications"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "eur", cfg.Payments.Currency)
	assert.Equal(t, int64(1200), cfg.Payments.PlatformFeeBps)
	assert.Equal(t, int64(290), cfg.Payments.ProcessorFeeBps)
	assert.Equal(t, "@every 1m", cfg.Scheduler.ExpireUnpaidSpec)
	assert.Equal(t, "host=localhost port=5432 user=beauty password=secret dbname=marketplace sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "[database]\nhost = \"\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate_FeeBounds(t *testing.T) {
	cfg := defaults()
	cfg.Database.Host = "db"
	cfg.Database.DBName = "m"
	require.NoError(t, cfg.Validate())

	cfg.Payments.PlatformFeeBps = 10001
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
