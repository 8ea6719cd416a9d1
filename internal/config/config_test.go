package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "KAFKA_BROKERS", "SMTP_PORT", "SQUARE_ACCESS_TOKEN", "SQUARE_LOCATION_ID", "SQUARE_ENVIRONMENT", "RECON_GRACE"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 0, cfg.SMTPPort)
	assert.Equal(t, "sandbox", cfg.SquareEnvironment)
	assert.False(t, cfg.SquareConfigured())
	assert.Equal(t, 30*time.Minute, cfg.ReconGrace)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SQUARE_ACCESS_TOKEN", "tok")
	t.Setenv("SQUARE_LOCATION_ID", "LOC")
	t.Setenv("RECON_GRACE", "90s")
	t.Setenv("STORE_TIMEZONE", "UTC")
	cfg := Load()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.True(t, cfg.SquareConfigured())
	assert.Equal(t, 90*time.Second, cfg.ReconGrace)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "smtp")
	t.Setenv("RECON_SWEEP_INTERVAL", "often")
	cfg := Load()
	assert.Equal(t, 0, cfg.SMTPPort)
	assert.Equal(t, 5*time.Minute, cfg.ReconSweepInterval)
}
