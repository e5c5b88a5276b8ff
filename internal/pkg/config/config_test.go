package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("DB_USER", "pos")
	t.Setenv("DB_PASSWORD", "pos")
	t.Setenv("DB_NAME", "pos")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.CashCut.KeyBucket)
	assert.Equal(t, "America/Mexico_City", cfg.CashCut.Location().String())
}

func TestLoadConfig_RejectsInvalidCashCutSettings(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr string
	}{
		{name: "zero key bucket", env: "CASHCUT_KEY_BUCKET", value: "0s", wantErr: "CASHCUT_KEY_BUCKET"},
		{name: "zero wait timeout", env: "CASHCUT_WAIT_TIMEOUT", value: "0s", wantErr: "CASHCUT_WAIT_TIMEOUT"},
		{name: "negative operation timeout", env: "CASHCUT_OPERATION_TIMEOUT", value: "-5s", wantErr: "CASHCUT_OPERATION_TIMEOUT"},
		{name: "misspelled time zone", env: "BUSINESS_TIMEZONE", value: "America/Mexico_Cty", wantErr: "BUSINESS_TIMEZONE"},
		{name: "unknown store", env: "CASHCUT_STORE", value: "sqlite", wantErr: "CASHCUT_STORE"},
		{name: "unknown idempotency backend", env: "IDEMPOTENCY_BACKEND", value: "memcached", wantErr: "IDEMPOTENCY_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.env, tt.value)

			_, err := LoadConfig()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewTestConfig_IsValid(t *testing.T) {
	assert.NoError(t, NewTestConfig().validate())
}
