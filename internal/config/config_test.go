package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func required() map[string]string {
	return map[string]string{
		"TELEGRAM_TOKEN": "123:abc",
		"DB_DSN":         "postgres://localhost/appointments",
		"BACKEND_URL":    "https://clinic.example/",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(required()))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://clinic.example", cfg.BackendURL)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "03:04 PM", cfg.SlotTimeLayout)
	assert.Equal(t, "$", cfg.CurrencySymbol)
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, 5*time.Minute, cfg.DoctorsRefreshInterval)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.False(t, cfg.PaymentsEnabled())
}

func TestFromEnvRequired(t *testing.T) {
	for _, key := range []string{"TELEGRAM_TOKEN", "DB_DSN", "BACKEND_URL"} {
		values := required()
		delete(values, key)

		_, err := FromEnv(env(values))
		assert.ErrorContains(t, err, key)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	values := required()
	values["TIMEZONE"] = "UTC"
	values["SLOT_TIME_LAYOUT"] = "3:04 PM"
	values["DOCTORS_REFRESH_INTERVAL"] = "90s"
	values["RATE_LIMIT_PER_MINUTE"] = "20"
	values["STRIPE_SECRET_KEY"] = "sk_test_1"
	values["PAYMENT_SUCCESS_URL"] = "https://clinic.example/paid"
	values["PAYMENT_CANCEL_URL"] = "https://clinic.example/my-appointments"

	cfg, err := FromEnv(env(values))
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "3:04 PM", cfg.SlotTimeLayout)
	assert.Equal(t, 90*time.Second, cfg.DoctorsRefreshInterval)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.True(t, cfg.PaymentsEnabled())
}

func TestFromEnvInvalid(t *testing.T) {
	cases := map[string]string{
		"TIMEZONE":                 "Mars/Olympus",
		"DOCTORS_REFRESH_INTERVAL": "soon",
		"RATE_LIMIT_PER_MINUTE":    "-1",
		"STRIPE_SECRET_KEY":        "sk_test_without_urls",
	}

	for key, value := range cases {
		values := required()
		values[key] = value

		_, err := FromEnv(env(values))
		assert.Error(t, err, key)
	}
}
