package config_test

import (
	"testing"

	"github.com/harmonode/qobuz/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := config.New()

	require.Equal(t, "https://www.qobuz.com/api.json/0.2/", c.GetBaseURL())
	require.Equal(t, "5", c.GetFormatID())
	require.NotZero(t, c.GetRequestTimeout())
	require.NotEmpty(t, c.GetUserAgent())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QOBUZ_BASE_URL", "http://localhost:9999/api/")
	t.Setenv("QOBUZ_APP_ID", "my-app")
	t.Setenv("QOBUZ_DEVICE_ID", "device-9")

	c := config.New()
	require.Equal(t, "http://localhost:9999/api/", c.GetBaseURL())
	require.Equal(t, "my-app", c.GetAppID())
	require.Equal(t, "device-9", c.GetDeviceID())
}

func TestDeviceIDGeneratedWhenUnset(t *testing.T) {
	t.Setenv("QOBUZ_DEVICE_ID", "")

	c := config.New()
	require.NotEmpty(t, c.GetDeviceID())
}
