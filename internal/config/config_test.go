package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/pocket-auth-server/internal/config"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POCKET_CONSUMER_KEY", "1234-abcd")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	c, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "1234-abcd", c.GetConsumerKey())
	require.Equal(t, "https://getpocket.com", c.GetPocketBaseURL())
	require.Equal(t, 10*time.Second, c.GetPocketTimeout())
	require.Equal(t, "redis://localhost:6379/0", c.GetRedisURL())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "console", c.GetLogFormat())
	require.Empty(t, c.GetLogFile())
	require.Equal(t, 5*time.Second, c.GetShutdownTimeout())
	require.Empty(t, c.GetAllowedOrigins())
}

func TestLoad_MissingConsumerKey(t *testing.T) {
	t.Setenv("POCKET_CONSUMER_KEY", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "POCKET_CONSUMER_KEY")
}

func TestLoad_MissingRedisURL(t *testing.T) {
	t.Setenv("POCKET_CONSUMER_KEY", "1234-abcd")
	t.Setenv("REDIS_URL", "")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", ":9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("POCKET_TIMEOUT", "3s")

	c, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, 3*time.Second, c.GetPocketTimeout())
	origins := c.GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("http://a.example"))
	require.True(t, origins.IsAllowedOrigin("http://b.example"))
	require.False(t, origins.IsAllowedOrigin("http://c.example"))
}

func TestLoad_DotEnvFile(t *testing.T) {
	setRequired(t)
	t.Setenv("POCKET_CONSUMER_KEY", "from-environment")

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("POCKET_CONSUMER_KEY=from-file\nAPP_NAME=Dotenv App\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_NAME") })

	c, err := config.Load(file)
	require.NoError(t, err)

	require.Equal(t, "from-environment", c.GetConsumerKey(), "environment wins over .env")
	require.Equal(t, "Dotenv App", c.GetAppName())
}
