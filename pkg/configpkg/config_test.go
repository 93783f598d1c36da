package configpkg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	content := "DB_DRIVER=memory\nSERVER_ADDRESS=127.0.0.1:9090\nTICKER_RATE_INTERVAL=2s\nCORS_ALLOWED_ORIGINS=http://a.test,http://b.test\n"
	err := os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600)
	require.NoError(t, err)

	c, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "memory", c.DBDriver)
	require.Equal(t, "127.0.0.1:9090", c.ServerAddress)
	require.Equal(t, 2*time.Second, c.TickerRateInterval)
	require.Equal(t, 30*time.Second, c.PortfolioRateInterval)
	require.Equal(t, 60, c.RateHistorySize)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSAllowedOrigins)
}

func TestLoadWithoutFile(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "sqlite", c.DBDriver)
	require.Equal(t, time.Second, c.TickerRateInterval)
	require.Equal(t, "300-M", c.RateLimit)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("RATE_HISTORY_SIZE", "10")

	c, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "postgres", c.DBDriver)
	require.Equal(t, 10, c.RateHistorySize)
}
