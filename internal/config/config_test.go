package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TokenTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfig_FileAndSecrets(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yml := `
server:
  port: 9090
database:
  host: db.internal
  password: from-file
weather:
  cache_ttl: 1m
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("BELLBELL_DATABASE_PASSWORD", "from-env")
	t.Setenv("BELLBELL_WEATHER_SERVICE_KEY", "key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "key", cfg.Weather.ServiceKey)
	assert.Equal(t, time.Minute, cfg.Weather.CacheTTL)
}

func TestDatabaseConfig_DSNAndURL(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss", Name: "bellbell", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p@ss dbname=bellbell sslmode=disable", c.DSN())
	assert.Equal(t, "postgres://u:p%40ss@h:5432/bellbell?sslmode=disable", c.URL())
}
