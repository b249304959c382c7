package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN", "test-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Token)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "flights.db", cfg.Database.SQLitePath)
	assert.Equal(t, "@every 1h", cfg.RankSyncSchedule)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TOKEN", "")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TOKEN=from-file\nREDIS_HOST=cache\n"), 0o600))
	t.Setenv("TOKEN", "")
	t.Setenv("REDIS_HOST", "")
	// godotenv never overrides variables that already exist, so drop them first
	os.Unsetenv("TOKEN")
	os.Unsetenv("REDIS_HOST")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Token)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("TOKEN", "test-token")

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}

func TestValidate_Postgres(t *testing.T) {
	cfg := &Config{
		Database:     Database{Driver: DriverPostgres},
		CommandRate:  1,
		CommandBurst: 5,
	}
	assert.Error(t, cfg.Validate())

	cfg.Database.Host = "db"
	cfg.Database.Name = "logbook"
	cfg.Database.Port = "5432"
	cfg.Database.User = "pilot"
	cfg.Database.Password = "secret"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "postgres://pilot:secret@db:5432/logbook?sslmode=disable", cfg.Database.DSN())
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{Database: Database{Driver: "mysql"}, CommandRate: 1, CommandBurst: 1}
	assert.Error(t, cfg.Validate())
}
