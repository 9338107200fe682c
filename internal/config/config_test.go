package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Connection: "postgres://localhost/workspace"},
		Auth:     AuthConfig{ServiceToken: "secret"},
		Storage:  StorageConfig{Driver: "local", FilesDir: "./data/files"},
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Driver: "ftp"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_CONNECTION_STRING")
	assert.Contains(t, err.Error(), "WORKSPACE_SERVICE_TOKEN")
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}

func TestValidateS3RequiresEndpointAndBucket(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "s3"
	assert.ErrorContains(t, cfg.Validate(), "S3_ENDPOINT")

	cfg.Storage.S3 = S3Config{Endpoint: "localhost:9000", Bucket: "files"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DB_CONNECTION_STRING", "sqlite:file:test.db")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("BODY_LIMIT_MB", "not-a-number")
	t.Setenv("SEARCH_TIMEOUT_SECONDS", "3")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg := Load()

	assert.Equal(t, "sqlite:file:test.db", cfg.Database.Connection)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, 50, cfg.App.BodyLimitMB)
	assert.Equal(t, 3*time.Second, cfg.Search.Timeout)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.IsProduction())
}
