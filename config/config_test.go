package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.StorageBackend)
	assert.Equal(t, "plateful", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfigMemoryBackend(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("CORPUS_PATH", "testdata/recipes.csv")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "testdata/recipes.csv", cfg.CorpusPath)
}

func TestValidateConfigPostgresRequirements(t *testing.T) {
	t.Setenv("ENV", "production")

	err := ValidateConfig(&Config{
		StorageBackend: "postgres",
		DBHost:         "db",
		DBName:         "plateful",
		JWTSecret:      "secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	err = ValidateConfig(&Config{
		StorageBackend: "postgres",
		DBHost:         "db",
		DBName:         "plateful",
		DBPassword:     "pw",
		JWTSecret:      "secret",
	})
	assert.NoError(t, err)
}

func TestValidateConfigMemoryRequirements(t *testing.T) {
	t.Setenv("ENV", "development")

	err := ValidateConfig(&Config{StorageBackend: "memory"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORPUS_PATH")

	err = ValidateConfig(&Config{StorageBackend: "memory", CorpusPath: "data/recipes.csv"})
	assert.NoError(t, err)
}

func TestValidateConfigUnknownBackend(t *testing.T) {
	t.Setenv("ENV", "development")

	err := ValidateConfig(&Config{StorageBackend: "cassandra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestValidateConfigJWTRequiredOutsideDevelopment(t *testing.T) {
	t.Setenv("ENV", "production")

	err := ValidateConfig(&Config{
		StorageBackend: "memory",
		CorpusPath:     "data/recipes.csv",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.True(t, IsTest())

	t.Setenv("ENV", "")
	assert.True(t, IsDevelopment())
}
