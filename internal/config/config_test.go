package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-openai-key")
	t.Setenv("USDA_API_KEY", "test-usda-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "us", cfg.GoogleCloudLocation)
	assert.Equal(t, "./Original-Images", cfg.ImageDir)
	assert.Equal(t, "./Products", cfg.ProductsDir)
	assert.Equal(t, "./recipecards.db", cfg.StateDBPath)
	assert.Equal(t, "gpt-vision", cfg.OCRMethod)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-openai-key")
	t.Setenv("USDA_API_KEY", "test-usda-key")
	t.Setenv("OCR_METHOD", "document-ai")
	t.Setenv("BATCH_SIZE", "10")
	t.Setenv("IMAGE_DIR", "/data/scans")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "document-ai", cfg.OCRMethod)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, "/data/scans", cfg.ImageDir)
}

func TestLoadMissingOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("USDA_API_KEY", "test-usda-key")

	_, err := Load()
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestLoadMissingUSDAKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-openai-key")
	t.Setenv("USDA_API_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "USDA_API_KEY")
}

func TestLoadInvalidBatchSize(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-openai-key")
	t.Setenv("USDA_API_KEY", "test-usda-key")
	t.Setenv("BATCH_SIZE", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "BATCH_SIZE")
}

func TestGetIntEnvInvalidValueFallsBack(t *testing.T) {
	t.Setenv("BATCH_SIZE", "not-a-number")
	assert.Equal(t, 5, getIntEnv("BATCH_SIZE", 5))
}

func TestGetLoggerConfig(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json", LogOutput: "stderr"}
	lc := cfg.GetLoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "stderr", lc.Output)
}
