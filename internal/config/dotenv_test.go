package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	def := Default()

	assert.Equal(t, def.Port, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, 100, cfg.RegressionSamples)
	assert.Equal(t, def.XAxis, cfg.XAxis)
	assert.Equal(t, def.YAxis, cfg.YAxis)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BASE_URL", "https://quiz.example.com/")
	t.Setenv("DATABASE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")
	t.Setenv("DEFAULT_QUESTION_SECONDS", "45")
	t.Setenv("REGRESSION_SAMPLES", "25")
	t.Setenv("X_LABEL", "Coffee cups")
	t.Setenv("X_MIN", "0")
	t.Setenv("X_MAX", "8")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://quiz.example.com", cfg.BaseURL)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, "postgres://quiz@localhost/quiz", cfg.DatabaseURL)
	assert.Equal(t, 45, cfg.DefaultQuestionSeconds)
	assert.Equal(t, 25, cfg.RegressionSamples)
	assert.Equal(t, Axis{Label: "Coffee cups", Min: 0, Max: 8}, cfg.XAxis)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("REGRESSION_SAMPLES", "1")
	t.Setenv("DEFAULT_QUESTION_SECONDS", "-5")
	t.Setenv("Y_MIN", "50")
	t.Setenv("Y_MAX", "10")

	cfg := Load()
	def := Default()

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, def.RegressionSamples, cfg.RegressionSamples)
	assert.Equal(t, def.DefaultQuestionSeconds, cfg.DefaultQuestionSeconds)
	assert.Equal(t, def.YAxis, cfg.YAxis)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUIZ_TEST_A=from-file\nQUIZ_TEST_B=from-file\n"), 0o644))
	t.Setenv("QUIZ_TEST_A", "from-env")
	t.Cleanup(func() { os.Unsetenv("QUIZ_TEST_B") })

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "from-env", os.Getenv("QUIZ_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("QUIZ_TEST_B"))
}
