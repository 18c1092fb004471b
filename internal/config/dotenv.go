package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Axis describes one numeric prompt on the data collection page.
type Axis struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type Config struct {
	Port                     string
	BaseURL                  string
	DatabaseDriver           string
	DatabaseURL              string
	AutoMigrate              bool
	DefaultQuestionSeconds   int
	MaxQuestionSeconds       int
	RegressionSamples        int
	XAxis                    Axis
	YAxis                    Axis
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	LogLevel                 string
	GinMode                  string
}

func Default() Config {
	return Config{
		Port:                     "8080",
		BaseURL:                  "http://localhost:8080",
		DatabaseDriver:           DriverSQLite,
		DatabaseURL:              "quizitup.db",
		AutoMigrate:              true,
		DefaultQuestionSeconds:   30,
		MaxQuestionSeconds:       3600,
		RegressionSamples:        100,
		XAxis:                    Axis{Label: "Sleep hours", Min: 0, Max: 12},
		YAxis:                    Axis{Label: "Energy level", Min: 0, Max: 100},
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		LogLevel:                 "info",
		GinMode:                  "release",
	}
}

// Load reads configuration from the environment on top of Default.
// Invalid values fall back to their defaults.
func Load() Config {
	def := Default()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", def.Port)
	v.SetDefault("BASE_URL", def.BaseURL)
	v.SetDefault("DATABASE_DRIVER", def.DatabaseDriver)
	v.SetDefault("DATABASE_URL", def.DatabaseURL)
	v.SetDefault("AUTO_MIGRATE", def.AutoMigrate)
	v.SetDefault("DEFAULT_QUESTION_SECONDS", def.DefaultQuestionSeconds)
	v.SetDefault("MAX_QUESTION_SECONDS", def.MaxQuestionSeconds)
	v.SetDefault("REGRESSION_SAMPLES", def.RegressionSamples)
	v.SetDefault("X_LABEL", def.XAxis.Label)
	v.SetDefault("X_MIN", def.XAxis.Min)
	v.SetDefault("X_MAX", def.XAxis.Max)
	v.SetDefault("Y_LABEL", def.YAxis.Label)
	v.SetDefault("Y_MIN", def.YAxis.Min)
	v.SetDefault("Y_MAX", def.YAxis.Max)
	v.SetDefault("DB_MAX_OPEN_CONNS", def.DBMaxOpenConns)
	v.SetDefault("DB_MAX_IDLE_CONNS", def.DBMaxIdleConns)
	v.SetDefault("DB_CONN_MAX_LIFETIME_SECONDS", def.DBConnMaxLifetimeSeconds)
	v.SetDefault("DB_CONN_MAX_IDLE_SECONDS", def.DBConnMaxIdleTimeSeconds)
	v.SetDefault("LOG_LEVEL", def.LogLevel)
	v.SetDefault("GIN_MODE", def.GinMode)

	cfg := def
	cfg.Port = strings.TrimSpace(v.GetString("PORT"))
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(v.GetString("BASE_URL")), "/")
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER")))
	cfg.DatabaseURL = strings.TrimSpace(v.GetString("DATABASE_URL"))
	cfg.AutoMigrate = v.GetBool("AUTO_MIGRATE")
	cfg.LogLevel = v.GetString("LOG_LEVEL")
	cfg.GinMode = v.GetString("GIN_MODE")

	if value := v.GetInt("DEFAULT_QUESTION_SECONDS"); value > 0 {
		cfg.DefaultQuestionSeconds = value
	}
	if value := v.GetInt("MAX_QUESTION_SECONDS"); value > 0 {
		cfg.MaxQuestionSeconds = value
	}
	if value := v.GetInt("REGRESSION_SAMPLES"); value >= 2 {
		cfg.RegressionSamples = value
	}
	if value := v.GetInt("DB_MAX_OPEN_CONNS"); value > 0 {
		cfg.DBMaxOpenConns = value
	}
	if value := v.GetInt("DB_MAX_IDLE_CONNS"); value > 0 {
		cfg.DBMaxIdleConns = value
	}
	if value := v.GetInt("DB_CONN_MAX_LIFETIME_SECONDS"); value > 0 {
		cfg.DBConnMaxLifetimeSeconds = value
	}
	if value := v.GetInt("DB_CONN_MAX_IDLE_SECONDS"); value > 0 {
		cfg.DBConnMaxIdleTimeSeconds = value
	}

	cfg.XAxis = loadAxis(v, "X", def.XAxis)
	cfg.YAxis = loadAxis(v, "Y", def.YAxis)

	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if cfg.DatabaseDriver != DriverSQLite && cfg.DatabaseDriver != DriverPostgres {
		cfg.DatabaseDriver = def.DatabaseDriver
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = def.DatabaseURL
	}
	if cfg.DefaultQuestionSeconds > cfg.MaxQuestionSeconds {
		cfg.DefaultQuestionSeconds = cfg.MaxQuestionSeconds
	}
	return cfg
}

func loadAxis(v *viper.Viper, prefix string, fallback Axis) Axis {
	axis := Axis{
		Label: strings.TrimSpace(v.GetString(prefix + "_LABEL")),
		Min:   v.GetFloat64(prefix + "_MIN"),
		Max:   v.GetFloat64(prefix + "_MAX"),
	}
	if axis.Label == "" {
		axis.Label = fallback.Label
	}
	if axis.Min >= axis.Max {
		axis.Min = fallback.Min
		axis.Max = fallback.Max
	}
	return axis
}
