// Package config loads the API settings from the environment (optionally via
// a .env file) and the planner constants from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"lg/fitpulse-api/internal/nutrition"
)

const (
	defaultPort         = 3000
	defaultPlanCacheTTL = 24 * time.Hour
)

type Config struct {
	DBURL string
	Port  int

	// logging
	LogLevel    string
	LogFile     string
	LogJSON     bool
	LogToStdout bool
	Environment string
	SentryDSN   string

	CORSAllowedOrigins []string
	PlanCacheTTL       time.Duration

	// PlannerConfigPath is an optional TOML file overriding the planner constants.
	PlannerConfigPath string
	Planner           nutrition.Settings
}

// plannerFile is the TOML layout of the planner file. Absent keys keep
// their defaults.
type plannerFile struct {
	Meals *struct {
		BreakfastShare *float64 `toml:"breakfast_share"`
		LunchShare     *float64 `toml:"lunch_share"`
		DinnerShare    *float64 `toml:"dinner_share"`
		SnackShare     *float64 `toml:"snack_share"`
	} `toml:"meals"`
	Portions *struct {
		MaxPortionG *int `toml:"max_portion_g"`
		MinMacroG   *int `toml:"min_macro_g"`
	} `toml:"portions"`
	Bands map[string]nutrition.CalorieBand `toml:"bands"`
}

// Load reads .env if present, then the environment. A missing .env is fine;
// a malformed one is not.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function, normally os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBURL:             getenv("DB_URL"),
		Port:              defaultPort,
		LogLevel:          getenv("LOG_LEVEL"),
		LogFile:           getenv("LOG_FILE"),
		Environment:       getenv("ENVIRONMENT"),
		SentryDSN:         getenv("SENTRY_DSN"),
		PlanCacheTTL:      defaultPlanCacheTTL,
		PlannerConfigPath: getenv("PLANNER_CONFIG"),
		Planner:           nutrition.DefaultSettings(),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	var err error
	if v := getenv("PORT"); v != "" {
		if cfg.Port, err = strconv.Atoi(v); err != nil || cfg.Port <= 0 {
			return nil, fmt.Errorf("invalid PORT %q", v)
		}
	}
	if cfg.LogJSON, err = parseBool(getenv("LOG_JSON"), false); err != nil {
		return nil, fmt.Errorf("invalid LOG_JSON: %w", err)
	}
	if cfg.LogToStdout, err = parseBool(getenv("LOG_TO_STDOUT"), true); err != nil {
		return nil, fmt.Errorf("invalid LOG_TO_STDOUT: %w", err)
	}
	if v := getenv("PLAN_CACHE_TTL"); v != "" {
		if cfg.PlanCacheTTL, err = time.ParseDuration(v); err != nil || cfg.PlanCacheTTL <= 0 {
			return nil, fmt.Errorf("invalid PLAN_CACHE_TTL %q", v)
		}
	}
	for _, origin := range strings.Split(getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.PlannerConfigPath != "" {
		if cfg.Planner, err = LoadPlannerSettings(cfg.PlannerConfigPath); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadPlannerSettings decodes a planner TOML file over the defaults and
// validates the result.
func LoadPlannerSettings(path string) (nutrition.Settings, error) {
	var f plannerFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nutrition.Settings{}, fmt.Errorf("read planner config %s: %w", path, err)
	}

	s := nutrition.DefaultSettings()
	if m := f.Meals; m != nil {
		setIfPresent(&s.BreakfastShare, m.BreakfastShare)
		setIfPresent(&s.LunchShare, m.LunchShare)
		setIfPresent(&s.DinnerShare, m.DinnerShare)
		setIfPresent(&s.SnackShare, m.SnackShare)
	}
	if p := f.Portions; p != nil {
		setIfPresent(&s.MaxPortionG, p.MaxPortionG)
		setIfPresent(&s.MinMacroG, p.MinMacroG)
	}
	if len(f.Bands) > 0 {
		s.Bands = make(map[string]nutrition.CalorieBand, len(f.Bands))
		for name, band := range f.Bands {
			s.Bands[strings.ToLower(name)] = band
		}
	}

	if err := s.Validate(); err != nil {
		return nutrition.Settings{}, fmt.Errorf("planner config %s: %w", path, err)
	}
	return s, nil
}

func setIfPresent[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func parseBool(v string, fallback bool) (bool, error) {
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseBool(v)
}
