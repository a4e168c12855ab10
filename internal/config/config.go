package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/playerstats/internal/platform/logging"
)

// Config stores runtime configuration for the player stats store.
type Config struct {
	AppEnv                        string
	ServiceName                   string
	ServiceVersion                string
	LogLevel                      logging.Level
	LogFormat                     string
	SupabaseURL                   string
	SupabaseAnonKey               string
	SupabaseTable                 string
	SupabaseTimeout               time.Duration
	SupabaseCircuitEnabled        bool
	SupabaseCircuitFailureCount   int
	SupabaseCircuitOpenTimeout    time.Duration
	SupabaseCircuitHalfOpenMaxReq int
	UptraceEnabled                bool
	UptraceDSN                    string
}

// Load reads configuration from the environment. Supabase credentials may be empty here;
// the record service rejects them at initialization.
func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormat, err := parseLogFormat(getEnv("APP_LOG_FORMAT", logging.FormatJSON))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	supabaseTimeout, err := time.ParseDuration(getEnv("SUPABASE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SUPABASE_TIMEOUT: %w", err)
	}
	if supabaseTimeout <= 0 {
		return Config{}, fmt.Errorf("SUPABASE_TIMEOUT must be > 0")
	}

	supabaseCircuitEnabled, err := strconv.ParseBool(getEnv("SUPABASE_CIRCUIT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SUPABASE_CIRCUIT_ENABLED: %w", err)
	}
	supabaseCircuitFailureCount, err := getEnvAsInt("SUPABASE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SUPABASE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if supabaseCircuitFailureCount <= 0 {
		return Config{}, fmt.Errorf("SUPABASE_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	supabaseCircuitOpenTimeout, err := time.ParseDuration(getEnv("SUPABASE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SUPABASE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if supabaseCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SUPABASE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	supabaseCircuitHalfOpenMaxReq, err := getEnvAsInt("SUPABASE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SUPABASE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if supabaseCircuitHalfOpenMaxReq <= 0 {
		return Config{}, fmt.Errorf("SUPABASE_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	return Config{
		AppEnv:                        appEnv,
		ServiceName:                   getEnv("APP_SERVICE_NAME", "playerstats"),
		ServiceVersion:                getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                      parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                     logFormat,
		SupabaseURL:                   strings.TrimSpace(getEnv("SUPABASE_URL", "")),
		SupabaseAnonKey:               strings.TrimSpace(getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseTable:                 strings.TrimSpace(getEnv("SUPABASE_TABLE", "player_stats")),
		SupabaseTimeout:               supabaseTimeout,
		SupabaseCircuitEnabled:        supabaseCircuitEnabled,
		SupabaseCircuitFailureCount:   supabaseCircuitFailureCount,
		SupabaseCircuitOpenTimeout:    supabaseCircuitOpenTimeout,
		SupabaseCircuitHalfOpenMaxReq: supabaseCircuitHalfOpenMaxReq,
		UptraceEnabled:                uptraceEnabled,
		UptraceDSN:                    uptraceDSN,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseLogFormat(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case logging.FormatJSON, logging.FormatConsole:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
