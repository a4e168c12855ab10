package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/playerstats/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("APP_LOG_FORMAT", "")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("SUPABASE_TABLE", "")
	t.Setenv("SUPABASE_TIMEOUT", "")
	t.Setenv("SUPABASE_CIRCUIT_ENABLED", "")
	t.Setenv("UPTRACE_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.SupabaseTable != "player_stats" {
		t.Fatalf("unexpected SupabaseTable: %q", cfg.SupabaseTable)
	}
	if cfg.SupabaseTimeout != 15*time.Second {
		t.Fatalf("unexpected SupabaseTimeout: %s", cfg.SupabaseTimeout)
	}
	if cfg.SupabaseCircuitEnabled {
		t.Fatalf("expected circuit breaker disabled by default")
	}
	if cfg.SupabaseCircuitFailureCount != 5 || cfg.SupabaseCircuitHalfOpenMaxReq != 2 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelInfo || cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected log settings: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.SupabaseURL != "" || cfg.SupabaseAnonKey != "" {
		t.Fatalf("expected empty credentials by default")
	}
}

func TestLoad_SupabaseSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("APP_LOG_FORMAT", "console")
	t.Setenv("SUPABASE_URL", " https://abc.supabase.co ")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_TABLE", "stats_v2")
	t.Setenv("SUPABASE_TIMEOUT", "3s")
	t.Setenv("SUPABASE_CIRCUIT_ENABLED", "true")
	t.Setenv("SUPABASE_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("SUPABASE_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("SUPABASE_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SupabaseURL != "https://abc.supabase.co" {
		t.Fatalf("unexpected SupabaseURL: %q", cfg.SupabaseURL)
	}
	if cfg.SupabaseAnonKey != "anon-key" || cfg.SupabaseTable != "stats_v2" {
		t.Fatalf("unexpected credentials: %+v", cfg)
	}
	if cfg.SupabaseTimeout != 3*time.Second {
		t.Fatalf("unexpected SupabaseTimeout: %s", cfg.SupabaseTimeout)
	}
	if !cfg.SupabaseCircuitEnabled || cfg.SupabaseCircuitFailureCount != 3 ||
		cfg.SupabaseCircuitOpenTimeout != 30*time.Second || cfg.SupabaseCircuitHalfOpenMaxReq != 1 {
		t.Fatalf("unexpected circuit settings: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelDebug || cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("unexpected log settings: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "timeout not a duration", key: "SUPABASE_TIMEOUT", value: "soon"},
		{name: "timeout not positive", key: "SUPABASE_TIMEOUT", value: "-1s"},
		{name: "failure count not positive", key: "SUPABASE_CIRCUIT_FAILURE_COUNT", value: "0"},
		{name: "failure count not a number", key: "SUPABASE_CIRCUIT_FAILURE_COUNT", value: "many"},
		{name: "circuit flag not a bool", key: "SUPABASE_CIRCUIT_ENABLED", value: "maybe"},
		{name: "log format unknown", key: "APP_LOG_FORMAT", value: "xml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}
