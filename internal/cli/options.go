package cli

import "os"

// Options holds global CLI flags. Empty Supabase values fall back to the environment.
type Options struct {
	EnvFile string
	URL     string
	APIKey  string
	Table   string
	Output  string
	Verbose bool
}

func DefaultOptions() *Options {
	return &Options{
		EnvFile: getEnvOrDefault("PLAYERSTATS_ENV_FILE", ".env"),
		Output:  "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
