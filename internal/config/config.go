package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/boddenberg/dotenv-go/dotenv"
)

// OverrideVar names the variable that points the bootstrap at another
// dotenv file (e.g. .env.test).
const OverrideVar = "TEST_DOTENV_PATH"

// Config holds the settings of the bootstrap caller.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	LogLevel string

	// DotenvPath is the file handed to the loader.
	DotenvPath string

	// MetricsEnabled attaches a Prometheus recorder to the loader.
	MetricsEnabled bool
}

// Load reads configuration from environment variables with defaults.
// root is the directory holding the default .env file.
func Load(root string) *Config {
	return &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DotenvPath:     ResolveDotenvPath(dotenv.Process(), dotenv.Server, root),
		MetricsEnabled: getEnvBool("DOTENV_METRICS", true),
	}
}

// ResolveDotenvPath returns the OverrideVar value from env, then from
// server, falling back to <root>/.env. An override set to "" is still an
// override; it names no file, so nothing gets loaded.
func ResolveDotenvPath(env, server dotenv.Store, root string) string {
	if v, ok := env.Get(OverrideVar); ok {
		return v
	}
	if v, ok := server.Get(OverrideVar); ok {
		return v
	}
	return filepath.Join(root, ".env")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
