package server

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by [LoadConfig].
const EnvPrefix = "SIGHTLINE"

// Config holds the server settings. Each field is read from
// SIGHTLINE_<NAME>, e.g. SIGHTLINE_ADDR or SIGHTLINE_REDIS_ADDR.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// RedisAddr enables the shared Redis cache and session store. When empty
	// the server keeps sessions in memory and caches on disk.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"2h"`

	// CacheDir is used for the file cache when Redis is not configured.
	// Empty selects the user cache directory.
	CacheDir string `envconfig:"CACHE_DIR"`
	NoCache  bool   `envconfig:"NO_CACHE" default:"false"`
}

// LoadConfig reads the configuration from the environment. If envFile is
// set and exists, its variables are loaded first without overriding ones
// already present in the environment.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
