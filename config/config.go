package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jsphweid/notestore/store"
)

const (
	EnvBackend     = "NOTESTORE_BACKEND"
	EnvAddr        = "NOTESTORE_ADDR"
	EnvCORSOrigins = "NOTESTORE_CORS_ORIGINS"
	EnvLogDebounce = "NOTESTORE_LOG_DEBOUNCE"
)

type Config struct {
	Backend     store.Kind
	Addr        string
	CORSOrigins []string
	LogDebounce time.Duration
}

func Default() Config {
	return Config{
		Backend:     store.KindIndexed,
		Addr:        ":8080",
		CORSOrigins: []string{"*"},
		LogDebounce: 500 * time.Millisecond,
	}
}

// Load starts from Default and applies any NOTESTORE_* environment overrides.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv(EnvBackend); v != "" {
		kind, err := store.ParseKind(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvBackend, err)
		}
		cfg.Backend = kind
	}
	if v := getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := getenv(EnvCORSOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
	if v := getenv(EnvLogDebounce); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogDebounce, err)
		}
		cfg.LogDebounce = d
	}
	return cfg, nil
}
