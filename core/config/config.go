package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"wallet-state/core/database"
	"wallet-state/core/hydrate"
	"wallet-state/core/logger"
	"wallet-state/core/server"
	"wallet-state/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service, one section per package.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage selects the medium holding persisted snapshots.
	Storage storage.Config `mapstructure:"storage"`
	// Redis holds configuration for the Redis medium.
	Redis storage.RedisConfig `mapstructure:"redis"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection used by the sql medium.
	Database database.Config `mapstructure:"database"`
	// Hydration holds the wallet state settings.
	Hydration hydrate.Config `mapstructure:"hydration"`
}

// LoadConfig reads the .env file in path (when present) and the environment,
// fills unset keys from the struct defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	envPath := ".env"
	if path != "." {
		envPath = filepath.Join(path, ".env")
	}
	// Missing .env is normal outside development.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// hydration.grace_period <- HYDRATION_GRACE_PERIOD
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Medium {
	case storage.MediumMemory, storage.MediumSQL, storage.MediumRedis, storage.MediumObject:
	case storage.MediumCookie:
		return fmt.Errorf("config: storage.medium %q is request scoped and cannot back the service", c.Storage.Medium)
	default:
		return fmt.Errorf("config: unknown storage.medium %q", c.Storage.Medium)
	}

	h := c.Hydration
	if strings.TrimSpace(h.StorageKey) == "" {
		return errors.New("config: hydration.storage_key must not be empty")
	}
	if h.GracePeriod < 0 || h.Throttle < 0 || h.PersistDebounce < 0 {
		return errors.New("config: hydration durations must not be negative")
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
