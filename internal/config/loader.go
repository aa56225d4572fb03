package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "STOREFRONT_"

// Sources lists where configuration is read from, lowest priority first:
// defaults, the yaml file, the .env file, then the process environment.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

func DefaultSources() Sources {
	return Sources{ConfigFile: "config.yaml", EnvFile: ".env"}
}

func Load(src Sources) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("k.Load defaults: %w", err)
	}

	if src.ConfigFile != "" {
		if err := k.Load(file.Provider(src.ConfigFile), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("k.Load %s: %w", src.ConfigFile, err)
		}
	}

	if src.EnvFile != "" {
		envFileMap, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			envMap := make(map[string]any, len(envFileMap))
			for key, value := range envFileMap {
				if strings.HasPrefix(key, EnvPrefix) {
					envMap[envKey(key)] = value
				}
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				return Config{}, fmt.Errorf("k.Load %s: %w", src.EnvFile, err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("godotenv.Read: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("k.Load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("k.Unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

// envKey maps STOREFRONT_PRICING_DISCOUNT_RATE to pricing.discount_rate:
// the first underscore after the prefix separates the section.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func defaults() map[string]any {
	return map[string]any{
		"log.level":             "info",
		"log.format":            "json",
		"storage.backend":       BackendFile,
		"storage.namespace":     "megamart_",
		"storage.dir":           defaultDataDir(),
		"storage.async":         false,
		"redis.db":              0,
		"pricing.currency":      "BDT",
		"pricing.discount_rate": "0.2",
		"pricing.shipping_fee":  "5",
		"pricing.delivery_fee":  "15",
		"cart.merge_policy":     "refresh",
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "storefront"
	}
	return ".storefront"
}

