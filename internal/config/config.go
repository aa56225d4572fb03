package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Log      LogConfig      `koanf:"log"`
	Storage  StorageConfig  `koanf:"storage"`
	Redis    RedisConfig    `koanf:"redis"`
	Postgres PostgresConfig `koanf:"postgres"`
	Pricing  PricingConfig  `koanf:"pricing"`
	Cart     CartConfig     `koanf:"cart"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type StorageConfig struct {
	Backend   string `koanf:"backend"`
	Namespace string `koanf:"namespace"`
	Dir       string `koanf:"dir"`
	Async     bool   `koanf:"async"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type PostgresConfig struct {
	URL string `koanf:"url"`
}

type PricingConfig struct {
	Currency     string `koanf:"currency"`
	DiscountRate string `koanf:"discount_rate"`
	ShippingFee  string `koanf:"shipping_fee"`
	DeliveryFee  string `koanf:"delivery_fee"`
}

type CartConfig struct {
	MergePolicy string `koanf:"merge_policy"`
}

func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Storage.Dir == "" {
			errs = append(errs, errors.New("storage.dir is required for the file backend"))
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for the redis backend"))
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("postgres.url is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend[%s] is not valid", c.Storage.Backend))
	}

	if _, err := c.Pricing.Unit(); err != nil {
		errs = append(errs, err)
	}

	if rate, err := decimal.NewFromString(c.Pricing.DiscountRate); err != nil {
		errs = append(errs, fmt.Errorf("pricing.discount_rate[%s] is not valid: %w", c.Pricing.DiscountRate, err))
	} else if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("pricing.discount_rate[%s] must be in [0,1)", c.Pricing.DiscountRate))
	}

	for name, fee := range map[string]string{"shipping_fee": c.Pricing.ShippingFee, "delivery_fee": c.Pricing.DeliveryFee} {
		if d, err := decimal.NewFromString(fee); err != nil || d.IsNegative() {
			errs = append(errs, fmt.Errorf("pricing.%s[%s] must be a non-negative number", name, fee))
		}
	}

	switch c.Cart.MergePolicy {
	case "", "refresh", "keep":
	default:
		errs = append(errs, fmt.Errorf("cart.merge_policy[%s] is not valid", c.Cart.MergePolicy))
	}

	return errors.Join(errs...)
}

func (p PricingConfig) Unit() (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(p.Currency))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("pricing.currency[%s] is not valid: %w", p.Currency, err)
	}
	return unit, nil
}

// The accessors below assume Validate passed.

func (p PricingConfig) Discount() decimal.Decimal {
	return decimal.RequireFromString(p.DiscountRate)
}

func (p PricingConfig) Shipping() decimal.Decimal {
	return decimal.RequireFromString(p.ShippingFee)
}

func (p PricingConfig) Delivery() decimal.Decimal {
	return decimal.RequireFromString(p.DeliveryFee)
}

// String renders the configuration without secrets.
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "log: level=%s format=%s\n", c.Log.Level, c.Log.Format)
	fmt.Fprintf(&b, "storage: backend=%s namespace=%s dir=%s async=%t\n", c.Storage.Backend, c.Storage.Namespace, c.Storage.Dir, c.Storage.Async)
	fmt.Fprintf(&b, "redis: addr=%s db=%d\n", c.Redis.Addr, c.Redis.DB)
	fmt.Fprintf(&b, "pricing: currency=%s discount_rate=%s shipping_fee=%s delivery_fee=%s\n",
		c.Pricing.Currency, c.Pricing.DiscountRate, c.Pricing.ShippingFee, c.Pricing.DeliveryFee)
	fmt.Fprintf(&b, "cart: merge_policy=%s\n", c.Cart.MergePolicy)
	return b.String()
}
