package app

import (
	"os"
	"strconv"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/xenking/order-ledger/internal/view"
)

// Command names an orderctl operation.
type Command string

const (
	CommandRecalculate Command = "recalculate"
	CommandDiscount    Command = "discount"
	CommandView        Command = "view"
)

// Config holds the complete application configuration, loadable from
// environment variables (ORDERS_ prefix), flags, or YAML config files.
type Config struct {
	DatabaseURL string      `usage:"PostgreSQL connection URL (ORDERS_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	Command     Command     `default:"view" usage:"Operation to run: recalculate, discount or view"`
	Orders      []string    `usage:"Order IDs to process"`
	Format      view.Format `default:"text" usage:"Detail view format: html, json or text"`
	Currency    string      `default:"₴" usage:"Suffix appended to formatted amounts"`
	Timezone    string      `default:"UTC" usage:"IANA time zone used to display order dates"`
	Concurrency int         `default:"1" usage:"Number of orders processed in parallel"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files and flags, then applies platform-specific defaults and validates
// the result.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "ORDERS",
		Files:     []string{"config.yaml", "/etc/orders/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyPlatformDefaults maps the platform-provided DATABASE_URL to the
// application's ORDERS_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
}

// Validate checks that the configuration can be executed.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL is required: set ORDERS_DATABASE_URL or DATABASE_URL")
	}
	switch c.Command {
	case CommandRecalculate, CommandDiscount, CommandView:
	default:
		return errors.Errorf("unknown command %q", c.Command)
	}
	if _, err := view.ForFormat(c.Format); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.OrderIDs(); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return errors.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	return nil
}

// OrderIDs parses Orders.
func (c *Config) OrderIDs() ([]int64, error) {
	if len(c.Orders) == 0 {
		return nil, errors.New("at least one order ID is required: set --orders")
	}
	ids := make([]int64, len(c.Orders))
	for i, s := range c.Orders {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse order ID %q", s)
		}
		ids[i] = id
	}
	return ids, nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "load timezone %q", c.Timezone)
	}
	return loc, nil
}
