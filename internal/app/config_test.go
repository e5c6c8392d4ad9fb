package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabaseURL: "postgres://localhost/orders",
		Command:     CommandView,
		Orders:      []string{"1", "2"},
		Format:      "text",
		Currency:    "₴",
		Timezone:    "UTC",
		Concurrency: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.DatabaseURL = "" },
			wantErr: "database URL is required",
		},
		{
			name:    "unknown command",
			mutate:  func(c *Config) { c.Command = "delete" },
			wantErr: `unknown command "delete"`,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "pdf" },
			wantErr: "unsupported format",
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr: "load timezone",
		},
		{
			name:    "no orders",
			mutate:  func(c *Config) { c.Orders = nil },
			wantErr: "at least one order ID",
		},
		{
			name:    "non-numeric order",
			mutate:  func(c *Config) { c.Orders = []string{"abc"} },
			wantErr: `parse order ID "abc"`,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: "concurrency must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_PlatformDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://platform/orders")

	cfg := validConfig()
	cfg.DatabaseURL = ""
	cfg.applyPlatformDefaults()
	assert.Equal(t, "postgres://platform/orders", cfg.DatabaseURL)

	cfg.DatabaseURL = "postgres://explicit/orders"
	cfg.applyPlatformDefaults()
	assert.Equal(t, "postgres://explicit/orders", cfg.DatabaseURL)
}

func TestConfig_OrderIDs(t *testing.T) {
	cfg := validConfig()
	cfg.Orders = []string{"7", "42"}

	ids, err := cfg.OrderIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 42}, ids)
}
