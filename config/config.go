package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Network holds the per-chain connection settings.
type Network struct {
	RPCUrl     string `mapstructure:"rpc_url"`
	PrivateKey string `mapstructure:"private_key"`
}

// Config holds the application configuration
type Config struct {
	// Networks maps chain name (ethereum, bsc, ...) to its settings.
	Networks map[string]Network `mapstructure:"networks"`
	// Debug exposes raw error messages instead of the safe ones.
	Debug bool `mapstructure:"debug"`
	// GasBufferPct pads gas reserves when computing spendable balances.
	GasBufferPct int `mapstructure:"gas_buffer_pct"`
}

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".wallet-swap")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("debug", false)
	viper.SetDefault("gas_buffer_pct", 10)

	// Read from environment variables
	viper.SetEnvPrefix("WALLET_SWAP")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Network returns the settings for one chain, erroring when unset.
func (c *Config) Network(chain string) (Network, error) {
	n, ok := c.Networks[chain]
	if !ok || n.RPCUrl == "" {
		return Network{}, fmt.Errorf("network %s not configured; set networks.%s.rpc_url in .wallet-swap.yaml", chain, chain)
	}
	return n, nil
}
