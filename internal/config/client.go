package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ClientConfig holds the credentials the dashboard client resolves once at
// session start. They are injected into a single gateway client, never
// duplicated per resource.
type ClientConfig struct {
	GatewayURL string `mapstructure:"GATEWAY_URL"`
	APIToken   string `mapstructure:"API_TOKEN"`
	ClinicID   string `mapstructure:"CLINIC_ID"`
}

func LoadClient() (*ClientConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("GATEWAY_URL", "http://localhost:8000")
	v.SetDefault("CLINIC_ID", "default")

	v.BindEnv("GATEWAY_URL")
	v.BindEnv("API_TOKEN")
	v.BindEnv("CLINIC_ID")

	_ = v.ReadInConfig()

	cfg := &ClientConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal client config: %w", err)
	}
	if cfg.GatewayURL == "" {
		return nil, fmt.Errorf("GATEWAY_URL is required")
	}
	return cfg, nil
}
