package session

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr     string `mapstructure:"Addr"`
	Password string `mapstructure:"Password"`
	DB       int    `mapstructure:"DB"`
	// TTLMinutes - время жизни сессии, продлевается активностью
	TTLMinutes int `mapstructure:"TTLMinutes"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.BindEnv("Addr", "REDIS_ADDR")
	v.BindEnv("Password", "REDIS_PASSWORD")
	v.BindEnv("DB", "REDIS_DB")
	v.BindEnv("TTLMinutes", "SESSION_TTL_MINUTES")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}

	if cfg.Addr == "" {
		cfg.Addr = v.GetString("REDIS_ADDR")
	}
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.TTLMinutes == 0 {
		cfg.TTLMinutes = 60
	}

	return &cfg, nil
}

func (c *Config) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}
