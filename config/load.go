package config

import (
	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
)

// Load reads configuration from the environment. A local .env file is applied
// first when present; missing files are not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
