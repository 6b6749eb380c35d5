// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// seedConfig is the environment read by the seed command.
type seedConfig struct {
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`
	BcryptCost    int    `env:"BCRYPT_COST"    envDefault:"10"`

	AdminEmail    string `env:"SEED_ADMIN_EMAIL"    envDefault:"admin@scribe.local"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD,required,notEmpty"`
	AdminName     string `env:"SEED_ADMIN_NAME"     envDefault:"Admin Master"`
}

// loadSeedConfig parses the seed environment.
func loadSeedConfig() (*seedConfig, error) {
	cfg := &seedConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("seed: failed to parse environment variables: %w", err)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("seed: BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg, nil
}
