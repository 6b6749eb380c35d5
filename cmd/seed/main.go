// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command seed creates or refreshes the bootstrap ADMIN account.
//
// It reads DATABASE_URL, MIGRATION_PATH, BCRYPT_COST and the SEED_ADMIN_*
// variables, runs pending migrations, then upserts the account. It needs no
// signing secret. Running it twice is harmless.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/taibuivan/scribe/internal/platform/constants"
	"github.com/taibuivan/scribe/internal/platform/migration"
	pgstore "github.com/taibuivan/scribe/internal/platform/postgres"
	"github.com/taibuivan/scribe/internal/platform/sec"
	"github.com/taibuivan/scribe/internal/users/account"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", constants.AppName+"-seed"))

	cfg, err := loadSeedConfig()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	hasher, err := sec.NewHasher(cfg.BcryptCost, 1)
	must(log, err, "initialize password hasher")

	admin, created, err := seedAdmin(ctx, account.NewAccountRepository(pool), hasher, adminSeed{
		Email:    cfg.AdminEmail,
		Name:     cfg.AdminName,
		Password: cfg.AdminPassword,
	})
	must(log, err, "seed admin account")

	log.Info("admin_account_seeded",
		slog.Int64("account_id", admin.ID),
		slog.String("email", admin.Email),
		slog.Bool("created", created),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("seed_failure", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
