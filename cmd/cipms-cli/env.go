package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/target/cipms/config"
	"github.com/target/cipms/internal/adapters/sqlite"
	"github.com/target/cipms/internal/bootstrap"
	"github.com/target/cipms/internal/core"
	"github.com/target/cipms/internal/devseed"
	"github.com/target/cipms/internal/ports"
	"github.com/target/cipms/internal/service"
)

// cliEnv is the wiring one command invocation runs against.
type cliEnv struct {
	Credentials ports.CredentialSource
	Verifier    ports.PasswordVerifier
	Storage     ports.KeyValueStore
	Dashboard   *service.DashboardService
	Logger      *slog.Logger
	Close       func() error
}

type envOptions struct {
	DBPath  string
	Verbose bool
}

// envOpener builds the environment for a command. Tests substitute their own.
type envOpener func(ctx context.Context, opts envOptions) (*cliEnv, error)

func openEnv(ctx context.Context, opts envOptions) (*cliEnv, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	logger := bootstrap.InitLogger(config.LogConfig{Level: level, Format: config.LogFormatText})

	var db *sql.DB
	if cfg.NeedsPostgres() {
		db, err = bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
	}
	closeDB := func() error {
		if db == nil {
			return nil
		}
		return db.Close()
	}

	creds, hashes, err := bootstrap.BuildCredentialSource(cfg.Auth, db)
	if err != nil {
		return nil, errors.Join(err, closeDB())
	}
	verifier, err := bootstrap.BuildVerifier(cfg.Auth.PasswordMode, hashes)
	if err != nil {
		return nil, errors.Join(err, closeDB())
	}

	path := opts.DBPath
	if path == "" {
		path = cfg.Session.SQLitePath
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, errors.Join(err, closeDB())
	}

	clock := core.RealTimeProvider{}
	return &cliEnv{
		Credentials: creds,
		Verifier:    verifier,
		Storage:     store,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Catalog:      devseed.NewCatalog(clock.Now()),
			TimeProvider: clock,
		}),
		Logger: logger,
		Close: func() error {
			return errors.Join(store.Close(), closeDB())
		},
	}, nil
}

// defaultDBPath lets CIPMS_CLI_DB override SESSION_SQLITE_PATH for the CLI only.
func defaultDBPath() string {
	return os.Getenv("CIPMS_CLI_DB")
}
