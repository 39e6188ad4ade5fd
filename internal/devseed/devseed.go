// Package devseed provides demo data for local development: the dashboard
// catalog and the demo login accounts.
package devseed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/cipms/internal/adapters/devauth"
	"github.com/target/cipms/internal/adapters/postgres"
	domainauth "github.com/target/cipms/internal/domain/auth"
)

// UserSeeder persists login accounts.
type UserSeeder interface {
	Seed(ctx context.Context, users []postgres.SeedUser) (int, error)
}

// Options controls Run.
type Options struct {
	// Identities defaults to the demo accounts.
	Identities []domainauth.Identity
	// Hashes maps lowercased email to an Argon2id hash stored alongside the account.
	Hashes map[string]string
	Logger *slog.Logger
}

// Run upserts the accounts into the seeder.
func Run(ctx context.Context, seeder UserSeeder, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ids := opts.Identities
	if len(ids) == 0 {
		ids = devauth.DemoIdentities()
	}

	users := make([]postgres.SeedUser, 0, len(ids))
	for _, id := range ids {
		users = append(users, postgres.SeedUser{
			Identity:     id,
			PasswordHash: opts.Hashes[strings.ToLower(id.Base().Email)],
		})
	}

	n, err := seeder.Seed(ctx, users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	for _, id := range ids {
		opts.Logger.InfoContext(ctx, "seeded user", "email", id.Base().Email, "role", string(id.Role()))
	}
	opts.Logger.InfoContext(ctx, "seed complete", "rows", n)
	return nil
}
