// Package postgres provides a PostgreSQL-backed credential source.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	domainauth "github.com/target/cipms/internal/domain/auth"
	apperrors "github.com/target/cipms/internal/errors"
	"github.com/target/cipms/internal/ports"
)

var _ ports.CredentialSource = (*CredentialStore)(nil)

// CredentialStore reads and seeds login accounts in the placement_users table.
type CredentialStore struct {
	DB *sql.DB
}

// NewCredentialStore creates a new CredentialStore.
func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{DB: db}
}

// SeedUser is one account to upsert. An empty PasswordHash keeps any stored hash.
type SeedUser struct {
	Identity     domainauth.Identity
	PasswordHash string
}

// Lookup returns the identity stored for email, matched case-insensitively.
func (s *CredentialStore) Lookup(ctx context.Context, email string) (domainauth.Identity, error) {
	var raw []byte
	err := withPgxConn(ctx, s.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT record FROM placement_users WHERE lower(email) = lower($1)`,
			strings.TrimSpace(email),
		).Scan(&raw)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", apperrors.MapDBError(err))
	}

	id, err := domainauth.DecodeIdentity(raw)
	if err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return id, nil
}

// PasswordHash returns the stored Argon2id hash for email.
func (s *CredentialStore) PasswordHash(ctx context.Context, email string) (string, error) {
	var hash sql.NullString
	err := s.DB.QueryRowContext(ctx,
		`SELECT password_hash FROM placement_users WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email),
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ports.ErrCredentialNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load password hash: %w", apperrors.MapDBError(err))
	}
	if !hash.Valid || hash.String == "" {
		return "", ports.ErrCredentialNotFound
	}
	return hash.String, nil
}

// Seed upserts users by id in one transaction and returns how many rows were written.
// An email already owned by a different id fails with an apperrors Conflict.
func (s *CredentialStore) Seed(ctx context.Context, users []SeedUser) (int, error) {
	const upsert = `
		INSERT INTO placement_users (id, email, role, record, password_hash)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			record = EXCLUDED.record,
			password_hash = COALESCE(EXCLUDED.password_hash, placement_users.password_hash),
			updated_at = now()`

	batch := &pgx.Batch{}
	for _, u := range users {
		if u.Identity == nil {
			return 0, apperrors.Validation("seed user: identity is required")
		}
		record, err := domainauth.EncodeIdentity(u.Identity)
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", u.Identity.Base().Email, err)
		}
		base := u.Identity.Base()
		batch.Queue(upsert, base.ID, base.Email, string(u.Identity.Role()), record, u.PasswordHash)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	written := 0
	err := withPgxTx(ctx, s.DB, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for range users {
			tag, execErr := results.Exec()
			if execErr != nil {
				_ = results.Close()
				return execErr
			}
			written += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", apperrors.MapDBError(err))
	}
	return written, nil
}

// Count returns the number of stored accounts.
func (s *CredentialStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT count(*) FROM placement_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", apperrors.MapDBError(err))
	}
	return n, nil
}
