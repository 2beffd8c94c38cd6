package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrlite/internal/domain/auth"
	"hrlite/internal/platform/config"
)

// Seed creates the initial admin account when configured. It is safe to
// run on every boot; an existing account is left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	password := strings.TrimSpace(cfg.SeedAdminPassword)
	if email == "" || password == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, "INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3)", email, hash, auth.RoleAdmin)
	return err
}
