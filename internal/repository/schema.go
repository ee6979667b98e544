package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the storefront tables if they don't exist yet. The
// store is self-bootstrapping; there is no separate migration step.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS userauth (
			authid       BIGSERIAL PRIMARY KEY,
			email        TEXT NOT NULL UNIQUE,
			passwordhash TEXT NOT NULL,
			firstname    TEXT NOT NULL DEFAULT '',
			lastname     TEXT NOT NULL DEFAULT '',
			role         TEXT NOT NULL DEFAULT 'user',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			deleted_at   TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS farmproducts (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			category    TEXT NOT NULL,
			price       DOUBLE PRECISION NOT NULL,
			images      JSONB NOT NULL DEFAULT '[]',
			description TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'active',
			organic     BOOLEAN NOT NULL DEFAULT false,
			details     JSONB NOT NULL DEFAULT '{}',
			shelflife   TEXT NOT NULL DEFAULT '',
			features    JSONB NOT NULL DEFAULT '[]',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			customerid BIGINT PRIMARY KEY,
			items      JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS promocodes (
			code       TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			value      DOUBLE PRECISION NOT NULL,
			minorder   DOUBLE PRECISION NOT NULL DEFAULT 0,
			maxuses    INTEGER NOT NULL DEFAULT 0,
			usedcount  INTEGER NOT NULL DEFAULT 0,
			startdate  TIMESTAMPTZ,
			expirydate TIMESTAMPTZ,
			status     TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			orderid       TEXT PRIMARY KEY,
			customerid    BIGINT NOT NULL,
			customeremail TEXT NOT NULL,
			orderdate     TIMESTAMPTZ NOT NULL,
			items         JSONB NOT NULL DEFAULT '[]',
			paymentmethod TEXT NOT NULL,
			delivery      JSONB NOT NULL DEFAULT '{}',
			totals        JSONB NOT NULL DEFAULT '{}',
			promocode     TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL DEFAULT 'pending',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS checkoutstate (
			customerid BIGINT PRIMARY KEY,
			state      JSONB NOT NULL DEFAULT '{}',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
