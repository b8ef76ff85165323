// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package testutil holds helpers shared by the integration tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ludquiz-hash/visiocaret-sub000/migrations"
)

// StartPostgres runs a throwaway postgres container, applies the embedded migrations
// and returns its DSN. Callers are skipped under -short.
func StartPostgres(t testing.TB) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("garages"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("5432/tcp").WithStartupTimeout(2*time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer db.Close()

	// postgres restarts once during init, the listening port alone is not enough
	require.Eventually(t, func() bool { return db.PingContext(ctx) == nil }, time.Minute, 500*time.Millisecond)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations)
	require.NoError(t, err)

	_, err = provider.Up(ctx)
	require.NoError(t, err)

	return dsn
}
