package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/internal/users/store/drivers/postgres"
	"github.com/integra-admin/integra/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway postgres container and returns its DSN.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "users",
			"POSTGRES_PASSWORD": "users",
			"POSTGRES_DB":       "users",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://users:users@%s:%s/users?sslmode=disable", host, port.Port())
}

func TestPostgresStore(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	s, err := postgres.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(ctx))

	roles, err := s.Roles().ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, len(domain.Vocabulary()))

	sponsor := domain.Sponsor{Name: "Acme"}
	require.NoError(t, s.DB().QueryRowContext(ctx,
		`INSERT INTO sponsors (name) VALUES ($1) RETURNING id`, sponsor.Name).Scan(&sponsor.ID))

	now := time.Now().UTC().Truncate(time.Second)
	a := domain.Account{
		ID:                 idx.New().String(),
		Username:           "bob",
		NormalizedUsername: "BOB",
		Email:              "bob@x.com",
		FirstName:          "Bob",
		LastName:           "B",
		SponsorID:          &sponsor.ID,
		PasswordHash:       "$argon2id$stub",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, a); err != nil {
			return err
		}
		return tx.Roles().AddAccountToRoles(ctx, a.ID, []domain.RoleName{domain.RoleSponsor, domain.RoleSponsorRead})
	}))

	dup := a
	dup.ID = idx.New().String()
	dup.Username = "BOB"
	require.ErrorIs(t, s.Accounts().CreateAccount(ctx, dup), store.ErrAlreadyExists)

	listed, err := s.Accounts().ListAccountsInRole(ctx, domain.RoleSponsor)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, a.ID, listed[0].ID)
	require.Equal(t, sponsor.ID, *listed[0].SponsorID)
	require.Equal(t, []domain.RoleName{domain.RoleSponsor, domain.RoleSponsorRead}, listed[0].Roles)
	require.True(t, now.Equal(listed[0].CreatedAt))
}
