package sqlstore_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/integra-admin/integra/internal/users/domain"
	"github.com/integra-admin/integra/internal/users/store"
	"github.com/integra-admin/integra/internal/users/store/sqlstore"
	"github.com/stretchr/testify/require"
)

var errUniqueViolation = errors.New("unique violation")

var accountCols = []string{
	"id", "username", "normalized_username", "email", "first_name", "last_name",
	"sponsor_id", "password_hash", "created_at", "updated_at",
}

func newMock(t *testing.T) (*sqlstore.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := sqlstore.New(db, sqlstore.Dialect{
		Name: "mock",
		Classify: func(err error) error {
			if errors.Is(err, errUniqueViolation) {
				return store.ErrAlreadyExists
			}
			return nil
		},
	})
	return s, mock
}

func TestCreateAccountMapsUniqueViolation(t *testing.T) {
	s, mock := newMock(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO accounts").
		WithArgs("01A", "alice", "ALICE", "a@x.com", "Alice", "A",
			sqlmock.AnyArg(), "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO accounts").WillReturnError(errUniqueViolation)

	a := domain.Account{
		ID: "01A", Username: "alice", NormalizedUsername: "ALICE", Email: "a@x.com",
		FirstName: "Alice", LastName: "A", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.Accounts().CreateAccount(context.Background(), a))

	err := s.Accounts().CreateAccount(context.Background(), a)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccountByUsername(t *testing.T) {
	s, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.normalized_username = ?")).
		WithArgs("ALICE").
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow("01A", "alice", "ALICE", "a@x.com", "Alice", "A", int64(7), "hash", now, now))
	mock.ExpectQuery("FROM account_roles ar").
		WithArgs("01A").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Admin"))

	a, err := s.Accounts().GetAccountByUsername(context.Background(), "ALICE")
	require.NoError(t, err)
	require.Equal(t, "alice", a.Username)
	require.NotNil(t, a.SponsorID)
	require.Equal(t, int64(7), *a.SponsorID)
	require.Equal(t, []domain.RoleName{domain.RoleAdmin}, a.Roles)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAccountNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("FROM accounts a WHERE a.normalized_username").
		WithArgs("MISSING").
		WillReturnRows(sqlmock.NewRows(accountCols))

	_, err := s.Accounts().GetAccountByUsername(context.Background(), "MISSING")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAccountsInRoleAttachesRoles(t *testing.T) {
	s, mock := newMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.name = ?")).
		WithArgs("Sponsor").
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow("01B", "bob", "BOB", "b@x.com", "Bob", "B", nil, "hash", now, now))
	mock.ExpectQuery("SELECT ar.account_id, r.name").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "name"}).
			AddRow("01A", "Admin").
			AddRow("01B", "Sponsor").
			AddRow("01B", "Sponsor Read"))

	accounts, err := s.Accounts().ListAccountsInRole(context.Background(), domain.RoleSponsor)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Nil(t, accounts[0].SponsorID)
	require.Equal(t, []domain.RoleName{domain.RoleSponsor, domain.RoleSponsorRead}, accounts[0].Roles)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAccountsEmptySkipsRoleLookup(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("FROM accounts a ORDER BY").WillReturnRows(sqlmock.NewRows(accountCols))

	accounts, err := s.Accounts().ListAccounts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, accounts)
	require.Empty(t, accounts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAccountToRolesUnknownRole(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name FROM roles WHERE name").
		WithArgs("Admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("role_admin", "Admin"))
	mock.ExpectExec("INSERT INTO account_roles").
		WithArgs("01A", "role_admin").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, name FROM roles WHERE name").
		WithArgs("Root").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	err := s.Roles().AddAccountToRoles(context.Background(), "01A", []domain.RoleName{"Admin", "Root"})
	require.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s, mock := newMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(context.Background(), domain.Account{ID: "01A"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxCommits(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM accounts WHERE normalized_username = ?")).
		WithArgs("ALICE").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		taken, err := tx.Accounts().UsernameTaken(context.Background(), "ALICE")
		if err != nil || taken {
			return errors.Join(err, store.ErrAlreadyExists)
		}
		return tx.Accounts().CreateAccount(context.Background(), domain.Account{ID: "01A", NormalizedUsername: "ALICE"})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeadlineMapsToUnavailable(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("SELECT id, name FROM sponsors").WillReturnError(context.DeadlineExceeded)

	_, err := s.Sponsors().ListSponsors(context.Background())
	require.ErrorIs(t, err, store.ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDollarRebind(t *testing.T) {
	require.Equal(t,
		"SELECT 1 FROM t WHERE a = $1 AND b = $2",
		sqlstore.DollarRebind("SELECT 1 FROM t WHERE a = ? AND b = ?"))
	require.Equal(t, "SELECT 1", sqlstore.DollarRebind("SELECT 1"))
}
