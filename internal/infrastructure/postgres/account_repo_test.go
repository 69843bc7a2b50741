package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/classdesk/classdesk/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

var accountRows = []string{"id", "email", "password_hash", "full_name", "created_at"}

func TestAccountRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewAccountRepository(mock)
	ctx := context.Background()

	id := uuid.New()
	in := &domain.Account{Email: "teacher@example.com", PasswordHash: "blob"}

	mock.ExpectQuery(`INSERT INTO accounts \(email, password_hash, full_name\)`).
		WithArgs(in.Email, in.PasswordHash, in.FullName).
		WillReturnRows(pgxmock.NewRows(accountRows).
			AddRow(id, in.Email, in.PasswordHash, nil, time.Now()))

	created, err := r.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.Equal(t, in.Email, created.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewAccountRepository(mock)

	in := &domain.Account{Email: "teacher@example.com", PasswordHash: "blob"}

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs(in.Email, in.PasswordHash, in.FullName).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := r.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewAccountRepository(mock)
	ctx := context.Background()

	id := uuid.New()
	name := "Jordan Lee"

	mock.ExpectQuery(`SELECT id, email, password_hash, full_name, created_at\s+FROM accounts\s+WHERE email = \$1`).
		WithArgs("teacher@example.com").
		WillReturnRows(pgxmock.NewRows(accountRows).
			AddRow(id, "teacher@example.com", "blob", &name, time.Now()))

	a, err := r.FindByEmail(ctx, "teacher@example.com")
	require.NoError(t, err)
	require.Equal(t, id, a.ID)
	require.NotNil(t, a.FullName)
	require.Equal(t, name, *a.FullName)

	mock.ExpectQuery(`SELECT id, email, password_hash, full_name, created_at\s+FROM accounts\s+WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err = r.FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
