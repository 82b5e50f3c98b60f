package repository

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tribunatech/casevault/internal/errors"
	"github.com/tribunatech/casevault/internal/portal/domain"
)

func newPortalAccessRepo(t *testing.T) (*PostgreSQLPortalAccessRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgreSQLPortalAccessRepository(db, slog.New(slog.DiscardHandler)), mock
}

func testAccess() *domain.PortalAccess {
	return &domain.PortalAccess{
		ID:        uuid.Must(uuid.NewV7()),
		ClientID:  uuid.Must(uuid.NewV7()),
		CaseID:    uuid.Must(uuid.NewV7()),
		TokenHash: "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
		IsActive:  true,
	}
}

func TestPostgreSQLPortalAccessRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts the grant", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)
		access := testAccess()

		mock.ExpectExec(`INSERT INTO portal_accesses`).
			WithArgs(access.ID, access.ClientID, access.CaseID, access.TokenHash, access.IsActive).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, access))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate active grant", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)
		access := testAccess()

		mock.ExpectExec(`INSERT INTO portal_accesses`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "portal_accesses_active_pair_idx"`))

		err := repo.Create(ctx, access)
		assert.ErrorIs(t, err, domain.ErrAccessAlreadyExists)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLPortalAccessRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()

	columns := []string{"id", "client_id", "case_id", "token_hash", "is_active", "created_at", "last_accessed_at"}

	t.Run("found with last access", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)
		access := testAccess()
		lastAccess := time.Now().UTC()

		mock.ExpectQuery(`SELECT (.+) FROM portal_accesses WHERE token_hash`).
			WithArgs(access.TokenHash).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(access.ID, access.ClientID, access.CaseID, access.TokenHash, true, time.Now().UTC(), lastAccess))

		got, err := repo.GetByTokenHash(ctx, access.TokenHash)
		require.NoError(t, err)
		assert.Equal(t, access.ID, got.ID)
		require.NotNil(t, got.LastAccessedAt)
		assert.WithinDuration(t, lastAccess, *got.LastAccessedAt, time.Second)
	})

	t.Run("never accessed", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)
		access := testAccess()

		mock.ExpectQuery(`SELECT (.+) FROM portal_accesses WHERE token_hash`).
			WithArgs(access.TokenHash).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(access.ID, access.ClientID, access.CaseID, access.TokenHash, true, time.Now().UTC(), nil))

		got, err := repo.GetByTokenHash(ctx, access.TokenHash)
		require.NoError(t, err)
		assert.Nil(t, got.LastAccessedAt)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)

		mock.ExpectQuery(`SELECT (.+) FROM portal_accesses WHERE token_hash`).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByTokenHash(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrAccessNotFound)
	})
}

func TestPostgreSQLPortalAccessRepository_GetActiveByClientAndCase(t *testing.T) {
	ctx := context.Background()
	repo, mock := newPortalAccessRepo(t)
	access := testAccess()

	columns := []string{"id", "client_id", "case_id", "token_hash", "is_active", "created_at", "last_accessed_at"}
	mock.ExpectQuery(`SELECT (.+) FROM portal_accesses WHERE client_id .+ AND case_id .+ AND is_active`).
		WithArgs(access.ClientID, access.CaseID).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(access.ID, access.ClientID, access.CaseID, access.TokenHash, true, time.Now().UTC(), nil))

	got, err := repo.GetActiveByClientAndCase(ctx, access.ClientID, access.CaseID)
	require.NoError(t, err)
	assert.Equal(t, access.ID, got.ID)
	assert.True(t, got.IsActive)
}

func TestPostgreSQLPortalAccessRepository_TouchLastAccessed(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the timestamp", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)
		id := uuid.Must(uuid.NewV7())
		at := time.Now().UTC()

		mock.ExpectExec(`UPDATE portal_accesses SET last_accessed_at`).
			WithArgs(at, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo.TouchLastAccessed(ctx, id, at)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)

		mock.ExpectExec(`UPDATE portal_accesses SET last_accessed_at`).
			WillReturnError(errors.New("database down"))

		repo.TouchLastAccessed(ctx, uuid.Must(uuid.NewV7()), time.Now())
	})
}

func TestPostgreSQLPortalAccessRepository_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates the grant", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)
		id := uuid.Must(uuid.NewV7())

		mock.ExpectExec(`UPDATE portal_accesses SET is_active = FALSE`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Revoke(ctx, id))
	})

	t.Run("already revoked", func(t *testing.T) {
		repo, mock := newPortalAccessRepo(t)
		id := uuid.Must(uuid.NewV7())

		mock.ExpectExec(`UPDATE portal_accesses SET is_active = FALSE`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Revoke(ctx, id)
		assert.ErrorIs(t, err, domain.ErrAccessNotFound)
	})
}
