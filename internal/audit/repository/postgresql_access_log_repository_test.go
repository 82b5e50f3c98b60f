package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tribunatech/casevault/internal/audit/domain"
)

func newAccessLogRepo(t *testing.T) (*PostgreSQLAccessLogRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgreSQLAccessLogRepository(db), mock
}

func TestPostgreSQLAccessLogRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo, mock := newAccessLogRepo(t)

	caseID := uuid.Must(uuid.NewV7())
	log := &domain.AccessLog{
		ID:          uuid.Must(uuid.NewV7()),
		TokenPrefix: "a1b2c3d4",
		CaseID:      &caseID,
		Action:      domain.ActionViewTimeline,
		Success:     true,
		RemoteAddr:  "203.0.113.7",
		Signature:   []byte{0x01, 0x02},
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO portal_access_logs`).
		WithArgs(log.ID, log.TokenPrefix, caseID, log.Action,
			log.Success, log.RemoteAddr, log.Signature, log.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, log))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccessLogRepository_Create_NilCaseID(t *testing.T) {
	ctx := context.Background()
	repo, mock := newAccessLogRepo(t)

	log := &domain.AccessLog{
		ID:          uuid.Must(uuid.NewV7()),
		TokenPrefix: "a1b2c3d4",
		Action:      domain.ActionTokenRejected,
		Success:     false,
		RemoteAddr:  "203.0.113.7",
		Signature:   []byte{0x01},
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO portal_access_logs`).
		WithArgs(log.ID, log.TokenPrefix, nil, log.Action,
			log.Success, log.RemoteAddr, log.Signature, log.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, log))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccessLogRepository_LastSignature(t *testing.T) {
	ctx := context.Background()

	t.Run("returns newest signature", func(t *testing.T) {
		repo, mock := newAccessLogRepo(t)

		mock.ExpectQuery(`SELECT signature FROM portal_access_logs ORDER BY position DESC LIMIT 1 FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"signature"}).AddRow([]byte{0xaa, 0xbb}))

		sig, err := repo.LastSignature(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xaa, 0xbb}, sig)
	})

	t.Run("empty chain returns nil", func(t *testing.T) {
		repo, mock := newAccessLogRepo(t)

		mock.ExpectQuery(`SELECT signature FROM portal_access_logs`).
			WillReturnRows(sqlmock.NewRows([]string{"signature"}))

		sig, err := repo.LastSignature(ctx)
		require.NoError(t, err)
		assert.Nil(t, sig)
	})
}

func TestPostgreSQLAccessLogRepository_List(t *testing.T) {
	ctx := context.Background()
	repo, mock := newAccessLogRepo(t)

	id := uuid.Must(uuid.NewV7())
	caseID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "token_prefix", "case_id", "action", "success", "remote_addr", "signature", "created_at",
	}).
		AddRow(id, "a1b2c3d4", caseID, "view_timeline", true, "203.0.113.7", []byte{0x01}, now).
		AddRow(uuid.Must(uuid.NewV7()), "ffee0011", nil, "token_rejected", false, "203.0.113.9", []byte{0x02}, now)

	mock.ExpectQuery(`SELECT (.+) FROM portal_access_logs ORDER BY position DESC`).
		WithArgs(50, 0).
		WillReturnRows(rows)

	logs, err := repo.List(ctx, 0, 50)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, id, logs[0].ID)
	require.NotNil(t, logs[0].CaseID)
	assert.Equal(t, caseID, *logs[0].CaseID)
	assert.Equal(t, domain.ActionViewTimeline, logs[0].Action)

	assert.Nil(t, logs[1].CaseID)
	assert.False(t, logs[1].Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAccessLogRepository_ListChronological(t *testing.T) {
	ctx := context.Background()
	repo, mock := newAccessLogRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "token_prefix", "case_id", "action", "success", "remote_addr", "signature", "created_at",
	}).AddRow(uuid.Must(uuid.NewV7()), "a1b2c3d4", nil, "token_issued", true, "203.0.113.7", []byte{0x01}, time.Now().UTC())

	mock.ExpectQuery(`SELECT (.+) FROM portal_access_logs ORDER BY position ASC`).
		WithArgs(500, 0).
		WillReturnRows(rows)

	logs, err := repo.ListChronological(ctx, 0, 500)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
