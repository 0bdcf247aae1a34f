package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overcomingroom/bellbell/internal/repository"
	"github.com/overcomingroom/bellbell/internal/repository/postgres"
)

func TestMemberRepository_Get(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewMemberRepository(postgres.NewBaseRepository(db))
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM members\s+WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "nickname", "profile_image", "created_at", "updated_at"}).
			AddRow(1, "m1@bellbell.app", "m1", "https://img/1.png", now, now))
	m, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "m1", m.Nickname)

	mock.ExpectQuery(`SELECT (.+) FROM members`).
		WithArgs(int64(2)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(ctx, 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_FindMemberID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewTokenRepository(postgres.NewBaseRepository(db))
	ctx := context.Background()

	mock.ExpectQuery(`SELECT member_id FROM member_tokens\s+WHERE token_digest = \$1 AND \(expires_at IS NULL OR expires_at > NOW\(\)\)`).
		WithArgs("digest").
		WillReturnRows(sqlmock.NewRows([]string{"member_id"}).AddRow(11))
	id, err := repo.FindMemberID(ctx, "digest")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	mock.ExpectQuery(`SELECT member_id FROM member_tokens`).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"member_id"}))
	_, err = repo.FindMemberID(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
