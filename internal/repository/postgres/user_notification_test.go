package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
	"github.com/overcomingroom/bellbell/internal/repository/postgres"
)

var userNotificationColumns = []string{"id", "member_id", "content", "time", "day", "created_at"}

func TestUserNotificationRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserNotificationRepository(postgres.NewBaseRepository(db))

	n := &model.UserNotification{MemberID: 1, Content: "water plants", Time: "08:00", Day: "MON"}
	mock.ExpectQuery(`INSERT INTO user_notifications`).
		WithArgs(int64(1), "water plants", "08:00", "MON", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, int64(42), n.ID)
	assert.False(t, n.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotificationRepository_Create_Error(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserNotificationRepository(postgres.NewBaseRepository(db))

	mock.ExpectQuery(`INSERT INTO user_notifications`).WillReturnError(errors.New("insert fail"))

	err := repo.Create(context.Background(), &model.UserNotification{MemberID: 1})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotificationRepository_FindAllByMember(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserNotificationRepository(postgres.NewBaseRepository(db))

	now := time.Now()
	rows := sqlmock.NewRows(userNotificationColumns).
		AddRow(1, 5, "first", "08:00", "MON", now).
		AddRow(2, 5, "second", "21:30", "MON,FRI", now)
	mock.ExpectQuery(`SELECT (.+) FROM user_notifications\s+WHERE member_id = \$1\s+ORDER BY id`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	items, err := repo.FindAllByMember(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Content)
	assert.Equal(t, "MON,FRI", items[1].Day)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotificationRepository_FindByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserNotificationRepository(postgres.NewBaseRepository(db))
	ctx := context.Background()

	mock.ExpectQuery(`SELECT (.+) FROM user_notifications\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userNotificationColumns).AddRow(9, 3, "c", "07:15", "SUN", time.Now()))
	n, err := repo.FindByID(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.MemberID)

	mock.ExpectQuery(`SELECT (.+) FROM user_notifications`).
		WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows(userNotificationColumns))
	_, err = repo.FindByID(ctx, 999999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotificationRepository_Delete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserNotificationRepository(postgres.NewBaseRepository(db))
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM user_notifications WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, 9))

	mock.ExpectExec(`DELETE FROM user_notifications`).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 10), repository.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotificationRepository_WithTx_Commit(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserNotificationRepository(postgres.NewBaseRepository(db))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM user_notifications`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userNotificationColumns).AddRow(9, 3, "c", "07:15", "SUN", time.Now()))
	mock.ExpectExec(`DELETE FROM user_notifications`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.WithTx(context.Background(), func(tx repository.UserNotificationRepository) error {
		n, err := tx.FindByID(context.Background(), 9)
		if err != nil {
			return err
		}
		return tx.Delete(context.Background(), n.ID)
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserNotificationRepository_WithTx_Rollback(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewUserNotificationRepository(postgres.NewBaseRepository(db))

	denied := errors.New("denied")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM user_notifications`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userNotificationColumns).AddRow(9, 3, "c", "07:15", "SUN", time.Now()))
	mock.ExpectRollback()

	err := repo.WithTx(context.Background(), func(tx repository.UserNotificationRepository) error {
		if _, err := tx.FindByID(context.Background(), 9); err != nil {
			return err
		}
		return denied
	})
	assert.ErrorIs(t, err, denied)
	require.NoError(t, mock.ExpectationsWereMet())
}
