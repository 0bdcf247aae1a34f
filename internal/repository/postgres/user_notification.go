package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
)

type userNotificationRepository struct {
	BaseRepository
	q sqlx.ExtContext
}

func NewUserNotificationRepository(base BaseRepository) repository.UserNotificationRepository {
	return &userNotificationRepository{BaseRepository: base, q: base.db}
}

func (r *userNotificationRepository) WithTx(ctx context.Context, fn func(repository.UserNotificationRepository) error) error {
	return r.BaseRepository.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(&userNotificationRepository{BaseRepository: r.BaseRepository, q: tx})
	})
}

func (r *userNotificationRepository) Create(ctx context.Context, n *model.UserNotification) error {
	query := `
		INSERT INTO user_notifications (member_id, content, time, day, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := r.q.QueryRowxContext(ctx, query, n.MemberID, n.Content, n.Time, n.Day, n.CreatedAt).Scan(&n.ID); err != nil {
		return fmt.Errorf("failed to create user notification: %w", err)
	}

	return nil
}

func (r *userNotificationRepository) FindAllByMember(ctx context.Context, memberID int64) ([]*model.UserNotification, error) {
	query := `
		SELECT id, member_id, content, time, day, created_at
		FROM user_notifications
		WHERE member_id = $1
		ORDER BY id
	`

	var notifications []*model.UserNotification
	if err := sqlx.SelectContext(ctx, r.q, &notifications, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to list user notifications: %w", err)
	}

	return notifications, nil
}

func (r *userNotificationRepository) FindByID(ctx context.Context, id int64) (*model.UserNotification, error) {
	query := `
		SELECT id, member_id, content, time, day, created_at
		FROM user_notifications
		WHERE id = $1
		FOR UPDATE
	`

	var n model.UserNotification
	if err := sqlx.GetContext(ctx, r.q, &n, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user notification: %w", notFound(err))
	}

	return &n, nil
}

func (r *userNotificationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM user_notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
