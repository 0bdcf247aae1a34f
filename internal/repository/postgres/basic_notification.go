package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
)

type basicNotificationRepository struct {
	BaseRepository
}

func NewBasicNotificationRepository(base BaseRepository) repository.BasicNotificationRepository {
	return &basicNotificationRepository{base}
}

func (r *basicNotificationRepository) Upsert(ctx context.Context, n *model.BasicNotification) error {
	query := `
		INSERT INTO basic_notifications (member_id, type, is_activated, time, day, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (member_id, type) DO UPDATE SET
			is_activated = EXCLUDED.is_activated,
			time = EXCLUDED.time,
			day = EXCLUDED.day,
			updated_at = EXCLUDED.updated_at
		RETURNING id
	`

	n.UpdatedAt = time.Now()
	if err := r.db.QueryRowxContext(ctx, query, n.MemberID, n.Type, n.IsActivated, n.Time, n.Day, n.UpdatedAt).Scan(&n.ID); err != nil {
		return fmt.Errorf("failed to save basic notification: %w", err)
	}

	return nil
}

func (r *basicNotificationRepository) FindAllByMember(ctx context.Context, memberID int64) ([]*model.BasicNotification, error) {
	query := `
		SELECT id, member_id, type, is_activated, time, day, updated_at
		FROM basic_notifications
		WHERE member_id = $1
		ORDER BY id
	`

	var notifications []*model.BasicNotification
	if err := r.db.SelectContext(ctx, &notifications, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to list basic notifications: %w", err)
	}

	return notifications, nil
}
