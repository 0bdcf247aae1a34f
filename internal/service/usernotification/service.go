package usernotification

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
	"github.com/overcomingroom/bellbell/internal/service/member"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type Service struct {
	repo    repository.UserNotificationRepository
	members member.Resolver
}

func NewService(repo repository.UserNotificationRepository, members member.Resolver) *Service {
	return &Service{
		repo:    repo,
		members: members,
	}
}

func (s *Service) Create(ctx context.Context, token string, req *model.UserNotificationRequest) (response.Code, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return response.Code{}, err
	}

	n := &model.UserNotification{
		MemberID: m.ID,
		Content:  req.Content,
		Time:     req.Time,
		Day:      req.Day,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return response.Code{}, fmt.Errorf("failed to create user notification: %w", err)
	}

	log.Debug().Int64("member_id", m.ID).Int64("notification_id", n.ID).Msg("user notification created")
	return response.UserNotificationCreateSuccessful, nil
}

// ListAll returns the member's notifications in creation order. A member without any
// notifications gets NOT_EXISTS_USER_NOTIFICATION rather than an empty list.
func (s *Service) ListAll(ctx context.Context, token string) ([]*model.UserNotificationResponse, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repo.FindAllByMember(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user notifications: %w", err)
	}
	if len(notifications) == 0 {
		return nil, apperrors.New(apperrors.NotExistsUserNotification)
	}

	res := make([]*model.UserNotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		res = append(res, n.ToResponse())
	}
	return res, nil
}

// Delete removes a notification owned by the caller. Lookup, owner check and delete
// share one transaction.
func (s *Service) Delete(ctx context.Context, token string, notificationID int64) (response.Code, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return response.Code{}, err
	}

	err = s.repo.WithTx(ctx, func(tx repository.UserNotificationRepository) error {
		n, err := tx.FindByID(ctx, notificationID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.New(apperrors.NotExistsUserNotification)
			}
			return fmt.Errorf("failed to get user notification: %w", err)
		}

		if !n.IsOwnedBy(m.ID) {
			log.Warn().
				Int64("member_id", m.ID).
				Int64("notification_id", notificationID).
				Msg("rejected delete of foreign user notification")
			return apperrors.New(apperrors.AccessDenied)
		}

		if err := tx.Delete(ctx, n.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.New(apperrors.NotExistsUserNotification)
			}
			return fmt.Errorf("failed to delete user notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return response.Code{}, err
	}

	return response.UserNotificationDeleteSuccessful, nil
}
