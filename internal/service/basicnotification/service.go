package basicnotification

import (
	"context"
	"fmt"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
	"github.com/overcomingroom/bellbell/internal/service/member"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type Service struct {
	repo    repository.BasicNotificationRepository
	members member.Resolver
}

func NewService(repo repository.BasicNotificationRepository, members member.Resolver) *Service {
	return &Service{
		repo:    repo,
		members: members,
	}
}

func (s *Service) List(ctx context.Context, token string) ([]*model.BasicNotificationResponse, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	notifications, err := s.repo.FindAllByMember(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list basic notifications: %w", err)
	}
	if len(notifications) == 0 {
		return nil, apperrors.New(apperrors.BasicNotificationIsEmpty)
	}

	res := make([]*model.BasicNotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		res = append(res, n.ToResponse())
	}
	return res, nil
}

// Save creates or replaces the member's setting for req.Type.
func (s *Service) Save(ctx context.Context, token string, req *model.BasicNotificationRequest) (response.Code, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return response.Code{}, err
	}

	n := &model.BasicNotification{
		MemberID:    m.ID,
		Type:        req.Type,
		IsActivated: req.IsActivated != nil && *req.IsActivated,
		Time:        req.Time,
		Day:         req.Day,
	}
	if err := s.repo.Upsert(ctx, n); err != nil {
		return response.Code{}, fmt.Errorf("failed to save basic notification: %w", err)
	}

	return response.BasicNotificationSaveSuccessful, nil
}
