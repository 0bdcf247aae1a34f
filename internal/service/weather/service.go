package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
	"github.com/overcomingroom/bellbell/internal/service/member"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/response"
)

// Service manages member locations and serves weather at the saved location.
type Service struct {
	locations  repository.LocationRepository
	members    member.Resolver
	forecaster Forecaster
	now        func() time.Time
}

func NewService(locations repository.LocationRepository, members member.Resolver, forecaster Forecaster) *Service {
	return &Service{
		locations:  locations,
		members:    members,
		forecaster: forecaster,
		now:        time.Now,
	}
}

func (s *Service) SaveLocation(ctx context.Context, token string, req *model.LocationRequest) (response.Code, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return response.Code{}, err
	}

	if _, _, ok := ToGrid(*req.Latitude, *req.Longitude); !ok {
		return response.Code{}, apperrors.New(apperrors.LocationInformationNotFound)
	}

	loc := &model.MemberLocation{
		MemberID:  m.ID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Address:   req.Address,
	}
	if err := s.locations.Save(ctx, loc); err != nil {
		return response.Code{}, fmt.Errorf("failed to save location: %w", err)
	}

	return response.MemberLocationSaveSuccessful, nil
}

func (s *Service) GetLocation(ctx context.Context, token string) (*model.LocationResponse, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	loc, err := s.findLocation(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return loc.ToResponse(), nil
}

func (s *Service) CurrentWeather(ctx context.Context, token string) (*model.Weather, error) {
	m, err := s.members.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	loc, err := s.findLocation(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	nx, ny, ok := ToGrid(loc.Latitude, loc.Longitude)
	if !ok {
		return nil, apperrors.New(apperrors.LocationInformationNotFound)
	}

	return s.forecaster.Current(ctx, nx, ny, s.now())
}

func (s *Service) findLocation(ctx context.Context, memberID int64) (*model.MemberLocation, error) {
	loc, err := s.locations.FindByMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.New(apperrors.MemberLocationInformationNotFound)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}
