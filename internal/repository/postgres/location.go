package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
)

type locationRepository struct {
	BaseRepository
}

func NewLocationRepository(base BaseRepository) repository.LocationRepository {
	return &locationRepository{base}
}

func (r *locationRepository) Save(ctx context.Context, l *model.MemberLocation) error {
	query := `
		INSERT INTO member_locations (member_id, latitude, longitude, address, updated_at)
		VALUES (:member_id, :latitude, :longitude, :address, :updated_at)
		ON CONFLICT (member_id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			address = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at
	`

	l.UpdatedAt = time.Now()
	if _, err := r.db.NamedExecContext(ctx, query, l); err != nil {
		return fmt.Errorf("failed to save member location: %w", err)
	}

	return nil
}

func (r *locationRepository) FindByMember(ctx context.Context, memberID int64) (*model.MemberLocation, error) {
	query := `
		SELECT member_id, latitude, longitude, address, updated_at
		FROM member_locations
		WHERE member_id = $1
	`

	var l model.MemberLocation
	if err := r.db.GetContext(ctx, &l, query, memberID); err != nil {
		return nil, fmt.Errorf("failed to get member location: %w", notFound(err))
	}

	return &l, nil
}
