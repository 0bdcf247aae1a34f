package postgres

import (
	"context"
	"fmt"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
)

type memberRepository struct {
	BaseRepository
}

func NewMemberRepository(base BaseRepository) repository.MemberRepository {
	return &memberRepository{base}
}

func (r *memberRepository) Get(ctx context.Context, id int64) (*model.Member, error) {
	query := `
		SELECT id, email, nickname, profile_image, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, fmt.Errorf("failed to get member: %w", notFound(err))
	}

	return &member, nil
}
