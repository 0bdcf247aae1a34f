package postgres

import (
	"context"
	"fmt"

	"github.com/overcomingroom/bellbell/internal/repository"
)

type tokenRepository struct {
	BaseRepository
}

func NewTokenRepository(base BaseRepository) repository.TokenRepository {
	return &tokenRepository{base}
}

func (r *tokenRepository) FindMemberID(ctx context.Context, tokenDigest string) (int64, error) {
	query := `
		SELECT member_id FROM member_tokens
		WHERE token_digest = $1 AND (expires_at IS NULL OR expires_at > NOW())
	`

	var memberID int64
	if err := r.db.GetContext(ctx, &memberID, query, tokenDigest); err != nil {
		return 0, fmt.Errorf("failed to find token: %w", notFound(err))
	}

	return memberID, nil
}
