package member

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
)

// Resolver turns an access token (scheme prefix already removed) into a member.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.Member, error)
}

type Service struct {
	memberRepo repository.MemberRepository
	tokenRepo  repository.TokenRepository
}

func NewService(memberRepo repository.MemberRepository, tokenRepo repository.TokenRepository) *Service {
	return &Service{
		memberRepo: memberRepo,
		tokenRepo:  tokenRepo,
	}
}

// TokenDigest is the key under which an access token is stored.
func TokenDigest(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *Service) Resolve(ctx context.Context, token string) (*model.Member, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.New(apperrors.JWTValueIsEmpty)
	}

	memberID, err := s.tokenRepo.FindMemberID(ctx, TokenDigest(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.New(apperrors.MemberNotFound)
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	member, err := s.memberRepo.Get(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.New(apperrors.MemberNotFound)
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

func (s *Service) GetMemberInfo(ctx context.Context, token string) (*model.MemberResponse, error) {
	member, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return member.ToResponse(), nil
}
