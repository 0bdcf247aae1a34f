package repository

import (
	"context"
	"errors"

	"github.com/overcomingroom/bellbell/internal/model"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	MemberRepository interface {
		Get(ctx context.Context, id int64) (*model.Member, error)
	}

	// TokenRepository resolves access token digests to member IDs.
	TokenRepository interface {
		FindMemberID(ctx context.Context, tokenDigest string) (int64, error)
	}

	UserNotificationRepository interface {
		Create(ctx context.Context, notification *model.UserNotification) error
		FindAllByMember(ctx context.Context, memberID int64) ([]*model.UserNotification, error)
		FindByID(ctx context.Context, id int64) (*model.UserNotification, error)
		Delete(ctx context.Context, id int64) error
		// WithTx runs fn against a repository bound to a single transaction.
		WithTx(ctx context.Context, fn func(repo UserNotificationRepository) error) error
	}

	BasicNotificationRepository interface {
		Upsert(ctx context.Context, notification *model.BasicNotification) error
		FindAllByMember(ctx context.Context, memberID int64) ([]*model.BasicNotification, error)
	}

	LocationRepository interface {
		Save(ctx context.Context, location *model.MemberLocation) error
		FindByMember(ctx context.Context, memberID int64) (*model.MemberLocation, error)
	}

	// Pinger reports database reachability for readiness checks.
	Pinger interface {
		PingContext(ctx context.Context) error
	}
)
