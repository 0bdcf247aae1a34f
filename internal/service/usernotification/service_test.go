package usernotification

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overcomingroom/bellbell/internal/model"
	"github.com/overcomingroom/bellbell/internal/repository"
	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/response"
)

type resolverStub map[string]*model.Member

func (r resolverStub) Resolve(_ context.Context, token string) (*model.Member, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.JWTValueIsEmpty)
	}
	m, ok := r[token]
	if !ok {
		return nil, apperrors.New(apperrors.MemberNotFound)
	}
	return m, nil
}

// memoryRepo stages writes made inside WithTx and applies them only when fn succeeds.
type memoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*model.UserNotification
}

func (r *memoryRepo) Create(_ context.Context, n *model.UserNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = r.nextID
	cp := *n
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memoryRepo) FindAllByMember(_ context.Context, memberID int64) ([]*model.UserNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.UserNotification
	for _, n := range r.rows {
		if n.MemberID == memberID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindByID(_ context.Context, id int64) (*model.UserNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.rows {
		if n.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(repository.UserNotificationRepository) error) error {
	r.mu.Lock()
	snapshot := append([]*model.UserNotification(nil), r.rows...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.rows = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func newTestService() (*Service, *memoryRepo) {
	repo := &memoryRepo{}
	members := resolverStub{
		"T1": {Base: model.Base{ID: 1}},
		"T2": {Base: model.Base{ID: 2}},
	}
	return NewService(repo, members), repo
}

func req(content, at, day string) *model.UserNotificationRequest {
	return &model.UserNotificationRequest{Content: content, Time: at, Day: day}
}

func TestCreateThenList(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	code, err := svc.Create(ctx, "T1", req("water plants", "08:00", "MON"))
	require.NoError(t, err)
	assert.Equal(t, response.UserNotificationCreateSuccessful, code)

	list, err := svc.ListAll(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotZero(t, list[0].ID)
	assert.Equal(t, "water plants", list[0].Content)
	assert.Equal(t, "08:00", list[0].Time)
	assert.Equal(t, "MON", list[0].Day)
}

func TestListAll_OnlyOwnInCreationOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "T1", req("a", "07:00", "MON"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "T2", req("other", "09:00", "TUE"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "T1", req("b", "08:00", "WED"))
	require.NoError(t, err)

	list, err := svc.ListAll(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Content)
	assert.Equal(t, "b", list[1].Content)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestListAll_NoneIsAnError(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListAll(context.Background(), "T1")
	assert.ErrorIs(t, err, apperrors.New(apperrors.NotExistsUserNotification))
}

func TestDelete_Owner(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "T1", req("a", "07:00", "MON"))
	require.NoError(t, err)

	code, err := svc.Delete(ctx, "T1", 1)
	require.NoError(t, err)
	assert.Equal(t, response.UserNotificationDeleteSuccessful, code)
	assert.Empty(t, repo.rows)
}

func TestDelete_ForeignIsDeniedAndKept(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "T1", req("water plants", "08:00", "MON"))
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "T2", 1)
	assert.ErrorIs(t, err, apperrors.New(apperrors.AccessDenied))

	list, err := svc.ListAll(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestDelete_UnknownIDIsAlwaysNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Delete(ctx, "T1", 999999)
		assert.ErrorIs(t, err, apperrors.New(apperrors.NotExistsUserNotification))
	}

	_, err := svc.Delete(ctx, "T2", 999999)
	assert.ErrorIs(t, err, apperrors.New(apperrors.NotExistsUserNotification))
}

func TestUnknownMember(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "abc123", req("a", "07:00", "MON"))
	assert.ErrorIs(t, err, apperrors.New(apperrors.MemberNotFound))

	_, err = svc.ListAll(ctx, "abc123")
	assert.ErrorIs(t, err, apperrors.New(apperrors.MemberNotFound))

	_, err = svc.Delete(ctx, "", 1)
	assert.ErrorIs(t, err, apperrors.New(apperrors.JWTValueIsEmpty))
}
