package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/auth"
	"github.com/spectropro/spectro-backend/internal/models"
	repo "github.com/spectropro/spectro-backend/internal/repository"
	"github.com/spectropro/spectro-backend/internal/worker"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]models.User
	seq  int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]models.User{}}
}

func (m *memUsers) Create(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	u.ID = fmt.Sprintf("u-%d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Update(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) StampLastLogin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.LastLogin = time.Now()
	m.byID[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func newTestService(t *testing.T) (*UserService, *memUsers) {
	t.Helper()
	users := newMemUsers()
	tm := auth.NewTokenManager("acc", "ref", "spectro-test", time.Hour, 24*time.Hour)
	approved := adminlist.New([]string{"EC/2020/012", "EC/2020/056"})
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	return NewUserService(users, tm, approved, wp, slog.Default()), users
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterParams{
		Name: "Ada", Email: "Ada@Uni.edu", Password: "secret1", Role: models.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", res.User.Email, "email is normalized")
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.False(t, res.User.IsApprovedAdmin)

	login, err := svc.Login(ctx, "ada@uni.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
	assert.False(t, login.User.LastLogin.IsZero())

	_, err = svc.Login(ctx, "ada@uni.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@uni.edu", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email gets the same generic failure")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Name: "Ada", Email: "a@uni.edu", Password: "secret1", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterParams{Name: "Ada2", Email: "a@uni.edu", Password: "secret2", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterStudentIDRules(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	// Researcher without a well-formed id is refused.
	_, err := svc.Register(ctx, RegisterParams{
		Name: "Eve", Email: "e1@uni.edu", Password: "secret1",
		Role: models.RoleResearcher, StudentID: "bogus",
	})
	assert.Error(t, err)

	// Plain user must not carry a student id.
	_, err = svc.Register(ctx, RegisterParams{
		Name: "Bob", Email: "b@uni.edu", Password: "secret1",
		Role: models.RoleUser, StudentID: "EC/2020/012",
	})
	assert.Error(t, err)

	// Well-formed but unapproved id registers fine without admin access.
	res, err := svc.Register(ctx, RegisterParams{
		Name: "Eve", Email: "e2@uni.edu", Password: "secret1",
		Role: models.RoleResearcher, StudentID: "EC/2020/099",
	})
	require.NoError(t, err)
	assert.False(t, res.User.IsApprovedAdmin)

	// Approved id yields the derived flag.
	res, err = svc.Register(ctx, RegisterParams{
		Name: "Ada", Email: "e3@uni.edu", Password: "secret1",
		Role: models.RoleResearcher, StudentID: "EC/2020/012",
	})
	require.NoError(t, err)
	assert.True(t, res.User.IsApprovedAdmin)
}

func TestRefreshRotation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterParams{Name: "Ada", Email: "a@uni.edu", Password: "secret1", Role: models.RoleUser})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, rotated.User.ID)
	assert.NotEmpty(t, rotated.AccessToken)

	_, err = svc.Refresh(ctx, res.AccessToken)
	assert.Error(t, err, "access tokens cannot be used to refresh")
}

func TestUpdateProfileRecomputesApproval(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterParams{
		Name: "Ada", Email: "a@uni.edu", Password: "secret1",
		Role: models.RoleResearcher, StudentID: "EC/2020/012",
	})
	require.NoError(t, err)
	require.True(t, res.User.IsApprovedAdmin)

	sid := "EC/2099/999"
	u, err := svc.UpdateProfile(ctx, res.User.ID, ProfileUpdate{StudentID: &sid})
	require.NoError(t, err)
	assert.False(t, u.IsApprovedAdmin, "approval is recomputed from the new id")

	name := "X"
	u, err = svc.UpdateProfile(ctx, res.User.ID, ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "X", u.Name)

	bad := "nope"
	_, err = svc.UpdateProfile(ctx, res.User.ID, ProfileUpdate{StudentID: &bad})
	assert.Error(t, err)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	svc, users := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterParams{Name: "Ada", Email: "a@uni.edu", Password: "secret1", Role: models.RoleUser})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.User.ID))
	_, err = users.GetByID(ctx, res.User.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
