package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/lib/jwt"
	"github.com/homefind/rental-backend/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *UsersMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type HousesMock struct{ mock.Mock }

func (m *HousesMock) ReassignOwner(ctx context.Context, ownerID, newOwnerID string) error {
	return m.Called(ctx, ownerID, newOwnerID).Error(0)
}

type MediaMock struct{ mock.Mock }

func (m *MediaMock) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newService(users *UsersMock, houses *HousesMock, media *MediaMock) *Service {
	maker := jwt.NewMaker("test-secret", time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(users, houses, media, maker, log)
}

func TestRegister_HashesPassword(t *testing.T) {
	users := new(UsersMock)
	svc := newService(users, new(HousesMock), new(MediaMock))
	ctx := context.Background()

	users.On("CreateUser", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.ID == "alice" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	user, err := svc.Register(ctx, models.DummyRegister{
		ID: "alice", Name: "Alice", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegister_TakenNickname(t *testing.T) {
	users := new(UsersMock)
	svc := newService(users, new(HousesMock), new(MediaMock))
	ctx := context.Background()

	users.On("CreateUser", ctx, mock.Anything).
		Return(apperr.E(apperr.KindConflict, "user", "alice", "user already exists"))

	_, err := svc.Register(ctx, models.DummyRegister{ID: "alice", Name: "Alice", Password: "secret1"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestRegister_MissingPhoto(t *testing.T) {
	users := new(UsersMock)
	media := new(MediaMock)
	svc := newService(users, new(HousesMock), media)
	ctx := context.Background()

	media.On("Exists", ctx, "cafe01").Return(false, nil)

	_, err := svc.Register(ctx, models.DummyRegister{
		ID: "alice", Name: "Alice", Password: "secret1", PhotoID: "cafe01",
	})
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users := new(UsersMock)
	svc := newService(users, new(HousesMock), new(MediaMock))
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	users.On("GetUser", ctx, "alice").Return(&models.User{ID: "alice", PasswordHash: string(hash)}, nil)

	token, err := svc.Login(ctx, models.DummyLogin{ID: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(UsersMock)
	svc := newService(users, new(HousesMock), new(MediaMock))
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	users.On("GetUser", ctx, "alice").Return(&models.User{ID: "alice", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(ctx, models.DummyLogin{ID: "alice", Password: "wrong"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestDelete_ReassignsHouses(t *testing.T) {
	users := new(UsersMock)
	houses := new(HousesMock)
	svc := newService(users, houses, new(MediaMock))
	ctx := context.Background()

	users.On("GetUser", ctx, "alice").Return(&models.User{ID: "alice"}, nil)
	houses.On("ReassignOwner", ctx, "alice", models.DeletedUserID).Return(nil)
	users.On("DeleteUser", ctx, "alice").Return(nil)

	require.NoError(t, svc.Delete(ctx, "alice", "alice"))
	houses.AssertCalled(t, "ReassignOwner", ctx, "alice", models.DeletedUserID)
}

func TestDelete_OnlySelf(t *testing.T) {
	users := new(UsersMock)
	svc := newService(users, new(HousesMock), new(MediaMock))

	err := svc.Delete(context.Background(), "mallory", "alice")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
	users.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}
