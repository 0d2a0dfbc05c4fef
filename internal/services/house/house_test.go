package house

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

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/models"
)

type HousesMock struct{ mock.Mock }

func (m *HousesMock) CreateHouse(ctx context.Context, house models.House) error {
	return m.Called(ctx, house).Error(0)
}
func (m *HousesMock) GetHouse(ctx context.Context, id string) (*models.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}
func (m *HousesMock) UpdateHouse(ctx context.Context, house models.House) error {
	return m.Called(ctx, house).Error(0)
}
func (m *HousesMock) DeleteHouse(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *HousesMock) ListHouses(ctx context.Context, limit, offset int) ([]*models.House, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.House), args.Error(1)
}

type UsersMock struct{ mock.Mock }

func (m *UsersMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type RentalsMock struct{ mock.Mock }

func (m *RentalsMock) DeleteRentalsByHouse(ctx context.Context, houseID string) error {
	return m.Called(ctx, houseID).Error(0)
}

type MediaMock struct{ mock.Mock }

func (m *MediaMock) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	houses  *HousesMock
	users   *UsersMock
	rentals *RentalsMock
	media   *MediaMock
	cache   *CacheMock
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		houses:  new(HousesMock),
		users:   new(UsersMock),
		rentals: new(RentalsMock),
		media:   new(MediaMock),
		cache:   new(CacheMock),
	}
	f.svc = New(f.houses, f.users, f.rentals, f.media, f.cache, testLogger())
	return f
}

func TestCreate_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("GetUser", ctx, "owner").Return(&models.User{ID: "owner"}, nil)
	f.houses.On("CreateHouse", ctx, mock.Anything).Return(nil)
	f.cache.On("Set", mock.Anything, mock.Anything, time.Hour).Return(nil)

	house, err := f.svc.Create(ctx, "owner", models.DummyHouse{
		Name:     "seaside cottage",
		Location: "  Lisbon ",
		Price:    100,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, house.ID)
	assert.Equal(t, "owner", house.OwnerID)
	assert.Equal(t, "lisbon", house.Location)
}

func TestCreate_UnknownOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("GetUser", ctx, "ghost").
		Return(nil, apperr.E(apperr.KindNotFound, "user", "ghost", "user does not exist"))

	_, err := f.svc.Create(ctx, "ghost", models.DummyHouse{Name: "x", Location: "y", Price: 100})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	f.houses.AssertNotCalled(t, "CreateHouse", mock.Anything, mock.Anything)
}

func TestCreate_MissingPhoto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("GetUser", ctx, "owner").Return(&models.User{ID: "owner"}, nil)
	f.media.On("Exists", ctx, "deadbeef").Return(false, nil)

	_, err := f.svc.Create(ctx, "owner", models.DummyHouse{
		Name: "x", Location: "y", Price: 100, PhotoID: "deadbeef",
	})
	assert.True(t, errors.Is(err, apperr.ErrBadRequest))
}

func TestCreate_ClientChosenID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("GetUser", ctx, "owner").Return(&models.User{ID: "owner"}, nil)
	f.houses.On("CreateHouse", ctx, mock.MatchedBy(func(h models.House) bool {
		return h.ID == "myhouse"
	})).Return(nil)
	f.cache.On("Set", "house:myhouse", mock.Anything, time.Hour).Return(nil)

	house, err := f.svc.Create(ctx, "owner", models.DummyHouse{
		ID: "myhouse", Name: "x", Location: "y", Price: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "myhouse", house.ID)
}

func TestGet_ReadThrough(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stored := &models.House{ID: "h1", Name: "seaside", OwnerID: "owner", Price: 100}
	f.cache.On("Get", "house:h1", mock.Anything).Return(false, nil)
	f.houses.On("GetHouse", ctx, "h1").Return(stored, nil)
	f.cache.On("Set", "house:h1", stored, time.Hour).Return(nil)

	house, err := f.svc.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, stored, house)
	f.cache.AssertCalled(t, "Set", "house:h1", stored, time.Hour)
}

func TestUpdate_OnlySuppliedFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stored := &models.House{ID: "h1", Name: "seaside", OwnerID: "owner", Price: 100, Discount: 0}
	f.houses.On("GetHouse", ctx, "h1").Return(stored, nil)
	f.houses.On("UpdateHouse", ctx, mock.MatchedBy(func(h models.House) bool {
		return h.Price == 120 && h.Name == "seaside"
	})).Return(nil)
	f.cache.On("Set", "house:h1", mock.Anything, time.Hour).Return(nil)

	price := 120
	house, err := f.svc.Update(ctx, "owner", "h1", models.DummyHouseUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 120, house.Price)
	assert.Equal(t, "seaside", house.Name)
}

func TestUpdate_NotOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stored := &models.House{ID: "h1", OwnerID: "owner"}
	f.houses.On("GetHouse", ctx, "h1").Return(stored, nil)

	price := 120
	_, err := f.svc.Update(ctx, "mallory", "h1", models.DummyHouseUpdate{Price: &price})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestDelete_RemovesRentalsToo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stored := &models.House{ID: "h1", OwnerID: "owner"}
	f.houses.On("GetHouse", ctx, "h1").Return(stored, nil)
	f.rentals.On("DeleteRentalsByHouse", ctx, "h1").Return(nil)
	f.houses.On("DeleteHouse", ctx, "h1").Return(nil)
	f.cache.On("Invalidate", "house:h1").Return(nil)

	require.NoError(t, f.svc.Delete(ctx, "owner", "h1"))
	f.rentals.AssertCalled(t, "DeleteRentalsByHouse", ctx, "h1")
	f.cache.AssertCalled(t, "Invalidate", "house:h1")
}
