package sweep

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/homefind/rental-backend/internal/models"
)

type HousesMock struct{ mock.Mock }

func (m *HousesMock) FindDiscountCandidates(ctx context.Context, maxCounter, limit int) ([]*models.House, error) {
	args := m.Called(ctx, maxCounter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.House), args.Error(1)
}
func (m *HousesMock) SetDiscount(ctx context.Context, id string, discount int) error {
	return m.Called(ctx, id, discount).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunTick_DiscountsUpToLimit(t *testing.T) {
	houses := new(HousesMock)
	cache := new(CacheMock)
	svc := New(houses, cache, time.Hour, 5, 10, newNoopLogger())
	ctx := context.Background()

	candidates := []*models.House{
		{ID: "h1"}, {ID: "h2"}, {ID: "h3"}, {ID: "h4"}, {ID: "h5"},
	}
	houses.On("FindDiscountCandidates", ctx, 0, 5).Return(candidates, nil).Once()
	for _, h := range candidates {
		houses.On("SetDiscount", ctx, h.ID, 10).Return(nil).Once()
		cache.On("Invalidate", "house:"+h.ID).Return(nil).Once()
	}

	svc.runTick(ctx)

	houses.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRunTick_NoCandidates(t *testing.T) {
	houses := new(HousesMock)
	cache := new(CacheMock)
	svc := New(houses, cache, time.Hour, 5, 10, newNoopLogger())
	ctx := context.Background()

	houses.On("FindDiscountCandidates", ctx, 0, 5).Return([]*models.House{}, nil).Once()

	svc.runTick(ctx)

	houses.AssertNotCalled(t, "SetDiscount", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunTick_FindErrorIsSwallowed(t *testing.T) {
	houses := new(HousesMock)
	cache := new(CacheMock)
	svc := New(houses, cache, time.Hour, 5, 10, newNoopLogger())
	ctx := context.Background()

	houses.On("FindDiscountCandidates", ctx, 0, 5).Return(nil, errors.New("db down")).Once()

	svc.runTick(ctx)

	houses.AssertExpectations(t)
}

func TestRunTick_SetDiscountErrorContinues(t *testing.T) {
	houses := new(HousesMock)
	cache := new(CacheMock)
	svc := New(houses, cache, time.Hour, 5, 10, newNoopLogger())
	ctx := context.Background()

	candidates := []*models.House{{ID: "h1"}, {ID: "h2"}}
	houses.On("FindDiscountCandidates", ctx, 0, 5).Return(candidates, nil).Once()
	houses.On("SetDiscount", ctx, "h1", 10).Return(errors.New("write failed")).Once()
	houses.On("SetDiscount", ctx, "h2", 10).Return(nil).Once()
	cache.On("Invalidate", "house:h2").Return(nil).Once()

	svc.runTick(ctx)

	houses.AssertExpectations(t)
	cache.AssertExpectations(t)
	// кэш не трогаем для дома, уценка которого не записалась
	cache.AssertNotCalled(t, "Invalidate", "house:h1")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	houses := new(HousesMock)
	cache := new(CacheMock)
	svc := New(houses, cache, 10*time.Millisecond, 5, 10, newNoopLogger())

	houses.On("FindDiscountCandidates", mock.Anything, 0, 5).Return([]*models.House{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not stop after context cancellation")
	}
}
