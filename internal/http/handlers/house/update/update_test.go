package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/homefind/rental-backend/internal/apperr"
	"github.com/homefind/rental-backend/internal/http/middlewarectx"
	"github.com/homefind/rental-backend/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, sessionUser, id string, req models.DummyHouseUpdate) (*models.House, error) {
	args := m.Called(ctx, sessionUser, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.House), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное обновление цены",
			body:     `{"price":150}`,
			username: "bob",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "bob", "h-1", mock.MatchedBy(func(req models.DummyHouseUpdate) bool {
					return req.Price != nil && *req.Price == 150 && req.Name == nil
				})).Return(&models.House{ID: "h-1", OwnerID: "bob", Price: 150}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"price":150`,
		},
		{
			name:           "отрицательная цена",
			body:           `{"price":-5}`,
			username:       "bob",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Price must be greater than zero`,
		},
		{
			name:     "не владелец",
			body:     `{"price":150}`,
			username: "mallory",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "mallory", "h-1", mock.Anything).
					Return(nil, apperr.E(apperr.KindUnauthorized, "house", "h-1", "only the owner can update the house"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `only the owner`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/houses/h-1", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("houseID", "h-1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.User, tt.username)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
