package download

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
)

// MockService реализует интерфейс download.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Download(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestDownloadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	content := []byte("\xff\xd8\xff\xe0 fake jpeg payload")

	tests := []struct {
		name            string
		mediaID         string
		setupMock       func(*MockService)
		expectedStatus  int
		expectedBody    string
		expectedRawBody []byte
	}{
		{
			name:    "успешное скачивание",
			mediaID: "abc123",
			setupMock: func(m *MockService) {
				m.On("Download", mock.Anything, "abc123").Return(content, nil)
			},
			expectedStatus:  http.StatusOK,
			expectedRawBody: content,
		},
		{
			name:    "файл не найден",
			mediaID: "missing",
			setupMock: func(m *MockService) {
				m.On("Download", mock.Anything, "missing").
					Return(nil, apperr.E(apperr.KindNotFound, "media", "missing", "media not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `media not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/media/"+tt.mediaID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.mediaID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedRawBody != nil {
				assert.Equal(t, tt.expectedRawBody, w.Body.Bytes())
			} else {
				assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
					"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			}

			mockService.AssertExpectations(t)
		})
	}
}
