package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homefind/rental-backend/internal/apperr"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", apperr.E(apperr.KindBadRequest, "rental", "r1", "start date after end date"), http.StatusBadRequest},
		{"unauthorized", apperr.E(apperr.KindUnauthorized, "user", "alice", "session does not belong to user"), http.StatusUnauthorized},
		{"forbidden", apperr.E(apperr.KindForbidden, "house", "h1", "owner is deleted"), http.StatusForbidden},
		{"not found", apperr.E(apperr.KindNotFound, "house", "h1", "house does not exist"), http.StatusNotFound},
		{"conflict", apperr.E(apperr.KindConflict, "rental", "r1", "dates overlap"), http.StatusConflict},
		{"internal", apperr.Wrap("mongodb.GetHouse", errors.New("connection reset")), http.StatusInternalServerError},
		{"unknown error", errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	err := apperr.Wrap("mongodb.GetHouse", errors.New("connection reset by peer"))
	assert.Equal(t, "internal server error", ErrorMessage(err))

	notFound := apperr.E(apperr.KindNotFound, "house", "h1", "house does not exist")
	assert.Contains(t, ErrorMessage(notFound), "house does not exist")
}

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": "h1"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}
