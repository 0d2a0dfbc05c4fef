package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homefind/rental-backend/internal/apperr"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := apperr.E(apperr.KindNotFound, "house", "h1", "house does not exist")

	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.False(t, errors.Is(err, apperr.ErrConflict))
}

func TestIs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("services.rental.Create: %w",
		apperr.E(apperr.KindConflict, "rental", "r1", "dates overlap"))

	assert.True(t, errors.Is(err, apperr.ErrConflict))

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "rental", appErr.Entity())
	assert.Equal(t, "r1", appErr.ID())
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Wrap("storage.CreateRental", cause)

	assert.True(t, errors.Is(err, apperr.ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "storage.CreateRental")
}

func TestError_Message(t *testing.T) {
	err := apperr.E(apperr.KindForbidden, "house", "h9", "owner is deleted")
	assert.Equal(t, `forbidden: house "h9": owner is deleted`, err.Error())
}
