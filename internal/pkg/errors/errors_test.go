package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetailsDoesNotMutateCatalogue(t *testing.T) {
	detailed := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "page"})

	assert.Equal(t, "page", detailed.Details["field"])
	assert.Nil(t, ErrInvalidRequest.Details)
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
	assert.Equal(t, "INVALID_REQUEST: Invalid request parameters", detailed.Error())
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("reload: %w", ErrDatasetLoadFailed)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "DATASET_LOAD_FAILED", appErr.Code)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
