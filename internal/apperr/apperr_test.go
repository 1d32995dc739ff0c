package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindBadRequest.Status())
	assert.Equal(t, http.StatusConflict, KindDuplicated.Status())
	assert.Equal(t, http.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.Status())
	assert.Equal(t, http.StatusNotImplemented, KindNotImplemented.Status())
	assert.Equal(t, http.StatusServiceUnavailable, KindServiceUnavailable.Status())
	assert.Equal(t, http.StatusInternalServerError, KindUnknown.Status())
}

func TestDefaultMessages(t *testing.T) {
	assert.Equal(t, "the resource requested is not found", NotFound("").Message)
	assert.Equal(t, "Unauthorized", Unauthorized("").Message)
	assert.Equal(t, "this api is not implemented yet.", NotImplemented("").Message)
	assert.Equal(t, "Service unavailable", ServiceUnavailable("").Message)
	assert.Equal(t, "unknown error", Unknown("").Message)
}

func TestErrorsAsThroughWrap(t *testing.T) {
	wrapped := fmt.Errorf("listing audios: %w", NotImplemented("no sorting implemented for - foo."))

	var appErr *Error
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, KindNotImplemented, appErr.Kind)
	assert.Equal(t, "no sorting implemented for - foo.", appErr.Message)
}

func TestBadRequestData(t *testing.T) {
	err := BadRequest("invalid offset", map[string]interface{}{"offset": -1})
	assert.Equal(t, "invalid offset", err.Error())
	assert.Equal(t, -1, err.Data["offset"])
}
