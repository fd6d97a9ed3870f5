package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewStoreUnavailableError(cause)

	assert.Equal(t, ErrCodeStoreUnavailable, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeGenerationQuotaExceeded,
		CodeOf(NewExternalError(ErrCodeGenerationQuotaExceeded, "quota exceeded")))

	// wrapped through fmt.Errorf still resolves
	wrapped := fmt.Errorf("answer: %w", NewExternalError(ErrCodeGenerationFailed, "boom"))
	assert.Equal(t, ErrCodeGenerationFailed, CodeOf(wrapped))

	assert.Equal(t, ErrCodeInternalServer, CodeOf(fmt.Errorf("plain")))
}

func TestHTTPCodeMapping(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests,
		NewExternalError(ErrCodeGenerationQuotaExceeded, "").HTTPCode)
	assert.Equal(t, http.StatusForbidden,
		NewExternalError(ErrCodeGenerationPermissionDenied, "").HTTPCode)
	assert.Equal(t, http.StatusInternalServerError,
		NewExternalError(ErrCodeGenerationFailed, "").HTTPCode)
	assert.Equal(t, http.StatusBadRequest, NewValidationError("bad").HTTPCode)
}

func TestGetAppError(t *testing.T) {
	orig := NewValidationError("bad input")
	assert.Same(t, orig, GetAppError(orig))

	plain := fmt.Errorf("boom")
	wrapped := GetAppError(plain)
	assert.Equal(t, ErrCodeInternalServer, wrapped.Code)
	assert.ErrorIs(t, wrapped, plain)
}
