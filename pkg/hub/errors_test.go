package hub

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "server envelope",
			status:      404,
			body:        `{"errorMessage":"Project not found.","errorCode":"{project.not_found}"}`,
			wantMessage: "Project not found.",
			wantCode:    "{project.not_found}",
		},
		{
			name:        "plain text body",
			status:      502,
			body:        "bad gateway",
			wantMessage: "bad gateway",
		},
		{
			name:        "empty body",
			status:      500,
			body:        "",
			wantMessage: http.StatusText(500),
		},
		{
			name:        "json without message",
			status:      403,
			body:        `{"other":"field"}`,
			wantMessage: `{"other":"field"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := ParseAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.ErrorMessage)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestAPIErrorError(t *testing.T) {
	t.Parallel()

	withCode := &APIError{Status: 404, ErrorMessage: "gone", ErrorCode: "{core.gone}"}
	assert.Equal(t, "{core.gone}: gone (status: 404)", withCode.Error())

	withoutCode := &APIError{Status: 500, ErrorMessage: "boom"}
	assert.Equal(t, "boom (status: 500)", withoutCode.Error())
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	notFound := &APIError{Status: http.StatusNotFound, ErrorMessage: "missing"}
	unauthorized := &APIError{Status: http.StatusUnauthorized, ErrorMessage: "bad token"}
	forbidden := &APIError{Status: http.StatusForbidden, ErrorMessage: "not allowed"}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(unauthorized))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(forbidden))

	assert.True(t, IsForbidden(forbidden))
	assert.False(t, IsForbidden(notFound))

	plain := errors.New("plain")
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsUnauthorized(plain))
	assert.False(t, IsForbidden(plain))
}

func TestErrorClassifiersUnwrap(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("fetching project: %w", &APIError{Status: http.StatusNotFound})
	require.True(t, IsNotFound(wrapped))
}
