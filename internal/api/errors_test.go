package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "with server and cause",
			err:  NewConfigurationError("addEngine", "cocoMDS1", errors.New("disk full")),
			want: "ConfigurationError addEngine (server cocoMDS1): configuration update failed: disk full",
		},
		{
			name: "without server",
			err:  NewInvalidParameterError("addEngine", "", "serverName must not be blank"),
			want: "InvalidParameter addEngine: serverName must not be blank",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindHelpers_Unwrap(t *testing.T) {
	cause := errors.New("denied")
	err := fmt.Errorf("wrapped: %w", NewNotAuthorizedError("getEngineConfiguration", "s1", cause))

	assert.True(t, IsNotAuthorized(err))
	assert.False(t, IsInvalidParameter(err))
	assert.False(t, IsConfigurationError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestErrorKind_HTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindInvalidParameter.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, KindUserNotAuthorized.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindConfigurationError.HTTPStatus())
}
