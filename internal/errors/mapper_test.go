package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
)

func TestMapDomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{svcErr.Unauthenticated("no session"), http.StatusUnauthorized, "unauthenticated"},
		{svcErr.NotFound("missing"), http.StatusNotFound, "not_found"},
		{svcErr.InvalidArgument("bad"), http.StatusBadRequest, "invalid_argument"},
		{svcErr.Conflict("taken"), http.StatusConflict, "conflict"},
		{svcErr.Persistence("boom", fmt.Errorf("disk")), http.StatusInternalServerError, "persistence"},
	}

	for _, tc := range cases {
		status, body := svcErr.Map(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.kind, body["error"], tc.err.Error())
		assert.NotEmpty(t, body["message"])
	}
}

func TestMapInfraErrors(t *testing.T) {
	status, body := svcErr.Map(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", body["error"])

	status, _ = svcErr.Map(context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, status)

	status, _ = svcErr.Map(fmt.Errorf("anything else"))
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := svcErr.Persistence("wrapper", cause)

	var de *svcErr.Error
	assert.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, cause)
}
