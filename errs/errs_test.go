package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMatching(t *testing.T) {
	err := NotFoundf("apartment %s not found", "a1")

	assert.True(t, Is(err, NotFound))
	assert.False(t, Is(err, Forbidden))
	assert.False(t, Is(errors.New("plain"), NotFound))

	wrapped := fmt.Errorf("loading listing: %w", err)
	assert.True(t, Is(wrapped, NotFound))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("bad months"), http.StatusBadRequest},
		{New(EmptyCheckout, "nothing selected"), http.StatusBadRequest},
		{NotFoundf("missing"), http.StatusNotFound},
		{Forbiddenf("not yours"), http.StatusForbidden},
		{InvalidStatef("already closed"), http.StatusConflict},
		{errors.New("connection lost"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), "for %v", tc.err)
	}
}
