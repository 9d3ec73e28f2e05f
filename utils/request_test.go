package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func TestDecodeOptionalChunkedBody(t *testing.T) {
	// chunked transfer: no Content-Length on the request
	r := httptest.NewRequest(http.MethodPost, "/api/cart/checkout",
		strings.NewReader(`{"name":"Jo Doe","email":"jo@example.com"}`))
	r.ContentLength = -1

	var got contactBody
	require.NoError(t, DecodeOptional(r, &got))
	assert.Equal(t, contactBody{Name: "Jo Doe", Email: "jo@example.com"}, got)
}

func TestDecodeOptionalEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", strings.NewReader(""))

	var got contactBody
	require.NoError(t, DecodeOptional(r, &got))
	assert.Zero(t, got)
}

func TestDecodeOptionalMalformedBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", strings.NewReader(`{"name":`))

	var got contactBody
	assert.Error(t, DecodeOptional(r, &got))
}
