package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// DecodeOptional decodes an optional JSON request body into v. A missing or
// empty body leaves v untouched and is not an error. Content-Length is never
// consulted, so chunked bodies decode like any other.
func DecodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
