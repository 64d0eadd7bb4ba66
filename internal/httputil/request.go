package httputil

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

// Decode reads the request body into v. Malformed or oversized payloads come
// back as a 422 VALIDATION error ready for the translation layer.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return Validation("Validation error", err.Error())
	}
	return nil
}
