// Package httpjson holds the JSON request/response helpers shared by handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/columbia-shop/columbia/backend/internal/models"
)

// MaxBodyBytes caps every JSON request body.
const MaxBodyBytes = 1 << 20

// Write writes a JSON response with the given status code.
func Write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Fail writes a {success:false, message} body.
func Fail(w http.ResponseWriter, status int, message string) {
	Write(w, status, models.Result{Success: false, Message: message})
}

// Decode reads exactly one JSON value from the request body into dst.
// Unknown fields, trailing data and oversized bodies are rejected.
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return describe(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func describe(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("request body is not valid JSON")
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Errorf("field %q must be of type %s", typeErr.Field, typeErr.Type)
		}
		return errors.New("request body has the wrong shape")
	case errors.As(err, &maxErr):
		return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
	default:
		// json reports unknown fields as a plain error: json: unknown field "x"
		return fmt.Errorf("invalid request body: %s", err.Error())
	}
}
