package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sightline/pkg/errors"
)

// MaxBodyBytes bounds request bodies accepted by [DecodeJSON].
const MaxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusUnprocessableEntity
	case errors.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as an [ErrorBody]. Internal errors are logged and
// reported without detail.
func WriteError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := StatusFor(err)
	body := ErrorBody{Code: errors.GetCode(err), Error: errors.UserMessage(err)}
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "err", err)
		}
		body = ErrorBody{Code: errors.ErrCodeInternal, Error: "internal error"}
	}
	WriteJSON(w, status, body)
}

// DecodeJSON decodes the request body into v. Malformed, oversized or
// trailing input is an INVALID_INPUT error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body holds more than one JSON value")
	}
	return nil
}

// Errorf returns an INVALID_INPUT error for a bad request parameter.
func Errorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, format, args...)
}
