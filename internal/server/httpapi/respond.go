package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Message: msg})
}

var statusBySentinel = []struct {
	err    error
	status int
}{
	{common.ErrorValidation, http.StatusBadRequest},
	{common.ErrorUnauthorized, http.StatusUnauthorized},
	{common.ErrInvalidToken, http.StatusUnauthorized},
	{common.ErrTokenExpired, http.StatusUnauthorized},
	{common.ErrTokenRevoked, http.StatusUnauthorized},
	{common.ErrorNotFound, http.StatusNotFound},
	{common.ErrorAlreadyExists, http.StatusConflict},
	{common.ErrorConflict, http.StatusConflict},
	{common.ErrorInvalidTransition, http.StatusConflict},
}

// errorStatus maps a service error to an HTTP status and a message safe to
// show. Unknown errors become a bare 500.
func errorStatus(err error) (int, string) {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			msg := strings.TrimPrefix(err.Error(), m.err.Error()+": ")
			return m.status, msg
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := errorStatus(err)
	writeMessage(w, status, msg)
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return validation("malformed JSON body")
	}
	return nil
}

type validationErr string

func (e validationErr) Error() string { return string(e) }
func (e validationErr) Unwrap() error { return common.ErrorValidation }

func validation(msg string) error { return validationErr(msg) }
