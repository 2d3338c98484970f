package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/adapters/http/dto"
	"github.com/jsamuelsen11/review-comments/internal/domain"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
)

// maxJSONBodyBytes bounds command bodies. A comment body is the largest and
// stays well below it.
const maxJSONBodyBytes = 1 << 20

// commentID reads the {id} route parameter.
func commentID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.InvalidField("id", domain.MsgInvalid)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			slog.Any("error", err),
		)
	}
}

// decodeJSONBody decodes exactly one JSON value into dst. Oversized bodies,
// malformed JSON and trailing data are reported as a 400 on the "body" field
// and false is returned.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))

	msg := ""
	if err := dec.Decode(dst); err != nil {
		msg = "invalid JSON"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "too large"
		}
	} else if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		msg = "must hold a single JSON value"
	}

	if msg != "" {
		dto.WriteErrorResponse(w, r, domain.InvalidField("body", msg))
		return false
	}
	return true
}

type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the body into dst and validates it, writing the
// error response itself on failure.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
