package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/review-comments/internal/domain"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
	"github.com/jsamuelsen11/review-comments/internal/platform/logging"
)

// internalDetail replaces the detail of 500 responses; the cause is logged.
const internalDetail = "the server could not process the request"

// pathParams names the validation fields that come from the URL rather than
// the body.
var pathParams = map[string]bool{"id": true}

// ErrorResponse represents an RFC 9457 Problem Details response. Code is an
// extension member carrying the rejection code of a refused command.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Code     string        `json:"code,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail is one invalid input: "body.<field>" or "path.<param>".
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewProblem returns a bare problem for status with the request URI as the
// instance.
func NewProblem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

// NewErrorResponse maps err to a problem. Validation errors list their
// fields and command rejections carry their code. Errors that match no
// domain sentinel become a 500 whose detail does not echo the cause.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		return NewProblem(r, status, internalDetail)
	}

	resp := NewProblem(r, status, err.Error())

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = fieldDetails(verr.Fields)
	}
	var rejection *comment.Rejection
	if errors.As(err, &rejection) {
		resp.Code = rejection.Code
	}

	return resp
}

// WriteErrorResponse writes the problem for err as application/problem+json.
// Server-side failures are logged with their cause.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)
	if resp.Status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.Int("status", resp.Status),
			slog.Any("error", err),
		)
	}
	WriteProblem(w, r, resp)
}

// WriteProblem writes an already built problem.
func WriteProblem(w http.ResponseWriter, r *http.Request, problem ErrorResponse) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)

	if err := json.NewEncoder(w).Encode(problem); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", err),
		)
	}
}

// statusFor maps domain sentinels to HTTP statuses. Rejections unwrap to
// domain.ErrConflict.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func fieldDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		location := "body." + field
		if pathParams[field] {
			location = "path." + field
		}
		details = append(details, ErrorDetail{Location: location, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return strings.Compare(a.Location, b.Location)
	})
	return details
}
