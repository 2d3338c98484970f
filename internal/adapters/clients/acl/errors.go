// Package acl is the anti-corruption layer between the comment domain and
// the services it depends on: the deposition service that reserves and
// publishes DOIs, the user directory that knows about verified email
// addresses, and the publication webhook. Each wire format and its
// translator lives in a subpackage; request plumbing and error mapping live
// here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/review-comments/internal/domain"
)

// maxErrorBodySize bounds how much of an error body is read.
const maxErrorBodySize = 64 << 10

// downstreamProblem is the error body of a downstream service. It reads
// RFC 9457 problems as well as Zenodo errors, which say "message" where a
// problem says "detail" and "field" where a problem says "location".
type downstreamProblem struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Errors  []struct {
		Location string `json:"location"`
		Field    string `json:"field"`
		Message  string `json:"message"`
	} `json:"errors"`
}

func (p downstreamProblem) explanation(status int) string {
	switch {
	case p.Detail != "":
		return p.Detail
	case p.Message != "":
		return p.Message
	default:
		return http.StatusText(status)
	}
}

// fields keys each field error by its bare name.
func (p downstreamProblem) fields() map[string]string {
	fields := make(map[string]string, len(p.Errors))
	for _, e := range p.Errors {
		name := e.Field
		if name == "" {
			name = strings.TrimPrefix(e.Location, "body.")
		}
		fields[name] = e.Message
	}
	return fields
}

// TranslateHTTPError maps a non-2xx response to a domain error:
//
//	404                   domain.ErrNotFound
//	400, 422              *domain.ValidationError when fields are listed, else domain.ErrValidation
//	409                   domain.ErrConflict
//	401, 403, 429, 5xx    domain.ErrUnavailable
//
// Rejected credentials count as unavailable because no retry by the caller
// can fix them. Other statuses produce an error wrapping no sentinel.
func TranslateHTTPError(resp *http.Response) error {
	problem := readProblem(resp)
	detail := problem.explanation(resp.StatusCode)
	status := resp.StatusCode

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		if len(problem.Errors) > 0 {
			return &domain.ValidationError{Fields: problem.fields()}
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)
	case status == http.StatusConflict:
		return fmt.Errorf("%s: %w", detail, domain.ErrConflict)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return fmt.Errorf("credentials rejected (%d): %s: %w", status, detail, domain.ErrUnavailable)
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)
	default:
		return fmt.Errorf("unexpected status %d: %s", status, detail)
	}
}

// readProblem decodes a JSON error body. Anything else, including a body
// that fails to decode, yields the zero problem.
func readProblem(resp *http.Response) downstreamProblem {
	var problem downstreamProblem
	if resp.Body == nil {
		return problem
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || (mediaType != "application/json" && mediaType != "application/problem+json") {
		return problem
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&problem); err != nil {
		return downstreamProblem{}
	}
	return problem
}
