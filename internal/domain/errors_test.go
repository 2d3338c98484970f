package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsamuelsen11/review-comments/internal/domain"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{name: "no fields", fields: nil, want: "validation error"},
		{name: "one field", fields: map[string]string{"body": domain.MsgRequired}, want: "validation error: body: is required"},
		{
			name:   "sorted by field",
			fields: map[string]string{"prereview_id": "must be positive", "author_id": domain.MsgInvalid},
			want:   "validation error: author_id: is invalid; prereview_id: must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &domain.ValidationError{Fields: tt.fields}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("starting comment: %w", domain.InvalidField("author_id", domain.MsgInvalid))

	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("errors.Is(%v, ErrValidation) = false", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As(%v) = false", err)
	}
	if verr.Fields["author_id"] != domain.MsgInvalid {
		t.Errorf("Fields = %v, want author_id invalid", verr.Fields)
	}
}
