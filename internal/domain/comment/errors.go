package comment

import "github.com/jsamuelsen11/review-comments/internal/domain"

// Rejection is returned by Decide when a command is not valid for the current
// state. Rejections are deterministic and never worth retrying.
type Rejection struct {
	Code    string
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

// Unwrap lets callers treat every rejection as a domain.ErrConflict.
func (r *Rejection) Unwrap() error {
	return domain.ErrConflict
}

// Rejection sentinels, compared with errors.Is.
var (
	ErrAlreadyStarted            = &Rejection{Code: "already_started", Message: "comment has already been started"}
	ErrHasNotBeenStarted         = &Rejection{Code: "not_started", Message: "comment has not been started"}
	ErrIsIncomplete              = &Rejection{Code: "incomplete", Message: "comment is incomplete"}
	ErrIsBeingPublished          = &Rejection{Code: "being_published", Message: "comment is being published"}
	ErrIdentifierNotAssigned     = &Rejection{Code: "identifier_not_assigned", Message: "comment has no identifier assigned"}
	ErrIdentifierAlreadyAssigned = &Rejection{Code: "identifier_already_assigned", Message: "comment already has an identifier"}
	ErrAlreadyPublished          = &Rejection{Code: "already_published", Message: "comment has already been published"}
)
