package dto

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jsamuelsen11/review-comments/internal/domain"
	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

const msgPositive = "must be a positive integer"

var orcidPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[\dX]$`)

func validationResult(fields map[string]string) error {
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// StartCommentRequest represents the JSON body for starting a comment.
type StartCommentRequest struct {
	AuthorID    string `json:"author_id"`
	PrereviewID int64  `json:"prereview_id"`
}

// Validate checks that the author is an ORCID iD and the review id is positive.
// Returns a *domain.ValidationError if any checks fail.
func (r *StartCommentRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(r.AuthorID) == "":
		fields["author_id"] = domain.MsgRequired
	case !orcidPattern.MatchString(r.AuthorID):
		fields["author_id"] = fmt.Sprintf("must be an ORCID iD, got %q", r.AuthorID)
	}
	if r.PrereviewID <= 0 {
		fields["prereview_id"] = msgPositive
	}

	return validationResult(fields)
}

// ToCommand converts the request to a Start command.
func (r *StartCommentRequest) ToCommand() comment.Start {
	return comment.Start{AuthorID: r.AuthorID, PrereviewID: r.PrereviewID}
}

// EnterBodyRequest represents the JSON body for entering the comment text.
type EnterBodyRequest struct {
	Body string `json:"body"`
}

// Validate checks that the body is not blank.
func (r *EnterBodyRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Body) == "" {
		fields["body"] = domain.MsgRequired
	}

	return validationResult(fields)
}

// ToCommand converts the request to an EnterBody command.
func (r *EnterBodyRequest) ToCommand() comment.EnterBody {
	return comment.EnterBody{Body: r.Body}
}

// ChoosePersonaRequest represents the JSON body for choosing a persona.
type ChoosePersonaRequest struct {
	Persona string `json:"persona"`
}

// Validate checks that the persona is public or pseudonym.
func (r *ChoosePersonaRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case r.Persona == "":
		fields["persona"] = domain.MsgRequired
	case !comment.Persona(r.Persona).IsValid():
		fields["persona"] = fmt.Sprintf("invalid: %q", r.Persona)
	}

	return validationResult(fields)
}

// ToCommand converts the request to a ChoosePersona command.
func (r *ChoosePersonaRequest) ToCommand() comment.ChoosePersona {
	return comment.ChoosePersona{Persona: comment.Persona(r.Persona)}
}

// DeclareCompetingInterestsRequest represents the JSON body for declaring
// competing interests. A null or blank value declares none.
type DeclareCompetingInterestsRequest struct {
	CompetingInterests *string `json:"competing_interests"`
}

// Validate accepts every declaration.
func (r *DeclareCompetingInterestsRequest) Validate() error {
	return nil
}

// ToCommand converts the request to a DeclareCompetingInterests command.
func (r *DeclareCompetingInterestsRequest) ToCommand() comment.DeclareCompetingInterests {
	var details string
	if r.CompetingInterests != nil {
		details = strings.TrimSpace(*r.CompetingInterests)
	}
	return comment.DeclareCompetingInterests{
		CompetingInterests: comment.CompetingInterests{Details: details},
	}
}
