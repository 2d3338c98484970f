// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

// CreatedResponse is returned when a comment has been started.
type CreatedResponse struct {
	ID string `json:"id"`
}

// CommentResponse represents the current state of a comment. Fields the
// state does not carry are omitted.
type CommentResponse struct {
	ID                    string  `json:"id"`
	Status                string  `json:"status"`
	AuthorID              string  `json:"author_id"`
	PrereviewID           int64   `json:"prereview_id"`
	Body                  *string `json:"body,omitempty"`
	Persona               *string `json:"persona,omitempty"`
	HasCompetingInterests *bool   `json:"has_competing_interests,omitempty"`
	CompetingInterests    *string `json:"competing_interests,omitempty"`
	CodeOfConductAgreed   *bool   `json:"code_of_conduct_agreed,omitempty"`
	VerifiedEmail         *bool   `json:"verified_email,omitempty"`
	DOI                   string  `json:"doi,omitempty"`
	ExternalID            int64   `json:"external_id,omitempty"`
}

// ToCommentResponse converts a comment state to an HTTP response DTO. It
// reports false for NotStarted, which has nothing to show.
func ToCommentResponse(id uuid.UUID, state comment.State) (CommentResponse, bool) {
	resp := CommentResponse{ID: id.String(), Status: state.Status().String()}

	switch s := state.(type) {
	case comment.InProgress:
		resp.AuthorID = s.AuthorID
		resp.PrereviewID = s.PrereviewID
		resp.Body = s.Body
		if s.Persona != nil {
			persona := s.Persona.String()
			resp.Persona = &persona
		}
		if s.CompetingInterests != nil {
			setCompetingInterests(&resp, *s.CompetingInterests)
		}
		resp.CodeOfConductAgreed = &s.CodeOfConductAgreed
		resp.VerifiedEmail = &s.VerifiedEmailAddressExists
	case comment.ReadyForPublishing:
		setContent(&resp, s.Content)
	case comment.BeingPublished:
		setContent(&resp, s.Content)
		if s.Assignment != nil {
			resp.DOI = s.Assignment.Identifier.String()
			resp.ExternalID = s.Assignment.ExternalID
		}
	case comment.Published:
		setContent(&resp, s.Content)
		resp.DOI = s.Identifier.String()
		resp.ExternalID = s.ExternalID
	default:
		return CommentResponse{}, false
	}

	return resp, true
}

func setContent(resp *CommentResponse, content comment.Content) {
	body := content.Body
	persona := content.Persona.String()
	agreed, verified := true, true

	resp.AuthorID = content.AuthorID
	resp.PrereviewID = content.PrereviewID
	resp.Body = &body
	resp.Persona = &persona
	resp.CodeOfConductAgreed = &agreed
	resp.VerifiedEmail = &verified
	setCompetingInterests(resp, content.CompetingInterests)
}

func setCompetingInterests(resp *CommentResponse, ci comment.CompetingInterests) {
	has := !ci.None()
	resp.HasCompetingInterests = &has
	if has {
		details := ci.Details
		resp.CompetingInterests = &details
	}
}
