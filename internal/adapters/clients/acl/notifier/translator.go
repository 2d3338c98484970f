package notifier

import (
	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

// EventCommentPublished names the webhook event.
const EventCommentPublished = "comment.published"

// ToCommentPublished converts a published comment into the webhook payload.
// The author id is only disclosed for comments published under the public
// persona.
func ToCommentPublished(id uuid.UUID, published comment.Published) CommentPublishedDTO {
	dto := CommentPublishedDTO{
		Event:       EventCommentPublished,
		CommentID:   id.String(),
		PrereviewID: published.PrereviewID,
		DOI:         published.Identifier.String(),
		RecordID:    published.ExternalID,
		Persona:     published.Persona.String(),
	}
	if published.Persona == comment.PersonaPublic {
		author := published.AuthorID
		dto.AuthorID = &author
	}
	return dto
}
