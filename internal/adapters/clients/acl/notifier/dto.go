// Package notifier implements the Anti-Corruption Layer translators for the
// webhook that announces published comments.
package notifier

// CommentPublishedDTO is the webhook payload sent once a comment is public.
type CommentPublishedDTO struct {
	Event       string  `json:"event"`
	CommentID   string  `json:"comment_id"`
	PrereviewID int64   `json:"prereview_id"`
	DOI         string  `json:"doi"`
	RecordID    int64   `json:"record_id"`
	Persona     string  `json:"persona"`
	AuthorID    *string `json:"author_id,omitempty"`
}
