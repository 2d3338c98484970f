package deposition

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/review-comments/internal/domain/comment"
)

const (
	// Community is the community every comment deposition is filed under.
	Community = "prereview-reviews"

	pseudonymCreator = "PREreview community member"
)

// ToCreateDepositionRequest converts comment content into a deposition
// request that asks the service to pre-reserve a DOI. Pseudonymous comments
// carry no ORCID.
func ToCreateDepositionRequest(id uuid.UUID, content comment.Content) CreateDepositionRequestDTO {
	creator := CreatorDTO{Name: pseudonymCreator}
	if content.Persona == comment.PersonaPublic {
		creator = CreatorDTO{Name: content.AuthorID, ORCID: content.AuthorID}
	}

	return CreateDepositionRequestDTO{
		Metadata: MetadataDTO{
			UploadType:      "publication",
			PublicationType: "other",
			Title:           fmt.Sprintf("Comment on PREreview %d", content.PrereviewID),
			Creators:        []CreatorDTO{creator},
			Description:     description(content),
			Communities:     []CommunityDTO{{Identifier: Community}},
			RelatedIdentifiers: []RelatedIdentifierDTO{
				{
					Identifier:   fmt.Sprintf("https://prereview.org/reviews/%d", content.PrereviewID),
					Relation:     "references",
					ResourceType: "publication-peerreview",
					Scheme:       "url",
				},
				{
					Identifier: "urn:uuid:" + id.String(),
					Relation:   "isIdenticalTo",
					Scheme:     "urn",
				},
			},
			PrereserveDOI: true,
		},
	}
}

// ToAssignment extracts the reserved DOI and record id from a created
// deposition. It fails when the service did not reserve a DOI-shaped
// identifier or returned a non-positive record id.
func ToAssignment(dto *DepositionDTO) (comment.Assignment, error) {
	reserved := dto.Metadata.PrereserveDOI
	if reserved == nil {
		return comment.Assignment{}, errors.New("deposition has no reserved DOI")
	}

	identifier := comment.Identifier(reserved.DOI)
	if !identifier.IsValid() {
		return comment.Assignment{}, fmt.Errorf("reserved DOI %q is not a DOI", reserved.DOI)
	}

	externalID := dto.ID
	if externalID <= 0 {
		externalID = reserved.RecID
	}
	if externalID <= 0 {
		return comment.Assignment{}, fmt.Errorf("deposition record id %d is not positive", externalID)
	}

	return comment.Assignment{Identifier: identifier, ExternalID: externalID}, nil
}

// description renders the comment body followed by the competing interests
// statement. The body is already HTML; the statement is escaped.
func description(content comment.Content) string {
	statement := "The author declares that they have no competing interests."
	if !content.CompetingInterests.None() {
		statement = html.EscapeString(strings.TrimSpace(content.CompetingInterests.Details))
	}

	var b strings.Builder
	b.WriteString(content.Body)
	b.WriteString("\n\n<h2>Competing interests</h2>\n\n<p>")
	b.WriteString(statement)
	b.WriteString("</p>")
	return b.String()
}
